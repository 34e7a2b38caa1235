package service

import (
	"context"
	"time"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/knowledge"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
)

const (
	// Candidate caps for one chat turn. The composer caps match these, so
	// the repository query is the only place the limit is applied.
	candidateFAQLimit      = knowledge.MaxContextFAQs
	candidateDocumentLimit = knowledge.MaxContextDocuments

	// historyContextTurns bounds how many stored turns are handed to the
	// dispatcher. The composer trims further to its own window.
	historyContextTurns = 10
)

// SendMessageResult is the outcome of one completed chat turn.
type SendMessageResult struct {
	UserMessage   model.ChatMessage `json:"userMessage"`
	AIMessage     model.ChatMessage `json:"aiMessage"`
	SessionID     string            `json:"sessionId"`
	TotalMessages int               `json:"totalMessages"`
}

// SessionDetail bundles a session's metadata with its message history.
type SessionDetail struct {
	Session  *model.ChatSession  `json:"session"`
	Messages []model.ChatMessage `json:"messages"`
}

// ChatService accumulates conversations: it owns session lifecycle and
// message history, and drives the response pipeline for each turn.
type ChatService interface {
	SendMessage(ctx context.Context, sessionID, userID, message, imageURL, userAgent, clientIP string) (*SendMessageResult, error)
	GetSession(ctx context.Context, sessionID string) (*SessionDetail, error)
	ListSessions(q repository.SessionListQuery) ([]model.ChatSession, int64, error)
	DeactivateSession(sessionID string) error
}

type chatService struct {
	chatRepo  repository.ChatRepository
	faqRepo   repository.FAQRepository
	docRepo   repository.DocumentRepository
	aiService AIService
}

// NewChatService creates a new ChatService instance.
func NewChatService(chatRepo repository.ChatRepository, faqRepo repository.FAQRepository, docRepo repository.DocumentRepository, aiService AIService) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		faqRepo:   faqRepo,
		docRepo:   docRepo,
		aiService: aiService,
	}
}

// SendMessage runs one full turn: load the session and its history, gather
// the knowledge candidates, dispatch the response, then append both
// messages and persist. The turn fails only on empty input or a knowledge
// base read error; provider trouble surfaces as a degraded response.
func (s *chatService) SendMessage(ctx context.Context, sessionID, userID, message, imageURL, userAgent, clientIP string) (*SendMessageResult, error) {
	session, err := s.chatRepo.GetOrCreateSession(sessionID, userID, userAgent, clientIP)
	if err != nil {
		return nil, err
	}

	history, err := s.chatRepo.GetHistory(ctx, sessionID)
	if err != nil {
		// A lost history degrades context quality but must not block the
		// turn.
		log.Errorf("failed to load history for session %s: %v", sessionID, err)
		history = []model.ChatMessage{}
	}

	recent := history
	if len(recent) > historyContextTurns {
		recent = recent[len(recent)-historyContextTurns:]
	}
	recentContents := make([]string, 0, len(recent))
	for _, m := range recent {
		recentContents = append(recentContents, m.Content)
	}

	faqs, err := s.faqRepo.ListActive(candidateFAQLimit)
	if err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListActiveForContext(candidateDocumentLimit)
	if err != nil {
		return nil, err
	}

	aiResp, err := s.aiService.GenerateResponse(ctx, message, recentContents, faqs, docs, imageURL)
	if err != nil {
		return nil, err
	}

	userMsg := model.ChatMessage{
		Content:   message,
		Sender:    model.SenderUser,
		Timestamp: time.Now(),
	}
	aiMsg := model.ChatMessage{
		Content:    aiResp.Content,
		Sender:     model.SenderAI,
		Timestamp:  aiResp.Timestamp,
		Provider:   aiResp.Provider,
		TokensUsed: aiResp.TokensUsed,
	}

	history = append(history, userMsg, aiMsg)
	if err := s.chatRepo.UpdateHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}

	session.TotalMessages += 2
	if err := s.chatRepo.SaveSession(session); err != nil {
		return nil, err
	}

	return &SendMessageResult{
		UserMessage:   userMsg,
		AIMessage:     aiMsg,
		SessionID:     session.SessionID,
		TotalMessages: session.TotalMessages,
	}, nil
}

// GetSession returns a session's metadata together with its history.
func (s *chatService) GetSession(ctx context.Context, sessionID string) (*SessionDetail, error) {
	session, err := s.chatRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{Session: session, Messages: messages}, nil
}

func (s *chatService) ListSessions(q repository.SessionListQuery) ([]model.ChatSession, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.chatRepo.ListSessions(q)
}

// DeactivateSession ends a conversation. The session row and its Redis
// history stay around until the TTL clears the latter.
func (s *chatService) DeactivateSession(sessionID string) error {
	session, err := s.chatRepo.GetSession(sessionID)
	if err != nil {
		return err
	}
	now := time.Now()
	session.IsActive = false
	session.EndedAt = &now
	return s.chatRepo.SaveSession(session)
}
