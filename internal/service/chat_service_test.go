package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
)

type mockChatRepository struct {
	sessions  map[string]*model.ChatSession
	histories map[string][]model.ChatMessage

	historyErr error
	saveErr    error
}

func newMockChatRepository() *mockChatRepository {
	return &mockChatRepository{
		sessions:  map[string]*model.ChatSession{},
		histories: map[string][]model.ChatMessage{},
	}
}

func (m *mockChatRepository) GetOrCreateSession(sessionID, userID, userAgent, clientIP string) (*model.ChatSession, error) {
	if s, ok := m.sessions[sessionID]; ok {
		return s, nil
	}
	s := &model.ChatSession{SessionID: sessionID, UserID: userID, IsActive: true, StartedAt: time.Now()}
	m.sessions[sessionID] = s
	return s, nil
}

func (m *mockChatRepository) GetSession(sessionID string) (*model.ChatSession, error) {
	if s, ok := m.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChatRepository) SaveSession(session *model.ChatSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockChatRepository) ListSessions(q repository.SessionListQuery) ([]model.ChatSession, int64, error) {
	var out []model.ChatSession
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (m *mockChatRepository) RecentSessions(limit int) ([]model.ChatSession, error) {
	return nil, nil
}

func (m *mockChatRepository) CountSessions(active *bool) (int64, error) {
	return int64(len(m.sessions)), nil
}

func (m *mockChatRepository) CountSessionsSince(t time.Time) (int64, error) {
	return 0, nil
}

func (m *mockChatRepository) GetHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.histories[sessionID], nil
}

func (m *mockChatRepository) UpdateHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error {
	m.histories[sessionID] = messages
	return nil
}

type mockFAQRepository struct {
	faqs []model.FAQ
	err  error
}

func (m *mockFAQRepository) Create(faq *model.FAQ) error          { return nil }
func (m *mockFAQRepository) GetByID(id uint) (*model.FAQ, error)  { return nil, gorm.ErrRecordNotFound }
func (m *mockFAQRepository) Update(faq *model.FAQ) error          { return nil }
func (m *mockFAQRepository) Delete(id uint) error                 { return nil }
func (m *mockFAQRepository) CountActive() (int64, error)          { return int64(len(m.faqs)), nil }
func (m *mockFAQRepository) List(q repository.FAQListQuery) ([]model.FAQ, int64, error) {
	return m.faqs, int64(len(m.faqs)), nil
}
func (m *mockFAQRepository) ListActive(limit int) ([]model.FAQ, error) {
	return m.faqs, m.err
}

type mockDocumentRepository struct {
	docs []model.Document
	err  error
}

func (m *mockDocumentRepository) Create(doc *model.Document) error { return nil }
func (m *mockDocumentRepository) GetByID(id uint) (*model.Document, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockDocumentRepository) Update(doc *model.Document) error { return nil }
func (m *mockDocumentRepository) Delete(id uint) error             { return nil }
func (m *mockDocumentRepository) List(q repository.DocumentListQuery) ([]model.Document, int64, error) {
	return m.docs, int64(len(m.docs)), nil
}
func (m *mockDocumentRepository) ListActiveForContext(limit int) ([]model.Document, error) {
	return m.docs, m.err
}
func (m *mockDocumentRepository) IncrementAccess(id uint) error { return nil }
func (m *mockDocumentRepository) CountActive() (int64, error)   { return int64(len(m.docs)), nil }

type mockAIService struct {
	resp    *model.AIResponse
	err     error
	history []string
}

func (m *mockAIService) GenerateResponse(ctx context.Context, message string, history []string, faqs []model.FAQ, docs []model.Document, imageURL string) (*model.AIResponse, error) {
	m.history = history
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockAIService) Health() ProviderHealth { return ProviderHealth{} }

func newTestChatService(chatRepo *mockChatRepository, ai *mockAIService) ChatService {
	return NewChatService(chatRepo, &mockFAQRepository{}, &mockDocumentRepository{}, ai)
}

func TestSendMessage_AppendsBothTurns(t *testing.T) {
	chatRepo := newMockChatRepository()
	ai := &mockAIService{resp: &model.AIResponse{
		Content:    "Answer text.",
		Provider:   "OpenRouter GPT-4.1",
		Timestamp:  time.Now(),
		TokensUsed: 55,
	}}
	svc := newTestChatService(chatRepo, ai)

	res, err := svc.SendMessage(context.Background(), "sess-1", "user-1", "hello", "", "agent", "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UserMessage.Sender != model.SenderUser || res.UserMessage.Content != "hello" {
		t.Errorf("unexpected user message: %+v", res.UserMessage)
	}
	if res.AIMessage.Sender != model.SenderAI || res.AIMessage.Content != "Answer text." {
		t.Errorf("unexpected AI message: %+v", res.AIMessage)
	}
	if res.AIMessage.Provider != "OpenRouter GPT-4.1" || res.AIMessage.TokensUsed != 55 {
		t.Errorf("AI message must carry provider metadata: %+v", res.AIMessage)
	}
	if res.TotalMessages != 2 {
		t.Errorf("one turn adds two messages, got %d", res.TotalMessages)
	}
	if got := len(chatRepo.histories["sess-1"]); got != 2 {
		t.Errorf("history must hold both turns, got %d messages", got)
	}
}

func TestSendMessage_SecondTurnAccumulates(t *testing.T) {
	chatRepo := newMockChatRepository()
	ai := &mockAIService{resp: &model.AIResponse{Content: "ok", Timestamp: time.Now()}}
	svc := newTestChatService(chatRepo, ai)

	if _, err := svc.SendMessage(context.Background(), "sess-1", "u", "first", "", "", ""); err != nil {
		t.Fatal(err)
	}
	res, err := svc.SendMessage(context.Background(), "sess-1", "u", "second", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalMessages != 4 {
		t.Errorf("two turns total four messages, got %d", res.TotalMessages)
	}
	if got := len(chatRepo.histories["sess-1"]); got != 4 {
		t.Errorf("history must hold four messages, got %d", got)
	}
	// The second turn sees the first turn's contents.
	if len(ai.history) != 2 || ai.history[0] != "first" || ai.history[1] != "ok" {
		t.Errorf("unexpected dispatcher history: %v", ai.history)
	}
}

func TestSendMessage_HistoryWindowBounded(t *testing.T) {
	chatRepo := newMockChatRepository()
	var stored []model.ChatMessage
	for i := 0; i < 30; i++ {
		stored = append(stored, model.ChatMessage{Content: "old", Sender: model.SenderUser, Timestamp: time.Now()})
	}
	chatRepo.histories["sess-1"] = stored

	ai := &mockAIService{resp: &model.AIResponse{Content: "ok", Timestamp: time.Now()}}
	svc := newTestChatService(chatRepo, ai)

	if _, err := svc.SendMessage(context.Background(), "sess-1", "u", "new", "", "", ""); err != nil {
		t.Fatal(err)
	}
	if len(ai.history) != historyContextTurns {
		t.Errorf("dispatcher history must be bounded to %d, got %d", historyContextTurns, len(ai.history))
	}
}

func TestSendMessage_HistoryErrorDoesNotBlockTurn(t *testing.T) {
	chatRepo := newMockChatRepository()
	chatRepo.historyErr = errors.New("redis down")
	ai := &mockAIService{resp: &model.AIResponse{Content: "ok", Timestamp: time.Now()}}
	svc := newTestChatService(chatRepo, ai)

	res, err := svc.SendMessage(context.Background(), "sess-1", "u", "hello", "", "", "")
	if err != nil {
		t.Fatalf("history read failure must not fail the turn: %v", err)
	}
	if res.AIMessage.Content != "ok" {
		t.Errorf("unexpected AI content: %s", res.AIMessage.Content)
	}
	if len(ai.history) != 0 {
		t.Errorf("failed history read yields empty context, got %v", ai.history)
	}
}

func TestSendMessage_KnowledgeReadErrorPropagates(t *testing.T) {
	chatRepo := newMockChatRepository()
	ai := &mockAIService{resp: &model.AIResponse{Content: "ok", Timestamp: time.Now()}}
	faqRepo := &mockFAQRepository{err: errors.New("mysql down")}
	svc := NewChatService(chatRepo, faqRepo, &mockDocumentRepository{}, ai)

	if _, err := svc.SendMessage(context.Background(), "sess-1", "u", "hello", "", "", ""); err == nil {
		t.Fatal("knowledge base read failure must propagate")
	}
}

func TestSendMessage_EmptyMessagePropagates(t *testing.T) {
	chatRepo := newMockChatRepository()
	ai := &mockAIService{err: ErrEmptyMessage}
	svc := newTestChatService(chatRepo, ai)

	if _, err := svc.SendMessage(context.Background(), "sess-1", "u", "  ", "", "", ""); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("want ErrEmptyMessage, got %v", err)
	}
}

func TestDeactivateSession(t *testing.T) {
	chatRepo := newMockChatRepository()
	ai := &mockAIService{resp: &model.AIResponse{Content: "ok", Timestamp: time.Now()}}
	svc := newTestChatService(chatRepo, ai)

	if _, err := svc.SendMessage(context.Background(), "sess-1", "u", "hi", "", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeactivateSession("sess-1"); err != nil {
		t.Fatal(err)
	}
	session := chatRepo.sessions["sess-1"]
	if session.IsActive {
		t.Error("session must be inactive after deactivation")
	}
	if session.EndedAt == nil {
		t.Error("deactivation must stamp EndedAt")
	}

	if err := svc.DeactivateSession("missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unknown session: want ErrRecordNotFound, got %v", err)
	}
}

func TestGetSession(t *testing.T) {
	chatRepo := newMockChatRepository()
	ai := &mockAIService{resp: &model.AIResponse{Content: "ok", Timestamp: time.Now()}}
	svc := newTestChatService(chatRepo, ai)

	if _, err := svc.SendMessage(context.Background(), "sess-1", "u", "hi", "", "", ""); err != nil {
		t.Fatal(err)
	}
	detail, err := svc.GetSession(context.Background(), "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if detail.Session.SessionID != "sess-1" {
		t.Errorf("unexpected session: %+v", detail.Session)
	}
	if len(detail.Messages) != 2 {
		t.Errorf("want 2 messages, got %d", len(detail.Messages))
	}

	if _, err := svc.GetSession(context.Background(), "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unknown session: want ErrRecordNotFound, got %v", err)
	}
}
