package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

const (
	// historyTTL expires idle conversations.
	historyTTL = 7 * 24 * time.Hour

	// maxStoredMessages trims a session's Redis history.
	maxStoredMessages = 50
)

// SessionListQuery filters the admin session listing.
type SessionListQuery struct {
	Active *bool
	Page   int
	Limit  int
}

// ChatRepository persists session metadata in MySQL and message histories
// in Redis.
type ChatRepository interface {
	GetOrCreateSession(sessionID, userID, userAgent, clientIP string) (*model.ChatSession, error)
	GetSession(sessionID string) (*model.ChatSession, error)
	SaveSession(session *model.ChatSession) error
	ListSessions(q SessionListQuery) ([]model.ChatSession, int64, error)
	RecentSessions(limit int) ([]model.ChatSession, error)
	CountSessions(active *bool) (int64, error)
	CountSessionsSince(t time.Time) (int64, error)

	GetHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	UpdateHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error
}

type chatRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewChatRepository creates a new ChatRepository instance.
func NewChatRepository(db *gorm.DB, redisClient *redis.Client) ChatRepository {
	return &chatRepository{db: db, redisClient: redisClient}
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("chat:history:%s", sessionID)
}

// GetOrCreateSession loads the session row, creating it on first contact.
func (r *chatRepository) GetOrCreateSession(sessionID, userID, userAgent, clientIP string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.Where("session_id = ?", sessionID).First(&session).Error
	if err == nil {
		return &session, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	session = model.ChatSession{
		SessionID: sessionID,
		UserID:    userID,
		IsActive:  true,
		UserAgent: userAgent,
		ClientIP:  clientIP,
		StartedAt: time.Now(),
	}
	if err := r.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepository) GetSession(sessionID string) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := r.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatRepository) SaveSession(session *model.ChatSession) error {
	return r.db.Save(session).Error
}

func (r *chatRepository) ListSessions(q SessionListQuery) ([]model.ChatSession, int64, error) {
	tx := r.db.Model(&model.ChatSession{})
	if q.Active != nil {
		tx = tx.Where("is_active = ?", *q.Active)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.ChatSession
	err := tx.Order("updated_at desc").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *chatRepository) RecentSessions(limit int) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.db.Order("updated_at desc").Limit(limit).Find(&sessions).Error
	return sessions, err
}

func (r *chatRepository) CountSessions(active *bool) (int64, error) {
	tx := r.db.Model(&model.ChatSession{})
	if active != nil {
		tx = tx.Where("is_active = ?", *active)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

func (r *chatRepository) CountSessionsSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.ChatSession{}).Where("created_at >= ?", t).Count(&count).Error
	return count, err
}

// GetHistory loads a session's messages from Redis. A missing key means an
// empty conversation, not an error.
func (r *chatRepository) GetHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	jsonData, err := r.redisClient.Get(ctx, historyKey(sessionID)).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %w", err)
	}
	return messages, nil
}

// UpdateHistory stores a session's messages in Redis, keeping the most
// recent maxStoredMessages entries.
func (r *chatRepository) UpdateHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error {
	if len(messages) > maxStoredMessages {
		messages = messages[len(messages)-maxStoredMessages:]
	}
	jsonData, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}
	if err := r.redisClient.Set(ctx, historyKey(sessionID), jsonData, historyTTL).Err(); err != nil {
		return fmt.Errorf("failed to set chat history: %w", err)
	}
	return nil
}
