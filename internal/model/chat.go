package model

import "time"

// Message sender values.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is a single conversation turn, stored in Redis as part of the
// session history. Provider and TokensUsed are only set on AI-authored
// messages.
type ChatMessage struct {
	Content    string    `json:"content"`
	Sender     string    `json:"sender"`
	Timestamp  time.Time `json:"timestamp"`
	Provider   string    `json:"provider,omitempty"`
	TokensUsed int       `json:"tokensUsed,omitempty"`
}

// ChatSession is the persistent record of one conversation. Message bodies
// live in Redis keyed by SessionID; this row carries the metadata the admin
// surface lists and counts.
type ChatSession struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID     string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"sessionId"`
	UserID        string     `gorm:"type:varchar(100);index" json:"userId"`
	IsActive      bool       `gorm:"not null;default:true;index" json:"isActive"`
	TotalMessages int        `gorm:"not null;default:0" json:"totalMessages"`
	UserAgent     string     `gorm:"type:varchar(255)" json:"userAgent,omitempty"`
	ClientIP      string     `gorm:"type:varchar(64)" json:"clientIp,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	EndedAt       *time.Time `json:"endedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table for this model.
func (ChatSession) TableName() string {
	return "chat_sessions"
}
