package model

import "time"

// Document processing status values.
const (
	DocumentStatusProcessing = 0
	DocumentStatusReady      = 1
	DocumentStatusFailed     = 2
)

// DocumentTypes enumerates the accepted document types.
var DocumentTypes = map[string]bool{
	"pdf":  true,
	"txt":  true,
	"doc":  true,
	"docx": true,
	"md":   true,
}

// Document is an administrator-uploaded text source usable as grounding
// content. Content holds the extracted text; the raw file bytes live in
// object storage under ObjectName (empty for inline-created documents).
type Document struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	OriginalName   string     `gorm:"type:varchar(255)" json:"originalName"`
	Content        string     `gorm:"type:longtext" json:"content,omitempty"`
	Type           string     `gorm:"type:varchar(10);not null;index" json:"type"`
	Size           int64      `gorm:"not null;default:0" json:"size"`
	ObjectName     string     `gorm:"type:varchar(512)" json:"-"`
	Category       string     `gorm:"type:varchar(100)" json:"category"`
	Tags           TagList    `gorm:"type:varchar(500)" json:"tags"`
	IsActive       bool       `gorm:"not null;default:true;index" json:"isActive"`
	Status         int        `gorm:"type:tinyint;not null;default:1" json:"status"`
	AccessCount    int        `gorm:"not null;default:0" json:"accessCount"`
	UploadedBy     string     `gorm:"type:varchar(100);default:'admin'" json:"uploadedBy"`
	LastAccessedAt *time.Time `json:"lastAccessedAt"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table for this model.
func (Document) TableName() string {
	return "documents"
}
