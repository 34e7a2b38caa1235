// Package model defines the persistence and transport structures.
package model

import "time"

// FAQ is an administrator-curated question/answer pair usable as grounding
// content for the chat pipeline. Inactive entries are never selection
// candidates.
type FAQ struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Question     string    `gorm:"type:varchar(500);not null" json:"question"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	Category     string    `gorm:"type:varchar(100)" json:"category"`
	Tags         TagList   `gorm:"type:varchar(500)" json:"tags"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"isActive"`
	Priority     int       `gorm:"not null;default:0" json:"priority"`
	ViewCount    int       `gorm:"not null;default:0" json:"viewCount"`
	HelpfulCount int       `gorm:"not null;default:0" json:"helpfulCount"`
	CreatedBy    string    `gorm:"type:varchar(100);default:'admin'" json:"createdBy"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table for this model.
func (FAQ) TableName() string {
	return "faqs"
}
