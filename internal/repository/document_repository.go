package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

// DocumentListQuery filters the admin document listing.
type DocumentListQuery struct {
	Category string
	Type     string
	Active   *bool
	Search   string
	Page     int
	Limit    int
}

// DocumentRepository defines document persistence operations.
type DocumentRepository interface {
	Create(doc *model.Document) error
	GetByID(id uint) (*model.Document, error)
	Update(doc *model.Document) error
	Delete(id uint) error
	List(q DocumentListQuery) ([]model.Document, int64, error)
	ListActiveForContext(limit int) ([]model.Document, error)
	IncrementAccess(id uint) error
	CountActive() (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository instance.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *model.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) GetByID(id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) Update(doc *model.Document) error {
	return r.db.Save(doc).Error
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Document{}, id).Error
}

// List returns a page of documents without their content, which can be
// megabytes per row and is never needed in a listing.
func (r *documentRepository) List(q DocumentListQuery) ([]model.Document, int64, error) {
	tx := r.db.Model(&model.Document{})
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	if q.Active != nil {
		tx = tx.Where("is_active = ?", *q.Active)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("name LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []model.Document
	err := tx.Omit("content").
		Order("created_at desc").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&docs).Error
	return docs, total, err
}

// ListActiveForContext returns the candidate documents for the chat
// pipeline with only the fields the selector and composer need.
func (r *documentRepository) ListActiveForContext(limit int) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.Select("id", "name", "content", "category").
		Where("is_active = ? AND status = ?", true, model.DocumentStatusReady).
		Order("created_at desc").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}

// IncrementAccess bumps the access counter on a single-document read.
func (r *documentRepository) IncrementAccess(id uint) error {
	return r.db.Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_count":     gorm.Expr("access_count + ?", 1),
			"last_accessed_at": time.Now(),
		}).Error
}

func (r *documentRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Document{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
