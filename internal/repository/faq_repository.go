// Package repository implements the data access layer.
package repository

import (
	"gorm.io/gorm"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

// FAQListQuery filters the admin FAQ listing.
type FAQListQuery struct {
	Category string
	Active   *bool
	Search   string
	Page     int
	Limit    int
}

// FAQRepository defines FAQ persistence operations. The chat pipeline only
// ever calls ListActive; everything else serves the admin surface.
type FAQRepository interface {
	Create(faq *model.FAQ) error
	GetByID(id uint) (*model.FAQ, error)
	Update(faq *model.FAQ) error
	Delete(id uint) error
	List(q FAQListQuery) ([]model.FAQ, int64, error)
	ListActive(limit int) ([]model.FAQ, error)
	CountActive() (int64, error)
}

type faqRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates a new FAQRepository instance.
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) Create(faq *model.FAQ) error {
	return r.db.Create(faq).Error
}

func (r *faqRepository) GetByID(id uint) (*model.FAQ, error) {
	var faq model.FAQ
	if err := r.db.First(&faq, id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepository) Update(faq *model.FAQ) error {
	return r.db.Save(faq).Error
}

func (r *faqRepository) Delete(id uint) error {
	return r.db.Delete(&model.FAQ{}, id).Error
}

// List returns a page of FAQs ordered by priority then recency, with the
// total count for pagination.
func (r *faqRepository) List(q FAQListQuery) ([]model.FAQ, int64, error) {
	tx := r.db.Model(&model.FAQ{})
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Active != nil {
		tx = tx.Where("is_active = ?", *q.Active)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("question LIKE ? OR answer LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var faqs []model.FAQ
	err := tx.Order("priority desc, created_at desc").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&faqs).Error
	return faqs, total, err
}

// ListActive returns the selection candidates for the chat pipeline,
// ordered by priority descending then recency descending.
func (r *faqRepository) ListActive(limit int) ([]model.FAQ, error) {
	var faqs []model.FAQ
	err := r.db.Where("is_active = ?", true).
		Order("priority desc, created_at desc").
		Limit(limit).
		Find(&faqs).Error
	return faqs, err
}

func (r *faqRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.FAQ{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
