package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
)

// Validation failures surfaced to the admin API as 400s.
var (
	ErrFAQFieldsRequired   = errors.New("question and answer are required")
	ErrInvalidPriority     = errors.New("priority must be between 0 and 10")
	ErrDocFieldsRequired   = errors.New("name and content are required")
	ErrInvalidDocumentType = errors.New("unsupported document type")
)

const recentSessionCount = 5

// FAQInput carries FAQ create/update fields from the admin API.
type FAQInput struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	IsActive *bool    `json:"isActive"`
	Priority *int     `json:"priority"`
}

// DocumentInput carries inline document create/update fields. Uploaded
// files arrive through the upload service instead.
type DocumentInput struct {
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	IsActive *bool    `json:"isActive"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalChats     int64               `json:"totalChats"`
	ActiveChats    int64               `json:"activeChats"`
	TotalFAQs      int64               `json:"totalFAQs"`
	TotalDocuments int64               `json:"totalDocuments"`
	TodayChats     int64               `json:"todayChats"`
	RecentSessions []model.ChatSession `json:"recentSessions"`
}

// AdminService manages the knowledge base and the dashboard.
type AdminService interface {
	CreateFAQ(ctx context.Context, in FAQInput) (*model.FAQ, error)
	GetFAQ(id uint) (*model.FAQ, error)
	UpdateFAQ(ctx context.Context, id uint, in FAQInput) (*model.FAQ, error)
	DeleteFAQ(ctx context.Context, id uint) error
	ListFAQs(q repository.FAQListQuery) ([]model.FAQ, int64, error)

	CreateDocument(ctx context.Context, in DocumentInput) (*model.Document, error)
	GetDocument(id uint) (*model.Document, error)
	UpdateDocument(ctx context.Context, id uint, in DocumentInput) (*model.Document, error)
	DeleteDocument(ctx context.Context, id uint) error
	ListDocuments(q repository.DocumentListQuery) ([]model.Document, int64, error)

	Stats() (*DashboardStats, error)
}

type adminService struct {
	faqRepo   repository.FAQRepository
	docRepo   repository.DocumentRepository
	chatRepo  repository.ChatRepository
	searchSvc SearchService
}

// NewAdminService creates a new AdminService instance.
func NewAdminService(faqRepo repository.FAQRepository, docRepo repository.DocumentRepository, chatRepo repository.ChatRepository, searchSvc SearchService) AdminService {
	return &adminService{
		faqRepo:   faqRepo,
		docRepo:   docRepo,
		chatRepo:  chatRepo,
		searchSvc: searchSvc,
	}
}

func validateFAQInput(in FAQInput) error {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" {
		return ErrFAQFieldsRequired
	}
	if in.Priority != nil && (*in.Priority < 0 || *in.Priority > 10) {
		return ErrInvalidPriority
	}
	return nil
}

func (s *adminService) CreateFAQ(ctx context.Context, in FAQInput) (*model.FAQ, error) {
	if err := validateFAQInput(in); err != nil {
		return nil, err
	}

	faq := &model.FAQ{
		Question: strings.TrimSpace(in.Question),
		Answer:   strings.TrimSpace(in.Answer),
		Category: in.Category,
		Tags:     model.NormalizeTags(in.Tags),
		IsActive: true,
	}
	if in.IsActive != nil {
		faq.IsActive = *in.IsActive
	}
	if in.Priority != nil {
		faq.Priority = *in.Priority
	}
	if err := s.faqRepo.Create(faq); err != nil {
		return nil, err
	}
	s.searchSvc.IndexFAQ(ctx, faq)
	return faq, nil
}

func (s *adminService) GetFAQ(id uint) (*model.FAQ, error) {
	return s.faqRepo.GetByID(id)
}

func (s *adminService) UpdateFAQ(ctx context.Context, id uint, in FAQInput) (*model.FAQ, error) {
	if err := validateFAQInput(in); err != nil {
		return nil, err
	}

	faq, err := s.faqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	faq.Question = strings.TrimSpace(in.Question)
	faq.Answer = strings.TrimSpace(in.Answer)
	faq.Category = in.Category
	faq.Tags = model.NormalizeTags(in.Tags)
	if in.IsActive != nil {
		faq.IsActive = *in.IsActive
	}
	if in.Priority != nil {
		faq.Priority = *in.Priority
	}
	if err := s.faqRepo.Update(faq); err != nil {
		return nil, err
	}
	s.searchSvc.IndexFAQ(ctx, faq)
	return faq, nil
}

func (s *adminService) DeleteFAQ(ctx context.Context, id uint) error {
	if _, err := s.faqRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.faqRepo.Delete(id); err != nil {
		return err
	}
	s.searchSvc.RemoveFAQ(ctx, id)
	return nil
}

func (s *adminService) ListFAQs(q repository.FAQListQuery) ([]model.FAQ, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.faqRepo.List(q)
}

func validateDocumentInput(in DocumentInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Content) == "" {
		return ErrDocFieldsRequired
	}
	if in.Type != "" && !model.DocumentTypes[strings.ToLower(in.Type)] {
		return ErrInvalidDocumentType
	}
	return nil
}

// CreateDocument inserts an inline text document. It is immediately ready
// for the chat pipeline, unlike uploads which go through extraction first.
func (s *adminService) CreateDocument(ctx context.Context, in DocumentInput) (*model.Document, error) {
	if err := validateDocumentInput(in); err != nil {
		return nil, err
	}

	docType := strings.ToLower(in.Type)
	if docType == "" {
		docType = "txt"
	}
	doc := &model.Document{
		Name:         strings.TrimSpace(in.Name),
		OriginalName: strings.TrimSpace(in.Name),
		Content:      in.Content,
		Type:         docType,
		Size:         int64(len(in.Content)),
		Category:     in.Category,
		Tags:         model.NormalizeTags(in.Tags),
		IsActive:     true,
		Status:       model.DocumentStatusReady,
	}
	if in.IsActive != nil {
		doc.IsActive = *in.IsActive
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}
	s.searchSvc.IndexDocument(ctx, doc)
	return doc, nil
}

// GetDocument returns one document with content and bumps its access
// counter.
func (s *adminService) GetDocument(id uint) (*model.Document, error) {
	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.docRepo.IncrementAccess(id); err != nil {
		return nil, err
	}
	doc.AccessCount++
	return doc, nil
}

func (s *adminService) UpdateDocument(ctx context.Context, id uint, in DocumentInput) (*model.Document, error) {
	if err := validateDocumentInput(in); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	doc.Name = strings.TrimSpace(in.Name)
	doc.Category = in.Category
	doc.Tags = model.NormalizeTags(in.Tags)
	if in.Type != "" {
		doc.Type = strings.ToLower(in.Type)
	}
	if doc.Content != in.Content {
		doc.Content = in.Content
		doc.Size = int64(len(in.Content))
	}
	if in.IsActive != nil {
		doc.IsActive = *in.IsActive
	}
	if err := s.docRepo.Update(doc); err != nil {
		return nil, err
	}
	s.searchSvc.IndexDocument(ctx, doc)
	return doc, nil
}

func (s *adminService) DeleteDocument(ctx context.Context, id uint) error {
	if _, err := s.docRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.docRepo.Delete(id); err != nil {
		return err
	}
	s.searchSvc.RemoveDocument(ctx, id)
	return nil
}

func (s *adminService) ListDocuments(q repository.DocumentListQuery) ([]model.Document, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.docRepo.List(q)
}

// Stats aggregates the dashboard numbers in one call.
func (s *adminService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalChats, err = s.chatRepo.CountSessions(nil); err != nil {
		return nil, err
	}
	active := true
	if stats.ActiveChats, err = s.chatRepo.CountSessions(&active); err != nil {
		return nil, err
	}
	if stats.TotalFAQs, err = s.faqRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.TotalDocuments, err = s.docRepo.CountActive(); err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.TodayChats, err = s.chatRepo.CountSessionsSince(midnight); err != nil {
		return nil, err
	}

	if stats.RecentSessions, err = s.chatRepo.RecentSessions(recentSessionCount); err != nil {
		return nil, err
	}
	if stats.RecentSessions == nil {
		stats.RecentSessions = []model.ChatSession{}
	}
	return stats, nil
}
