package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

type mockSearchService struct {
	indexedFAQs  []uint
	indexedDocs  []uint
	removedFAQs  []uint
	removedDocs  []uint
	searchResult []model.SearchResponseDTO
}

func (m *mockSearchService) Search(ctx context.Context, query string, size int) ([]model.SearchResponseDTO, error) {
	return m.searchResult, nil
}
func (m *mockSearchService) IndexFAQ(ctx context.Context, faq *model.FAQ) {
	m.indexedFAQs = append(m.indexedFAQs, faq.ID)
}
func (m *mockSearchService) IndexDocument(ctx context.Context, doc *model.Document) {
	m.indexedDocs = append(m.indexedDocs, doc.ID)
}
func (m *mockSearchService) RemoveFAQ(ctx context.Context, id uint) {
	m.removedFAQs = append(m.removedFAQs, id)
}
func (m *mockSearchService) RemoveDocument(ctx context.Context, id uint) {
	m.removedDocs = append(m.removedDocs, id)
}

type recordingFAQRepository struct {
	mockFAQRepository
	created *model.FAQ
}

func (r *recordingFAQRepository) Create(faq *model.FAQ) error {
	faq.ID = 7
	r.created = faq
	return nil
}

type recordingDocumentRepository struct {
	mockDocumentRepository
	created *model.Document
}

func (r *recordingDocumentRepository) Create(doc *model.Document) error {
	doc.ID = 9
	r.created = doc
	return nil
}

func newTestAdminService(faqRepo *recordingFAQRepository, docRepo *recordingDocumentRepository, search *mockSearchService) AdminService {
	return NewAdminService(faqRepo, docRepo, newMockChatRepository(), search)
}

func TestCreateFAQ_Validation(t *testing.T) {
	svc := newTestAdminService(&recordingFAQRepository{}, &recordingDocumentRepository{}, &mockSearchService{})

	cases := []struct {
		name string
		in   FAQInput
		want error
	}{
		{"missing question", FAQInput{Answer: "a"}, ErrFAQFieldsRequired},
		{"missing answer", FAQInput{Question: "q"}, ErrFAQFieldsRequired},
		{"blank fields", FAQInput{Question: "  ", Answer: "\t"}, ErrFAQFieldsRequired},
		{"priority too high", FAQInput{Question: "q", Answer: "a", Priority: intPtr(11)}, ErrInvalidPriority},
		{"priority negative", FAQInput{Question: "q", Answer: "a", Priority: intPtr(-1)}, ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateFAQ(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Errorf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateFAQ_DefaultsAndIndexing(t *testing.T) {
	faqRepo := &recordingFAQRepository{}
	search := &mockSearchService{}
	svc := newTestAdminService(faqRepo, &recordingDocumentRepository{}, search)

	faq, err := svc.CreateFAQ(context.Background(), FAQInput{
		Question: "  How do refunds work?  ",
		Answer:   "Within five days.",
		Tags:     []string{" Billing ", "REFUNDS", ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	if faq.Question != "How do refunds work?" {
		t.Errorf("question must be trimmed, got %q", faq.Question)
	}
	if !faq.IsActive {
		t.Error("new FAQs default to active")
	}
	if len(faq.Tags) != 2 || faq.Tags[0] != "billing" || faq.Tags[1] != "refunds" {
		t.Errorf("tags must be normalized, got %v", faq.Tags)
	}
	if len(search.indexedFAQs) != 1 || search.indexedFAQs[0] != 7 {
		t.Errorf("create must mirror the FAQ into the index, got %v", search.indexedFAQs)
	}
}

func TestCreateDocument_InlineIsImmediatelyReady(t *testing.T) {
	docRepo := &recordingDocumentRepository{}
	search := &mockSearchService{}
	svc := newTestAdminService(&recordingFAQRepository{}, docRepo, search)

	doc, err := svc.CreateDocument(context.Background(), DocumentInput{
		Name:    "Return policy",
		Content: "Returns accepted within 30 days.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Status != model.DocumentStatusReady {
		t.Errorf("inline documents skip extraction, want ready status, got %d", doc.Status)
	}
	if doc.Type != "txt" {
		t.Errorf("missing type defaults to txt, got %q", doc.Type)
	}
	if doc.Size != int64(len("Returns accepted within 30 days.")) {
		t.Errorf("size must follow content length, got %d", doc.Size)
	}
	if len(search.indexedDocs) != 1 {
		t.Error("create must mirror the document into the index")
	}
}

func TestCreateDocument_Validation(t *testing.T) {
	svc := newTestAdminService(&recordingFAQRepository{}, &recordingDocumentRepository{}, &mockSearchService{})

	if _, err := svc.CreateDocument(context.Background(), DocumentInput{Name: "x"}); !errors.Is(err, ErrDocFieldsRequired) {
		t.Errorf("want ErrDocFieldsRequired, got %v", err)
	}
	if _, err := svc.CreateDocument(context.Background(), DocumentInput{Name: "x", Content: "y", Type: "exe"}); !errors.Is(err, ErrInvalidDocumentType) {
		t.Errorf("want ErrInvalidDocumentType, got %v", err)
	}
}

func TestStats_NeverNilRecentSessions(t *testing.T) {
	svc := newTestAdminService(&recordingFAQRepository{}, &recordingDocumentRepository{}, &mockSearchService{})

	stats, err := svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.RecentSessions == nil {
		t.Error("recentSessions must marshal as an empty array, not null")
	}
}

func intPtr(v int) *int { return &v }
