package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/es"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
)

const searchSnippetLen = 200

// SearchService maintains the knowledge search index and answers admin
// full-text queries over FAQs and documents.
type SearchService interface {
	Search(ctx context.Context, query string, size int) ([]model.SearchResponseDTO, error)
	IndexFAQ(ctx context.Context, faq *model.FAQ)
	IndexDocument(ctx context.Context, doc *model.Document)
	RemoveFAQ(ctx context.Context, id uint)
	RemoveDocument(ctx context.Context, id uint)
}

type searchService struct {
	indexName string
}

// NewSearchService creates a new SearchService instance.
func NewSearchService(esCfg config.ElasticsearchConfig) SearchService {
	return &searchService{indexName: esCfg.IndexName}
}

// Search runs a multi_match over title and content, filtered to active
// entries. Title matches weigh double.
func (s *searchService) Search(ctx context.Context, query string, size int) ([]model.SearchResponseDTO, error) {
	if size < 1 || size > 50 {
		size = 10
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^2", "content"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_active": true},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := es.ESClient.Search(
		es.ESClient.Search.WithContext(ctx),
		es.ESClient.Search.WithIndex(s.indexName),
		es.ESClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Errorf("knowledge search failed: %s", res.String())
		return nil, errors.New("knowledge search failed")
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64              `json:"_score"`
				Source model.EsKnowledgeDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]model.SearchResponseDTO, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, model.SearchResponseDTO{
			Kind:     hit.Source.Kind,
			RefID:    hit.Source.RefID,
			Title:    hit.Source.Title,
			Snippet:  snippet(hit.Source.Content, searchSnippetLen),
			Category: hit.Source.Category,
			Score:    hit.Score,
		})
	}
	return results, nil
}

// IndexFAQ mirrors an FAQ into the search index. Index maintenance is
// best-effort: MySQL stays the source of truth and a failed upsert only
// logs.
func (s *searchService) IndexFAQ(ctx context.Context, faq *model.FAQ) {
	doc := model.EsKnowledgeDoc{
		KnowledgeID: knowledgeID(model.KnowledgeKindFAQ, faq.ID),
		Kind:        model.KnowledgeKindFAQ,
		RefID:       faq.ID,
		Title:       faq.Question,
		Content:     faq.Answer,
		Category:    faq.Category,
		Tags:        faq.Tags,
		IsActive:    faq.IsActive,
	}
	if err := es.IndexKnowledge(ctx, s.indexName, doc); err != nil {
		log.Errorf("failed to index FAQ %d: %v", faq.ID, err)
	}
}

// IndexDocument mirrors a document into the search index.
func (s *searchService) IndexDocument(ctx context.Context, d *model.Document) {
	doc := model.EsKnowledgeDoc{
		KnowledgeID: knowledgeID(model.KnowledgeKindDocument, d.ID),
		Kind:        model.KnowledgeKindDocument,
		RefID:       d.ID,
		Title:       d.Name,
		Content:     d.Content,
		Category:    d.Category,
		Tags:        d.Tags,
		IsActive:    d.IsActive,
	}
	if err := es.IndexKnowledge(ctx, s.indexName, doc); err != nil {
		log.Errorf("failed to index document %d: %v", d.ID, err)
	}
}

func (s *searchService) RemoveFAQ(ctx context.Context, id uint) {
	if err := es.DeleteKnowledge(ctx, s.indexName, knowledgeID(model.KnowledgeKindFAQ, id)); err != nil {
		log.Errorf("failed to remove FAQ %d from index: %v", id, err)
	}
}

func (s *searchService) RemoveDocument(ctx context.Context, id uint) {
	if err := es.DeleteKnowledge(ctx, s.indexName, knowledgeID(model.KnowledgeKindDocument, id)); err != nil {
		log.Errorf("failed to remove document %d from index: %v", id, err)
	}
}

func knowledgeID(kind string, refID uint) string {
	return fmt.Sprintf("%s:%d", kind, refID)
}

// snippet trims content to a display length, counting runes so multibyte
// text is not split.
func snippet(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
