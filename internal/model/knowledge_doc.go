package model

// Knowledge entry kinds stored in the search index.
const (
	KnowledgeKindFAQ      = "faq"
	KnowledgeKindDocument = "document"
)

// EsKnowledgeDoc is the flat structure indexed into Elasticsearch for the
// admin knowledge search. KnowledgeID is "{kind}:{refID}".
type EsKnowledgeDoc struct {
	KnowledgeID string   `json:"knowledge_id"`
	Kind        string   `json:"kind"`
	RefID       uint     `json:"ref_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsActive    bool     `json:"is_active"`
}

// SearchResponseDTO is one admin search hit returned to the frontend.
type SearchResponseDTO struct {
	Kind     string  `json:"kind"`
	RefID    uint    `json:"refId"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}
