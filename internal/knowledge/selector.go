// Package knowledge implements the grounded response pipeline: candidate
// selection, context composition and the local fallback responder.
package knowledge

import (
	"strings"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

const (
	// minTokenLen is the exclusive lower bound on match-token length.
	// Shorter words are too noisy to anchor a match.
	minTokenLen = 3

	// matchExcerptLen bounds the excerpt returned for a document match.
	matchExcerptLen = 200
)

// DocumentMatch is the result of a successful document lookup.
type DocumentMatch struct {
	Name    string
	Excerpt string
}

// Selector decides which knowledge-base entries are relevant to a query.
// The concrete matcher is deliberately simple keyword containment; the
// interface exists so it can be swapped without touching the composer or
// the dispatcher.
type Selector interface {
	MatchFAQ(query string, faqs []model.FAQ) *model.FAQ
	MatchDocument(query string, docs []model.Document) (DocumentMatch, bool)
}

type keywordSelector struct{}

// NewKeywordSelector returns the containment-based Selector.
func NewKeywordSelector() Selector {
	return keywordSelector{}
}

// matchTokens lowercases the query and keeps words longer than minTokenLen
// runes.
func matchTokens(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) > minTokenLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// MatchFAQ returns the first candidate whose question or answer contains any
// match token. Candidates are scanned in the order supplied; there is no
// ranking by match count.
func (keywordSelector) MatchFAQ(query string, faqs []model.FAQ) *model.FAQ {
	tokens := matchTokens(query)
	if len(tokens) == 0 {
		return nil
	}
	for i := range faqs {
		text := strings.ToLower(faqs[i].Question + " " + faqs[i].Answer)
		for _, token := range tokens {
			if strings.Contains(text, token) {
				return &faqs[i]
			}
		}
	}
	return nil
}

// MatchDocument returns an excerpt of the first candidate whose name or
// content contains any match token. The excerpt is the first 200 characters
// of the content, with "..." appended when the content is longer.
func (keywordSelector) MatchDocument(query string, docs []model.Document) (DocumentMatch, bool) {
	tokens := matchTokens(query)
	if len(tokens) == 0 {
		return DocumentMatch{}, false
	}
	for i := range docs {
		text := strings.ToLower(docs[i].Name + " " + docs[i].Content)
		for _, token := range tokens {
			if strings.Contains(text, token) {
				return DocumentMatch{
					Name:    docs[i].Name,
					Excerpt: truncate(docs[i].Content, matchExcerptLen),
				}, true
			}
		}
	}
	return DocumentMatch{}, false
}

// truncate cuts s to at most limit runes, appending "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
