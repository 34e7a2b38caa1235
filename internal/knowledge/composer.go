package knowledge

import (
	"fmt"
	"strings"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

// System-wide candidate caps. Callers must not pass more than this many
// active entries into Compose; the composer itself does not re-filter.
const (
	MaxContextFAQs      = 20
	MaxContextDocuments = 10
)

const (
	// maxHistoryTurns bounds the conversation tail included in the context.
	maxHistoryTurns = 5

	// contextExcerptLen bounds each document excerpt inside the composed
	// context. Wider than the selector's match excerpt: the provider can
	// digest more than the fallback answer should quote.
	contextExcerptLen = 800
)

const contextPreamble = `You are an intelligent customer support assistant. Your goal is to provide helpful, accurate, and contextual responses to customer queries.

IMPORTANT GUIDELINES:
- Always be polite, professional, and helpful
- Use the provided FAQs and company documents to answer questions accurately
- If you don't know something, admit it and suggest contacting human support
- Provide specific, actionable answers when possible
- Keep responses concise but comprehensive
`

const contextClosing = `
Based on the above information, please provide accurate and helpful responses to customer queries.
If the answer is in the FAQs or documents, reference that information.
If not, provide general helpful guidance and suggest contacting support for specific issues.
`

// Compose assembles the bounded system context for one chat turn: a fixed
// preamble, the candidate FAQs and document excerpts in the order supplied,
// the last five conversation turns verbatim, and a fixed closing
// instruction. Composing twice with identical inputs yields byte-identical
// output.
func Compose(faqs []model.FAQ, docs []model.Document, recentTurns []string) string {
	var b strings.Builder
	b.WriteString(contextPreamble)

	if len(faqs) > 0 {
		b.WriteString("\n\n=== COMPANY FAQs ===\n")
		for i, faq := range faqs {
			fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n\n", i+1, faq.Question, faq.Answer)
		}
	}

	if len(docs) > 0 {
		b.WriteString("\n\n=== COMPANY DOCUMENTS & POLICIES ===\n")
		for i, doc := range docs {
			fmt.Fprintf(&b, "%d. Document: %s\nContent: %s\n\n", i+1, doc.Name, truncate(doc.Content, contextExcerptLen))
		}
	}

	if len(recentTurns) > 0 {
		if len(recentTurns) > maxHistoryTurns {
			recentTurns = recentTurns[len(recentTurns)-maxHistoryTurns:]
		}
		b.WriteString("\n\n=== RECENT CONVERSATION CONTEXT ===\n")
		b.WriteString(strings.Join(recentTurns, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString(contextClosing)
	return b.String()
}
