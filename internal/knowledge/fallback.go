package knowledge

import (
	"context"
	"fmt"
	"time"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

// Simulated token usage ranges per answer branch, inclusive.
const (
	faqTokensMin      = 100
	faqTokensSpan     = 200 // 100..299
	docTokensMin      = 150
	docTokensSpan     = 250 // 150..399
	genericTokensMin  = 100
	genericTokensSpan = 200 // 100..299
)

const (
	faqAnswerPrefix = "Based on our FAQ: "
	docAnswerPrefix = "According to our documentation: "
)

// FallbackResult is the local responder's answer.
type FallbackResult struct {
	Content    string
	TokensUsed int
}

// FallbackResponder answers without any external call, grounding the reply
// in the supplied candidates via the Selector. The token counter and the
// artificial delay are injected so tests can pin them down.
type FallbackResponder struct {
	selector Selector
	intn     func(n int) int
	minDelay time.Duration
	maxDelay time.Duration
}

// NewFallbackResponder builds a responder. intn must return a uniform value
// in [0,n); pass a seeded rand.Rand's Intn for reproducible output. A zero
// maxDelay disables the artificial latency.
func NewFallbackResponder(selector Selector, intn func(n int) int, minDelay, maxDelay time.Duration) *FallbackResponder {
	return &FallbackResponder{
		selector: selector,
		intn:     intn,
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Respond produces a deterministic knowledge-grounded answer: FAQ match
// first, then document match, then a generic acknowledgment echoing the
// user's message. It always returns a result.
func (r *FallbackResponder) Respond(ctx context.Context, message string, faqs []model.FAQ, docs []model.Document) *FallbackResult {
	r.sleep(ctx)

	if faq := r.selector.MatchFAQ(message, faqs); faq != nil {
		return &FallbackResult{
			Content:    faqAnswerPrefix + faq.Answer,
			TokensUsed: r.intn(faqTokensSpan) + faqTokensMin,
		}
	}

	if match, ok := r.selector.MatchDocument(message, docs); ok {
		return &FallbackResult{
			Content:    docAnswerPrefix + match.Excerpt,
			TokensUsed: r.intn(docTokensSpan) + docTokensMin,
		}
	}

	return &FallbackResult{
		Content: fmt.Sprintf("Your question about %q has been processed using our knowledge base. "+
			"I can provide detailed analysis and support based on the information available to me. "+
			"Would you like me to elaborate on any specific aspect of this topic?", message),
		TokensUsed: r.intn(genericTokensSpan) + genericTokensMin,
	}
}

// sleep waits for a random duration in [minDelay, maxDelay], honoring
// context cancellation. The delay keeps observed latency consistent with
// the real-provider path.
func (r *FallbackResponder) sleep(ctx context.Context) {
	if r.maxDelay <= 0 {
		return
	}
	delay := r.minDelay
	if span := r.maxDelay - r.minDelay; span > 0 {
		delay += time.Duration(r.intn(int(span) + 1))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
