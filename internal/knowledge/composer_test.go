package knowledge

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
)

func TestCompose_Deterministic(t *testing.T) {
	faqs := []model.FAQ{
		{Question: "How do I reset my password?", Answer: "Click Forgot Password."},
		{Question: "How do I contact support?", Answer: "Email support@example.com."},
	}
	docs := []model.Document{
		{Name: "Refund policy", Content: "Refunds are processed within 5 business days."},
	}
	history := []string{"Hello", "Hi! How can I help?"}

	first := Compose(faqs, docs, history)
	second := Compose(faqs, docs, history)
	if first != second {
		t.Error("composing twice with identical inputs must yield identical output")
	}
}

func TestCompose_AlwaysCarriesPreambleAndClosing(t *testing.T) {
	ctx := Compose(nil, nil, nil)
	if !strings.HasPrefix(ctx, "You are an intelligent customer support assistant.") {
		t.Error("context must begin with the instruction preamble")
	}
	if !strings.Contains(ctx, "suggest contacting support for specific issues") {
		t.Error("context must end with the closing instruction")
	}
	if strings.Contains(ctx, "=== COMPANY FAQs ===") {
		t.Error("empty FAQ list must not emit an FAQ section")
	}
	if strings.Contains(ctx, "=== COMPANY DOCUMENTS & POLICIES ===") {
		t.Error("empty document list must not emit a document section")
	}
	if strings.Contains(ctx, "=== RECENT CONVERSATION CONTEXT ===") {
		t.Error("empty history must not emit a conversation section")
	}
}

func TestCompose_FAQSectionFormat(t *testing.T) {
	faqs := []model.FAQ{
		{Question: "Q one?", Answer: "A one."},
		{Question: "Q two?", Answer: "A two."},
	}
	ctx := Compose(faqs, nil, nil)
	if !strings.Contains(ctx, "1. Q: Q one?\n   A: A one.\n") {
		t.Error("first FAQ entry not formatted as expected")
	}
	if !strings.Contains(ctx, "2. Q: Q two?\n   A: A two.\n") {
		t.Error("second FAQ entry not formatted as expected")
	}
	// Order supplied is order emitted; the composer does not re-sort.
	if strings.Index(ctx, "Q one?") > strings.Index(ctx, "Q two?") {
		t.Error("FAQ entries must keep the supplied order")
	}
}

func TestCompose_DocumentExcerptBound(t *testing.T) {
	long := strings.Repeat("a", 801)
	docs := []model.Document{
		{Name: "Long doc", Content: long},
		{Name: "Short doc", Content: "short content"},
		{Name: "Empty doc", Content: ""},
	}
	ctx := Compose(nil, docs, nil)

	if !strings.Contains(ctx, "1. Document: Long doc\nContent: "+strings.Repeat("a", 800)+"...\n") {
		t.Error("long content must be cut to 800 characters with ellipsis")
	}
	if strings.Contains(ctx, strings.Repeat("a", 801)) {
		t.Error("content beyond the excerpt bound leaked into the context")
	}
	if !strings.Contains(ctx, "2. Document: Short doc\nContent: short content\n") {
		t.Error("short content must be included verbatim")
	}
	if !strings.Contains(ctx, "3. Document: Empty doc\nContent: \n") {
		t.Error("absent content must render as an empty excerpt")
	}
}

func TestCompose_HistoryBounding(t *testing.T) {
	turns := make([]string, 8)
	for i := range turns {
		turns[i] = fmt.Sprintf("turn-%d", i+1)
	}
	ctx := Compose(nil, nil, turns)

	for i := 1; i <= 3; i++ {
		if strings.Contains(ctx, fmt.Sprintf("turn-%d\n", i)) {
			t.Errorf("turn-%d should have been trimmed", i)
		}
	}
	want := "turn-4\nturn-5\nturn-6\nturn-7\nturn-8"
	if !strings.Contains(ctx, want) {
		t.Error("the last five turns must appear newline-joined in original order")
	}
}
