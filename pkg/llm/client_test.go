package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
)

func newTestClient(baseURL string) Client {
	return NewClient(config.AIConfig{
		Provider:  "Test Provider",
		Model:     "test-model",
		APIKey:    "test-key",
		BaseURL:   baseURL,
		MaxTokens: 500,
	})
}

func TestChat_Success(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "Click Forgot Password."}}],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Chat(context.Background(), "system context", "how do I reset?", "")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if res.Content != "Click Forgot Password." {
		t.Errorf("unexpected content: %s", res.Content)
	}
	if res.TokensUsed != 42 {
		t.Errorf("expected 42 tokens, got %d", res.TokensUsed)
	}
	if gotBody["model"] != "test-model" {
		t.Errorf("unexpected model in request: %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(500) {
		t.Errorf("unexpected max_tokens in request: %v", gotBody["max_tokens"])
	}
}

func TestChat_ImageAttachment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		user := req.Messages[1]
		if len(user.Content) != 2 {
			t.Fatalf("expected 2 content parts, got %d", len(user.Content))
		}
		if user.Content[1].Type != "image_url" || user.Content[1].ImageURL.URL != "https://example.com/shot.png" {
			t.Errorf("image part not forwarded: %+v", user.Content[1])
		}
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Chat(context.Background(), "ctx", "what is this?", "https://example.com/shot.png")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if res.TokensUsed != 0 {
		t.Errorf("expected zero tokens when usage is unreported, got %d", res.TokensUsed)
	}
}

func TestChat_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Chat(context.Background(), "ctx", "hello", "")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestChat_MissingContent(t *testing.T) {
	cases := map[string]string{
		"empty choices": `{"choices": []}`,
		"empty content": `{"choices": [{"message": {"content": ""}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Chat(context.Background(), "ctx", "hello", "")
			if err == nil {
				t.Fatal("expected error for payload without content")
			}
		})
	}
}

func TestChat_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Chat(context.Background(), "ctx", "hello", "")
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
