// Package llm provides the client for the configured response provider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
)

// Result is the explicit shape a successful completion must provide.
// TokensUsed defaults to zero when the provider does not report usage.
type Result struct {
	Content    string
	TokensUsed int
}

// Client is the interface to the external provider. Any transport failure,
// non-2xx status or payload without content is returned as an error; the
// caller decides how to degrade.
type Client interface {
	Chat(ctx context.Context, systemContext, userMessage, imageURL string) (*Result, error)
}

type openAIClient struct {
	cfg    config.AIConfig
	client *http.Client
}

// NewClient creates a client for an OpenAI-compatible chat completions
// endpoint using the injected provider configuration.
func NewClient(cfg config.AIConfig) Client {
	return &openAIClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// contentPart is one element of a multimodal message content array.
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Chat sends one completion request carrying the system context and the
// user message, plus an optional image attachment reference.
func (c *openAIClient) Chat(ctx context.Context, systemContext, userMessage, imageURL string) (*Result, error) {
	userContent := []contentPart{{Type: "text", Text: userMessage}}
	if imageURL != "" {
		userContent = append(userContent, contentPart{
			Type:     "image_url",
			ImageURL: &imageRef{URL: imageURL},
		})
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: []contentPart{{Type: "text", Text: systemContext}}},
			{Role: "user", Content: userContent},
		},
		MaxTokens: c.cfg.MaxTokens,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chat api returned status %s, body: %s", resp.Status, string(body))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("chat api returned no content")
	}

	return &Result{
		Content:    completion.Choices[0].Message.Content,
		TokensUsed: completion.Usage.TotalTokens,
	}, nil
}
