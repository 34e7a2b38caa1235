package model

import "time"

// AIResponse is the result of one dispatched chat turn. It is ephemeral:
// built per request and folded into the stored AI message. Degraded marks
// the sentinel apology path taken after a provider failure, as opposed to a
// routine local-fallback answer.
type AIResponse struct {
	Content        string    `json:"content"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	Timestamp      time.Time `json:"timestamp"`
	TokensUsed     int       `json:"tokensUsed"`
	ResponseTimeMs int64     `json:"responseTime"`
	Degraded       bool      `json:"degraded"`
}
