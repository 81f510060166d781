// internal/models/chat.go
package models

// Turn is one prior exchange supplied by the caller. The core never stores
// history between calls; it only forwards a bounded window to the LLM prompt.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound payload for the chat operation.
type ChatRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
}

// ChatResponse is the outbound payload. Error is nil for answered requests;
// clarifications and fallback messages travel in Reply, not Error.
type ChatResponse struct {
	Reply string  `json:"reply"`
	Error *string `json:"error"`
}
