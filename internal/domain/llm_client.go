package domain

import (
	"context"
	"errors"
)

// Chat message roles understood by the generative backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrMissingAPIKey signals that no credential is configured for the
// generative backend. Any call requiring classification or recommendation
// fails hard on it.
var ErrMissingAPIKey = errors.New("generative backend API key is not configured")

// Message is one turn of a chat-completions conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions tune a single completion request.
type ChatOptions struct {
	Temperature float64
	MaxTokens   int
}

// LLMResponse carries the assistant text returned by the backend.
type LLMResponse struct {
	Text string
}

// LLMClient defines the capability to send chat messages to a generative
// backend and receive a textual reply.
type LLMClient interface {
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (*LLMResponse, error)
	Version() string
}
