package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"reelguard/internal/domain"
)

const maxResponseBytes = 1 << 20

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client sends chat-completions requests to an OpenAI-compatible endpoint.
type Client struct {
	url    string
	apiKey string
	model  string
	client *http.Client
	logger *slog.Logger
}

// NewClient constructs a chat client for the given endpoint and model.
func NewClient(url, apiKey, model string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: httpClient,
		logger: logger,
	}
}

// Chat sends one completion request and returns the assistant message.
// A missing credential fails before any network dial.
func (c *Client) Chat(ctx context.Context, messages []domain.Message, opts domain.ChatOptions) (*domain.LLMResponse, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr != nil || errResp.Error.Message == "" {
			return nil, fmt.Errorf("chat endpoint returned %d with unreadable error body", resp.StatusCode)
		}
		return nil, fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, errResp.Error.Message)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("chat response contains no choices")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("chat response contains no content")
	}

	return &domain.LLMResponse{Text: content}, nil
}

// Version returns the wrapped model name.
func (c *Client) Version() string {
	return c.model
}

var _ domain.LLMClient = (*Client)(nil)
