package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"petcare-chatbot/models"
)

// Fixed generation parameters for every chat turn
const (
	completionMaxTokens   = 300
	completionTemperature = 0.7
)

// Completer is the completion contract the chat pipeline depends on
type Completer interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
	IsConfigured() bool
}

// CompletionService talks to an OpenRouter-compatible chat completions endpoint
type CompletionService struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

// completionRequest is the wire request to the completion service
type completionRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

// completionResponse is the wire response from the completion service
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// NewCompletionService creates a completion client. An empty apiKey
// produces a client that reports itself unconfigured.
func NewCompletionService(apiKey, url, model string) *CompletionService {
	return &CompletionService{
		apiKey: apiKey,
		url:    url,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // generation is slower than retrieval
		},
	}
}

// Complete sends the message list to the completion service and
// returns the first choice's text. Non-2xx responses, API-level error
// payloads, and missing choices are all errors, distinct from an
// empty-but-successful completion.
func (c *CompletionService) Complete(ctx context.Context, messages []models.Message) (string, error) {
	request := completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("completion API error: %s", completion.Error.Message)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}

// IsConfigured reports whether an API key is present
func (c *CompletionService) IsConfigured() bool {
	return c.apiKey != ""
}

// Model returns the configured model identifier
func (c *CompletionService) Model() string {
	return c.model
}
