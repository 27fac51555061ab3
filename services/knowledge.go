package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"petcare-chatbot/models"
)

// KnowledgeSearcher is the lookup contract the chat pipeline depends on
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string) ([]models.KnowledgeRecord, error)
}

// KnowledgeService queries the storefront backend's knowledge base
type KnowledgeService struct {
	baseURL    string
	httpClient *http.Client
}

// NewKnowledgeService creates a knowledge service client for the given backend
func NewKnowledgeService(baseURL string) *KnowledgeService {
	return &KnowledgeService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search returns ranked question/answer records for a free-text query.
// Any transport or payload problem is returned as an error; the caller
// decides whether "unreachable" and "no results" look the same.
func (k *KnowledgeService) Search(ctx context.Context, query string) ([]models.KnowledgeRecord, error) {
	params := url.Values{}
	params.Set("query", query)

	requestURL := fmt.Sprintf("%s/api/knowledge/search?%s", k.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create knowledge request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("knowledge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("knowledge API error %d: %s", resp.StatusCode, string(body))
	}

	var records []models.KnowledgeRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge response: %w", err)
	}

	return records, nil
}
