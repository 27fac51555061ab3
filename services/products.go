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

// maxProducts caps how many catalog entries one chat turn may carry
const maxProducts = 6

// ProductFetcher is the catalog contract the chat pipeline depends on
type ProductFetcher interface {
	Fetch(ctx context.Context, filters map[string]string) ([]models.Product, error)
}

// ProductService queries the storefront backend's product catalog
type ProductService struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductService creates a product catalog client for the given backend
func NewProductService(baseURL string) *ProductService {
	return &ProductService{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch returns catalog products matching the given filters, capped to
// the first 6. An empty filter set is valid and returns an unfiltered
// catalog page.
func (p *ProductService) Fetch(ctx context.Context, filters map[string]string) ([]models.Product, error) {
	params := url.Values{}
	for key, value := range filters {
		params.Set(key, value)
	}

	requestURL := p.baseURL + "/api/products"
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create product request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("product API error %d: %s", resp.StatusCode, string(body))
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product response: %w", err)
	}

	if len(products) > maxProducts {
		products = products[:maxProducts]
	}

	return products, nil
}
