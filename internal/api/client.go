// Package api is the client for the external catalog service: product
// listing, single-product lookup and order submission. No retries and no
// policy beyond what the injected http.Client carries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/egannguyen/go-storefront/internal/entity"
)

// ErrProductNotFound is returned when the service has no product with the
// requested identifier.
var ErrProductNotFound = errors.New("product not found")

// OrderError is the service's typed rejection of an order submission.
type OrderError struct {
	Message string `json:"error"`
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order rejected: %s", e.Message)
}

// Client is the catalog service surface the storefront consumes.
type Client interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	SubmitOrder(ctx context.Context, order entity.Order) (*entity.OrderResult, error)
}

// HTTPClient talks JSON to the catalog service. Product image references
// come back relative; the client prefixes them with the CDN base.
type HTTPClient struct {
	baseURL string
	cdnURL  string
	hc      *http.Client
}

func NewHTTPClient(baseURL, cdnURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, cdnURL: cdnURL, hc: hc}
}

type listResponse struct {
	Total int              `json:"total"`
	Items []entity.Product `json:"items"`
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build products request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching products", resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}

	for i := range list.Items {
		list.Items[i].Image = c.cdnURL + list.Items[i].Image
	}
	return list.Items, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/product/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching product %s", resp.StatusCode, id)
	}

	var p entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	p.Image = c.cdnURL + p.Image
	return &p, nil
}

func (c *HTTPClient) SubmitOrder(ctx context.Context, order entity.Order) (*entity.OrderResult, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rejection OrderError
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil || rejection.Message == "" {
			return nil, fmt.Errorf("unexpected status %d submitting order", resp.StatusCode)
		}
		return nil, &rejection
	}

	var result entity.OrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode order result: %w", err)
	}
	return &result, nil
}
