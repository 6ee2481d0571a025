// Package client implements the storefront's HTTP client for the
// GreenMarket API: product and catalog reads, cart verification and order
// submission. Every call is a single attempt; callers decide what a failure
// means (the cart layer treats any product-fetch failure as "unavailable").
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// Client talks to one GreenMarket API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// APIError is a non-2xx response carrying the server's message. The message
// is shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// FetchProduct retrieves a single product by id. Any transport failure,
// non-200 status or malformed body comes back as an error; there is no
// retry and no distinction the caller needs beyond "not available".
func (c *Client) FetchProduct(ctx context.Context, id int) (*models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/products/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var p models.Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("malformed product response: %w", err)
	}
	return &p, nil
}

// FetchCatalog retrieves the full product list. The request carries a
// timestamp query parameter to defeat intermediary caches.
func (c *Client) FetchCatalog(ctx context.Context) ([]models.Product, error) {
	url := fmt.Sprintf("%s/api/products?timestamp=%s", c.baseURL,
		strconv.FormatInt(time.Now().UnixMilli(), 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("malformed catalog response: %w", err)
	}
	return products, nil
}

// VerifyResult is the server's verdict on a submitted cart.
type VerifyResult struct {
	Valid   bool                  `json:"valid"`
	Cart    []models.CartLineItem `json:"cart"`
	Message string                `json:"message"`
}

// VerifyCart submits the full cart for server-side stock verification.
func (c *Client) VerifyCart(ctx context.Context, items []models.CartLineItem) (*VerifyResult, error) {
	body := struct {
		Items []models.CartLineItem `json:"items"`
	}{Items: items}

	var result VerifyResult
	if err := c.postJSON(ctx, "/api/cart/verify", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OrderLine is a product reference with a quantity, as submitted at checkout.
type OrderLine struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

// OrderConfirmation is the server's response to a successful checkout.
type OrderConfirmation struct {
	OrderID   int     `json:"orderId"`
	Reference string  `json:"reference"`
	Timestamp string  `json:"timestamp"`
	Total     float64 `json:"total"`
}

// Checkout submits the order. On a non-200 response the server's message is
// returned as an *APIError, exactly as received.
func (c *Client) Checkout(ctx context.Context, items []OrderLine, info models.PaymentInfo) (*OrderConfirmation, error) {
	body := struct {
		Items         []OrderLine          `json:"items"`
		PaymentMethod models.PaymentMethod `json:"paymentMethod"`
		PaymentInfo   models.PaymentInfo   `json:"paymentInfo"`
	}{Items: items, PaymentMethod: info.Method(), PaymentInfo: info}

	var confirmation OrderConfirmation
	if err := c.postJSON(ctx, "/api/checkout", body, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", path, err)
	}
	return nil
}

// apiError extracts the server's {"message": ...} body, falling back to the
// status code when the body is not in that shape.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
