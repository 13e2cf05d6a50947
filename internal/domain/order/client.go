// internal/domain/order/client.go
package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/store"
)

// Client talks to the upstream orders service over its JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an orders service client against baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SnapshotPayload is the order snapshot the upstream accepts at checkout.
type SnapshotPayload struct {
	UserKey        string      `json:"userKey"`
	Number         string      `json:"number"`
	Status         Status      `json:"status"`
	ShippingMethod string      `json:"shippingMethod"`
	Note           string      `json:"note,omitempty"`
	Customer       *Customer   `json:"customer,omitempty"`
	Totals         cart.Totals `json:"totals"`
	Items          []cart.Item `json:"items"`
}

// PersistSnapshot posts a new order to the upstream and returns the record it
// accepted, carrying the canonical id and number.
func (c *Client) PersistSnapshot(ctx context.Context, identity store.Identity, record Record) (*Record, error) {
	payload := SnapshotPayload{
		UserKey:        identity.Key(),
		Number:         record.Number,
		Status:         record.Status,
		ShippingMethod: string(record.ShippingMethod),
		Note:           record.Note,
		Customer:       record.Customer,
		Totals:         record.Totals,
		Items:          record.Items,
	}

	var accepted Record
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &accepted); err != nil {
		return nil, err
	}
	return &accepted, nil
}

// FetchBuckets retrieves every identity's orders from the upstream.
func (c *Client) FetchBuckets(ctx context.Context) (map[string][]Record, error) {
	var buckets map[string][]Record
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// UpdateStatus changes an order's status on the upstream.
func (c *Client) UpdateStatus(ctx context.Context, id string, status Status) (*Record, error) {
	payload := map[string]Status{"status": status}

	var updated Record
	if err := c.do(ctx, http.MethodPost, "/orders/"+id+"/status", payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("orders service request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("orders service returned %d: %s", resp.StatusCode, errorMessage(raw))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		return "no error detail"
	}
	return msg
}
