package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/kasoma/sokocart/internal/catalog/domain"
	"github.com/kasoma/sokocart/internal/order/domain"
)

// GatewayError is a non-success response from the marketplace API. Its
// Error() string is the stable, user-displayable message the checkout
// machine carries into the Failed state.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("order could not be placed (status %d)", e.StatusCode)
}

// Client talks to the marketplace REST API. It implements the checkout
// OrderGateway port and the catalog Fetcher port.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SubmitOrder POSTs the finished order. Each call carries a fresh
// Idempotency-Key so a retried submission after a network failure cannot
// create the order twice server-side.
func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderRef, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return domain.OrderRef{}, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/checkout/complete", bytes.NewReader(body))
	if err != nil {
		return domain.OrderRef{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	res, err := c.http.Do(req)
	if err != nil {
		return domain.OrderRef{}, &GatewayError{Message: "could not reach the marketplace, please try again"}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return domain.OrderRef{}, &GatewayError{
			StatusCode: res.StatusCode,
			Message:    errorMessage(res.Body),
		}
	}

	var ref domain.OrderRef
	if err := json.NewDecoder(res.Body).Decode(&ref); err != nil {
		return domain.OrderRef{}, &GatewayError{
			StatusCode: res.StatusCode,
			Message:    "order response could not be read",
		}
	}
	return ref, nil
}

// FetchDeliveryOptions GETs the remote delivery catalog.
func (c *Client) FetchDeliveryOptions(ctx context.Context) ([]catalogdomain.DeliveryOption, error) {
	var payload struct {
		Options []catalogdomain.DeliveryOption `json:"options"`
	}
	if err := c.getJSON(ctx, "/api/delivery/options", &payload); err != nil {
		return nil, err
	}
	return payload.Options, nil
}

// FetchPaymentMethods GETs the remote payment catalog.
func (c *Client) FetchPaymentMethods(ctx context.Context) ([]catalogdomain.PaymentMethod, error) {
	var payload struct {
		Methods []catalogdomain.PaymentMethod `json:"methods"`
	}
	if err := c.getJSON(ctx, "/api/payments/methods", &payload); err != nil {
		return nil, err
	}
	return payload.Methods, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &GatewayError{StatusCode: res.StatusCode, Message: errorMessage(res.Body)}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// errorMessage pulls the {"error": "..."} shape the API uses for
// failures; anything unreadable falls back to a generic message.
func errorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return ""
}
