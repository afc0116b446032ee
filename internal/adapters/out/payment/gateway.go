// Package payment implements the PaymentGateway port against an HTTP JSON
// payment provider. All calls run through a circuit breaker so a flapping
// provider fails fast instead of tying up order transactions.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/ports"

	"github.com/sony/gobreaker"
)

const defaultTimeout = 10 * time.Second

// Config holds the connection settings for the payment provider.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// HTTPGateway is a PaymentGateway implementation over the provider's REST API.
type HTTPGateway struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	apiKey  string
}

// NewHTTPGateway creates a gateway client. The breaker opens after five
// consecutive failures and probes again after thirty seconds.
func NewHTTPGateway(cfg Config) *HTTPGateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &HTTPGateway{
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type intentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type refundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreatePaymentIntent registers a charge for the order with the provider.
func (g *HTTPGateway) CreatePaymentIntent(ctx context.Context, orderID kernel.UUID, orderNumber string, amount kernel.Money, method string) (ports.PaymentIntent, error) {
	payload := map[string]string{
		"order_id":     orderID.String(),
		"order_number": orderNumber,
		"amount":       amount.String(),
		"currency":     "usd",
		"method":       method,
	}

	var out intentResponse
	if err := g.post(ctx, "/v1/payment_intents", payload, &out); err != nil {
		return ports.PaymentIntent{}, err
	}

	return ports.PaymentIntent{ID: out.ID, Status: out.Status}, nil
}

// ConfirmPaymentIntent captures a previously created intent.
func (g *HTTPGateway) ConfirmPaymentIntent(ctx context.Context, intentID string) (ports.PaymentIntent, error) {
	var out intentResponse
	path := fmt.Sprintf("/v1/payment_intents/%s/confirm", intentID)
	if err := g.post(ctx, path, map[string]string{}, &out); err != nil {
		return ports.PaymentIntent{}, err
	}

	return ports.PaymentIntent{ID: out.ID, Status: out.Status}, nil
}

// CreateRefund returns the full captured amount of the intent.
func (g *HTTPGateway) CreateRefund(ctx context.Context, intentID string) (ports.Refund, error) {
	payload := map[string]string{"payment_intent_id": intentID}

	var out refundResponse
	if err := g.post(ctx, "/v1/refunds", payload, &out); err != nil {
		return ports.Refund{}, err
	}

	return ports.Refund{ID: out.ID, Status: out.Status}, nil
}

// post sends one JSON request through the circuit breaker and decodes the
// provider's response into out.
func (g *HTTPGateway) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = g.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.apiKey)

		resp, err := g.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, snippet)
		}

		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return err
}
