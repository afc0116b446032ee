package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmacy/internal/adapters/out/payment"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_CreatePaymentIntent_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "pi_123", "status": "requires_confirmation"})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, APIKey: "sk_test"})

	orderID := kernel.NewUUID()
	amount, err := kernel.NewMoneyFromFloat(15.58)
	require.NoError(t, err)

	intent, err := gateway.CreatePaymentIntent(context.Background(), orderID, "ORD-2026-000042", amount, "card")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "requires_confirmation", intent.Status)
	assert.Equal(t, "/v1/payment_intents", gotPath)
	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.Equal(t, orderID.String(), gotPayload["order_id"])
	assert.Equal(t, "ORD-2026-000042", gotPayload["order_number"])
	assert.Equal(t, "15.58", gotPayload["amount"])
	assert.Equal(t, "card", gotPayload["method"])
}

func TestHTTPGateway_ConfirmPaymentIntent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_123/confirm", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "pi_123", "status": "succeeded"})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, APIKey: "sk_test"})

	intent, err := gateway.ConfirmPaymentIntent(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
}

func TestHTTPGateway_CreateRefund_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/refunds", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "pi_123", payload["payment_intent_id"])

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "re_456", "status": "succeeded"})
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, APIKey: "sk_test"})

	refund, err := gateway.CreateRefund(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "re_456", refund.ID)
}

func TestHTTPGateway_Declined_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"card_declined"}`, http.StatusPaymentRequired)
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, APIKey: "sk_test"})

	_, err := gateway.ConfirmPaymentIntent(context.Background(), "pi_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestHTTPGateway_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := payment.NewHTTPGateway(payment.Config{BaseURL: server.URL, APIKey: "sk_test"})

	for i := 0; i < 5; i++ {
		_, err := gateway.ConfirmPaymentIntent(context.Background(), "pi_123")
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	_, err := gateway.ConfirmPaymentIntent(context.Background(), "pi_123")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}
