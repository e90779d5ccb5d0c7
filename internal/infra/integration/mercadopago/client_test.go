package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "idem-1", r.Header.Get("X-Idempotency-Key"))

		var body createPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pix", body.PaymentMethodID)
		assert.Equal(t, "sub-1", body.ExternalReference)
		assert.Equal(t, "ana@example.com", body.Payer.Email)
		assert.Equal(t, 29.9, body.TransactionAmount)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 123456789,
			"status": "pending",
			"transaction_amount": 29.9,
			"external_reference": "sub-1",
			"payment_method_id": "pix",
			"metadata": {"uid": "sub-1", "phone": "11999998888"},
			"point_of_interaction": {"transaction_data": {"qr_code": "000201...", "qr_code_base64": "iVBOR"}}
		}`))
	}))
	defer server.Close()

	client := NewClient("token-123", server.URL)
	p, err := client.CreatePayment(context.Background(), CreatePaymentInput{
		IdempotencyKey:    "idem-1",
		TransactionAmount: 29.9,
		PaymentMethodID:   "pix",
		ExternalReference: "sub-1",
		PayerEmail:        "ana@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "123456789", p.ID)
	assert.Equal(t, "pending", p.Status)
	assert.False(t, p.IsApproved())
	assert.Equal(t, "000201...", p.PixCode())
	assert.Equal(t, "iVBOR", p.PixQRCodeBase64())
	assert.Equal(t, "11999998888", p.MetadataString("phone"))
	assert.Equal(t, "", p.MetadataString("missing"))
}

func TestGetPaymentApproved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payments/42", r.URL.Path)
		w.Write([]byte(`{"id": 42, "status": "approved", "transaction_amount": 49.9, "external_reference": "sub-7", "date_approved": "2024-05-01T10:00:00.000-04:00"}`))
	}))
	defer server.Close()

	p, err := NewClient("t", server.URL).GetPayment(context.Background(), "42")

	require.NoError(t, err)
	assert.True(t, p.IsApproved())
	assert.Equal(t, "sub-7", p.ExternalReference)
	assert.Equal(t, 49.9, p.TransactionAmount)
	require.NotNil(t, p.DateApproved)
}

func TestGatewayAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "invalid payment_method_id", "error": "bad_request", "status": 400}`))
	}))
	defer server.Close()

	_, err := NewClient("t", server.URL).GetPayment(context.Background(), "1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "bad_request", apiErr.ErrorCode)
	assert.Contains(t, apiErr.Error(), "invalid payment_method_id")
}

func TestGatewayNonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := NewClient("t", server.URL).GetPayment(context.Background(), "1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
}
