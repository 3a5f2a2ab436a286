package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixmart/pixmart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreatePayment(t *testing.T) {
	t.Run("issues_charge_with_idempotency_key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payments", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "order-1", r.Header.Get("X-Idempotency-Key"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			// two fraction digits on the wire
			assert.Equal(t, 49.90, payload["transaction_amount"])
			assert.Equal(t, "pix", payload["payment_method_id"])
			assert.Equal(t, "order-1", payload["external_reference"])

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{
				"id": 123456789,
				"status": "pending",
				"point_of_interaction": {
					"transaction_data": {
						"qr_code": "pix-payload",
						"qr_code_base64": "aW1n"
					}
				}
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-token")
		charge, err := client.CreatePayment(context.Background(), CreatePaymentRequest{
			OrderID:     "order-1",
			Amount:      4990,
			Description: "Key x1",
			PayerEmail:  "cliente@email.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "123456789", charge.TransactionID)
		assert.Equal(t, "pix-payload", charge.QRCode)
		assert.Equal(t, "aW1n", charge.QRCodeBase64)
	})

	t.Run("rejects_non_positive_amount_locally", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("gateway must not be called")
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-token")
		_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: "order-1", Amount: 0})
		assert.ErrorIs(t, err, models.ErrInvalidAmount)

		_, err = client.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: "order-1", Amount: -100})
		assert.ErrorIs(t, err, models.ErrInvalidAmount)
	})

	t.Run("client_error_is_permanent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "bad-token")
		_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: "order-1", Amount: 100})
		require.Error(t, err)
		assert.False(t, models.IsRetryable(err))
	})

	t.Run("server_error_is_retryable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "oops", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-token")
		_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: "order-1", Amount: 100})
		require.Error(t, err)
		assert.True(t, models.IsRetryable(err))
	})

	t.Run("connection_failure_is_retryable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := NewClient(srv.URL, "test-token")
		_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: "order-1", Amount: 100})
		require.Error(t, err)
		assert.True(t, models.IsRetryable(err))
	})

	t.Run("response_without_qr_is_rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 1, "status": "pending"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-token")
		_, err := client.CreatePayment(context.Background(), CreatePaymentRequest{OrderID: "order-1", Amount: 100})
		require.Error(t, err)
		assert.False(t, models.IsRetryable(err))
	})
}

func TestClient_GetPayment(t *testing.T) {
	t.Run("returns_status_and_reference", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/payments/123456789", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": 123456789,
				"status": "approved",
				"external_reference": "order-1"
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-token")
		payment, err := client.GetPayment(context.Background(), "123456789")
		require.NoError(t, err)
		assert.Equal(t, "123456789", payment.TransactionID)
		assert.Equal(t, models.PaymentStatusApproved, payment.Status)
		assert.Equal(t, "order-1", payment.ExternalReference)
	})

	t.Run("malformed_response_is_gateway_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "test-token")
		_, err := client.GetPayment(context.Background(), "1")
		require.Error(t, err)

		var gwErr *models.GatewayError
		assert.ErrorAs(t, err, &gwErr)
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, json.Number("49.90"), formatAmount(4990))
	assert.Equal(t, json.Number("0.01"), formatAmount(1))
	assert.Equal(t, json.Number("100.00"), formatAmount(10000))
}
