package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pixmart/pixmart/internal/handler/http/mocks"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookHandler_PaymentNotification(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockWebhookService
		wantStatusCode int
	}{
		{
			// 200 — уведомление принято;
			name: "payment_notification_return_200",
			body: `{"type":"payment","data":{"id":123456789}}`,
			setup: func(t *testing.T) *mocks.MockWebhookService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockWebhookService(ctrl)
				svcMock.EXPECT().HandleNotification(gomock.Any(), models.PaymentNotification{
					Type:          "payment",
					TransactionID: "123456789",
				}).Return(nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// string transaction ids are accepted too
			name: "string_transaction_id_return_200",
			body: `{"type":"payment","data":{"id":"123456789"}}`,
			setup: func(t *testing.T) *mocks.MockWebhookService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockWebhookService(ctrl)
				svcMock.EXPECT().HandleNotification(gomock.Any(), models.PaymentNotification{
					Type:          "payment",
					TransactionID: "123456789",
				}).Return(nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 400 — некорректное тело запроса.
			name: "malformed_body_return_400",
			body: `{"type":`,
			setup: func(t *testing.T) *mocks.MockWebhookService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockWebhookService(ctrl)
				svcMock.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// internal errors past the parse stage are swallowed
			name: "downstream_error_still_return_200",
			body: `{"type":"payment","data":{"id":123456789}}`,
			setup: func(t *testing.T) *mocks.MockWebhookService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockWebhookService(ctrl)
				svcMock.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
					Return(errors.New("gateway lookup failed")).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "non_payment_notification_return_200",
			body: `{"type":"plan","data":{}}`,
			setup: func(t *testing.T) *mocks.MockWebhookService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockWebhookService(ctrl)
				svcMock.EXPECT().HandleNotification(gomock.Any(), models.PaymentNotification{
					Type: "plan",
				}).Return(nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(tt.body))
			require.NoError(t, err)

			w := httptest.NewRecorder()

			handler := NewWebhookHandler(tt.setup(t))
			h := handler.PaymentNotification()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if res.StatusCode == http.StatusOK {
				body, err := io.ReadAll(res.Body)
				require.NoError(t, err)

				var got webhookResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.True(t, got.Received)
			}
		})
	}
}
