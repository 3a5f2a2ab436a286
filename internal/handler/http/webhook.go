package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/models"
	"go.uber.org/zap"
)

// WebhookService reconciles gateway payment notifications
type WebhookService interface {
	// HandleNotification applies one gateway notification
	HandleNotification(ctx context.Context, n models.PaymentNotification) error
}

// WebhookHandler represents HTTP handler for gateway webhook requests
type WebhookHandler struct {
	svc WebhookService
}

// NewWebhookHandler creates new WebhookHandler instance
func NewWebhookHandler(svc WebhookService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

type webhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// transactionID extracts data.id, which the gateway sends either as a JSON
// number or as a string
func transactionID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

type webhookResponse struct {
	Received bool `json:"received"`
}

// PaymentNotification handles gateway payment notifications.
// Every structurally valid request is acknowledged with 200, even when
// processing fails downstream.
// 200 — уведомление принято;
// 400 — некорректное тело запроса.
func (wh *WebhookHandler) PaymentNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		n := models.PaymentNotification{
			Type:          req.Type,
			TransactionID: transactionID(req.Data.ID),
		}

		if err := wh.svc.HandleNotification(r.Context(), n); err != nil {
			// swallow: acknowledged anyway
			logger.Log.Error("webhook processing error",
				zap.String("transaction", n.TransactionID), zap.Error(err))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(webhookResponse{Received: true})
	}
}
