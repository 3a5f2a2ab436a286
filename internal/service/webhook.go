package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/models"
	"go.uber.org/zap"
)

// notification type for payment events
const notificationTypePayment = "payment"

// upper bound for a dispatched delivery task
const deliveryTimeout = 30 * time.Second

// DeliveryDispatcher releases the product to the buyer of a paid order
type DeliveryDispatcher interface {
	// Deliver sends the product content and marks the order delivered
	Deliver(ctx context.Context, order *models.Order) error
}

// WebhookService reconciles gateway payment notifications with local orders.
// Notification bodies are untrusted: only the transaction id is taken from
// them, and the payment state is always re-fetched from the gateway.
type WebhookService struct {
	orders   OrderRepository
	gateway  PaymentGateway
	delivery DeliveryDispatcher

	// dispatch hands a freshly paid order to the delivery path without
	// blocking the webhook acknowledgement
	dispatch func(order *models.Order)
}

// NewWebhookService creates new WebhookService instance
func NewWebhookService(orders OrderRepository, gateway PaymentGateway, delivery DeliveryDispatcher) *WebhookService {
	ws := &WebhookService{
		orders:   orders,
		gateway:  gateway,
		delivery: delivery,
	}
	ws.dispatch = ws.dispatchDelivery
	return ws
}

func (ws *WebhookService) dispatchDelivery(order *models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()

		if err := ws.delivery.Deliver(ctx, order); err != nil {
			// the order stays paid; the redelivery sweep picks it up
			logger.Log.Error("delivery failed",
				zap.String("order", order.ID.String()), zap.Error(err))
		}
	}()
}

// HandleNotification applies one gateway notification. It is safe under
// arbitrary duplication and reordering: the only transition it performs is
// the compare-and-swap awaiting_payment -> paid, and every other outcome is
// logged and absorbed. A non-nil error means the gateway lookup itself
// failed; the caller still acknowledges.
func (ws *WebhookService) HandleNotification(ctx context.Context, n models.PaymentNotification) error {
	if n.Type != notificationTypePayment || n.TransactionID == "" {
		logger.Log.Debug("ignoring notification", zap.String("type", n.Type))
		return nil
	}

	// never trust the notification body for payment state
	payment, err := ws.gateway.GetPayment(ctx, n.TransactionID)
	if err != nil {
		return err
	}

	if payment.Status != models.PaymentStatusApproved {
		logger.Log.Debug("payment not approved, ignoring",
			zap.String("transaction", payment.TransactionID),
			zap.String("status", payment.Status))
		return nil
	}

	orderID, err := uuid.Parse(payment.ExternalReference)
	if err != nil {
		logger.Log.Warn("payment has no valid order reference",
			zap.String("transaction", payment.TransactionID),
			zap.String("reference", payment.ExternalReference))
		return nil
	}

	now := time.Now()
	order, err := ws.orders.TransitionStatus(ctx, orderID,
		models.OrderStatusAwaitingPayment, models.OrderStatusPaid,
		models.OrderUpdate{PaidAt: &now})
	if err == nil {
		logger.Log.Info("payment confirmed",
			zap.String("order", orderID.String()),
			zap.String("transaction", payment.TransactionID))
		ws.dispatch(order)
		return nil
	}

	switch {
	case errors.Is(err, models.ErrDataNotFound):
		logger.Log.Warn("notification for unknown order",
			zap.String("order", orderID.String()),
			zap.String("transaction", payment.TransactionID))
		return nil
	case errors.Is(err, models.ErrStatusConflict):
		cur, getErr := ws.orders.GetOrderByID(ctx, orderID)
		if getErr != nil {
			return getErr
		}
		if cur.Status == models.OrderStatusPaid || cur.Status == models.OrderStatusDelivered {
			// duplicate notification, already settled
			logger.Log.Debug("duplicate payment notification",
				zap.String("order", orderID.String()),
				zap.String("status", cur.Status))
			return nil
		}
		logger.Log.Warn("notification for order in unexpected status",
			zap.String("order", orderID.String()),
			zap.String("status", cur.Status))
		return nil
	default:
		return err
	}
}
