package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/models"
	"go.uber.org/zap"
)

// how long a paid order may sit undelivered before the sweep retries it
const redeliverAfter = 5 * time.Minute

// default delivery template when none is configured
const defaultDeliveryMessage = "Obrigado pela compra de {product}! Aqui está o seu produto:\n{content}"

// Messenger sends content to buyers over the messaging channel
type Messenger interface {
	// SendDM sends a direct message to the user
	SendDM(ctx context.Context, userID, content string) error
}

// DeliveryService sends purchased content to buyers and marks orders delivered
type DeliveryService struct {
	orders   OrderRepository
	products ProductRepository
	settings SettingsRepository
	msgr     Messenger
}

// NewDeliveryService creates new DeliveryService instance
func NewDeliveryService(orders OrderRepository, products ProductRepository, settings SettingsRepository, msgr Messenger) *DeliveryService {
	return &DeliveryService{
		orders:   orders,
		products: products,
		settings: settings,
		msgr:     msgr,
	}
}

// deliveryMessage renders the configured delivery template for the product
func (ds *DeliveryService) deliveryMessage(ctx context.Context, product *models.Product) string {
	tmpl := defaultDeliveryMessage
	if settings, err := ds.settings.GetSettings(ctx); err == nil &&
		settings.DeliveryMessage != nil && *settings.DeliveryMessage != "" {
		tmpl = *settings.DeliveryMessage
	}

	return strings.NewReplacer(
		"{product}", product.Name,
		"{content}", product.DeliveryContent,
	).Replace(tmpl)
}

// Deliver sends the product content to the buyer and, on a confirmed send,
// moves the order from paid to delivered. A failed send leaves the order paid
// so the sweep can retry it later.
func (ds *DeliveryService) Deliver(ctx context.Context, order *models.Order) error {
	product, err := ds.products.GetProductByID(ctx, order.ProductID)
	if err != nil {
		return err
	}

	if err := ds.msgr.SendDM(ctx, order.DiscordUserID, ds.deliveryMessage(ctx, product)); err != nil {
		return &models.DeliveryError{OrderID: order.ID.String(), Err: err}
	}

	now := time.Now()
	_, err = ds.orders.TransitionStatus(ctx, order.ID,
		models.OrderStatusPaid, models.OrderStatusDelivered,
		models.OrderUpdate{DeliveredAt: &now})
	if err != nil {
		if errors.Is(err, models.ErrStatusConflict) {
			// another delivery path finished first
			logger.Log.Warn("order already delivered",
				zap.String("order", order.ID.String()))
			return nil
		}
		return err
	}

	logger.Log.Info("order delivered",
		zap.String("order", order.ID.String()),
		zap.String("user", order.DiscordUserID))

	return nil
}

// RedeliverOrders delivers orders received from the channel
func (ds *DeliveryService) RedeliverOrders(ctx context.Context, orderCh <-chan models.Order) {
	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("redelivery is done")
			return
		case order, ok := <-orderCh:
			if !ok {
				return
			}

			logger.Log.Debug("retrying delivery", zap.String("order", order.ID.String()))
			if err := ds.Deliver(ctx, &order); err != nil {
				logger.Log.Error("redelivery failed",
					zap.String("order", order.ID.String()), zap.Error(err))
			}
		}
	}
}

// GetOrdersForRedelivery writes orders stuck in paid to the channel
func (ds *DeliveryService) GetOrdersForRedelivery(ctx context.Context, orderCh chan<- models.Order) error {
	orders, err := ds.orders.GetUndeliveredOrders(ctx, time.Now().Add(-redeliverAfter))
	if err != nil {
		return err
	}

	for _, order := range orders {
		orderCh <- order
	}

	return nil
}
