package worker

import (
	"context"
	"time"

	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/models"
)

const sweepInterval = time.Minute

type DeliveryService interface {
	RedeliverOrders(ctx context.Context, orderCh <-chan models.Order)
	GetOrdersForRedelivery(ctx context.Context, orderCh chan<- models.Order) error
}

// DeliveryProcessor is worker that retries delivery for orders stuck in paid
type DeliveryProcessor struct {
	svc DeliveryService
}

// NewDeliveryProcessor creates new delivery processor
func NewDeliveryProcessor(svc DeliveryService) *DeliveryProcessor {
	return &DeliveryProcessor{svc: svc}
}

// ProcessDeliveries periodically re-queues undelivered paid orders. Delivery
// uses the same conditional status transition as the webhook path, so a sweep
// retry cannot double-deliver an order another path already finished.
func (dp *DeliveryProcessor) ProcessDeliveries(ctx context.Context) {
	orders := make(chan models.Order, 10)

	go dp.svc.RedeliverOrders(ctx, orders)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("delivery processor is done")
			return
		case <-ticker.C:
			if err := dp.svc.GetOrdersForRedelivery(ctx, orders); err != nil {
				logger.Log.Error("error get orders for redelivery")
			}
		}
	}
}
