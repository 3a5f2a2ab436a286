package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/mercadopago"
	"github.com/pixmart/pixmart/internal/models"
	"go.uber.org/zap"
)

// payer email sent to the gateway when the buyer has none on file
const fallbackPayerEmail = "cliente@email.com"

// PaymentGateway is interface for the payment gateway client
type PaymentGateway interface {
	// CreatePayment issues a PIX charge
	CreatePayment(ctx context.Context, req mercadopago.CreatePaymentRequest) (*models.Charge, error)
	// GetPayment fetches the authoritative payment record
	GetPayment(ctx context.Context, transactionID string) (*models.Payment, error)
}

// PixService issues PIX charges for pending orders
type PixService struct {
	orders   OrderRepository
	products ProductRepository
	gateway  PaymentGateway
}

// NewPixService creates new PixService instance
func NewPixService(orders OrderRepository, products ProductRepository, gateway PaymentGateway) *PixService {
	return &PixService{
		orders:   orders,
		products: products,
		gateway:  gateway,
	}
}

// IssueForOrder obtains a charge from the gateway and moves the order from
// pending to awaiting_payment, persisting the charge fields in the same
// transition. When a concurrent issuance wins the race, the freshly created
// gateway charge is logged and discarded and the persisted one is returned,
// so duplicate issuance calls converge on a single active charge.
func (ps *PixService) IssueForOrder(ctx context.Context, orderID uuid.UUID) (*models.Charge, error) {
	order, err := ps.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusPending {
		return nil, models.ErrInvalidOrderState
	}

	product, err := ps.products.GetProductByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	charge, err := ps.gateway.CreatePayment(ctx, mercadopago.CreatePaymentRequest{
		OrderID:     order.ID.String(),
		Amount:      order.TotalAmount,
		Description: fmt.Sprintf("%s x%d", product.Name, order.Quantity),
		PayerEmail:  fallbackPayerEmail,
	})
	if err != nil {
		return nil, err
	}

	_, err = ps.orders.TransitionStatus(ctx, order.ID,
		models.OrderStatusPending, models.OrderStatusAwaitingPayment,
		models.OrderUpdate{
			PixTransactionID: &charge.TransactionID,
			PixQRCode:        &charge.QRCode,
			PixQRCodeBase64:  &charge.QRCodeBase64,
		})
	if err == nil {
		logger.Log.Info("pix charge issued",
			zap.String("order", order.ID.String()),
			zap.String("transaction", charge.TransactionID))
		return charge, nil
	}

	if !errors.Is(err, models.ErrStatusConflict) {
		return nil, err
	}

	// a concurrent issuance advanced the order first; keep its charge and
	// drop ours (gateway-side cancellation is out of scope)
	cur, err := ps.orders.GetOrderByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if cur.PixTransactionID == nil || cur.PixQRCode == nil {
		return nil, models.ErrInvalidOrderState
	}

	logger.Log.Warn("discarding duplicate pix charge",
		zap.String("order", order.ID.String()),
		zap.String("discarded_transaction", charge.TransactionID),
		zap.String("kept_transaction", *cur.PixTransactionID))

	kept := models.Charge{
		TransactionID: *cur.PixTransactionID,
		QRCode:        *cur.PixQRCode,
	}
	if cur.PixQRCodeBase64 != nil {
		kept.QRCodeBase64 = *cur.PixQRCodeBase64
	}

	return &kept, nil
}
