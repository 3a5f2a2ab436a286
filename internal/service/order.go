package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order to database
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetOrders returns all orders, newest first
	GetOrders(ctx context.Context) ([]models.Order, error)
	// TransitionStatus performs compare-and-swap on order status
	TransitionStatus(ctx context.Context, id uuid.UUID, expected, next string, fields models.OrderUpdate) (*models.Order, error)
	// GetUndeliveredOrders returns paid orders not delivered before cutoff
	GetUndeliveredOrders(ctx context.Context, cutoff time.Time) ([]models.Order, error)
}

// UserLookup resolves messaging-platform users
type UserLookup interface {
	// GetUser returns the discord user by id
	GetUser(ctx context.Context, userID string) (*models.DiscordUser, error)
}

// PixIssuer issues a PIX charge for an order
type PixIssuer interface {
	// IssueForOrder obtains a charge from the gateway and moves the order
	// to awaiting_payment
	IssueForOrder(ctx context.Context, orderID uuid.UUID) (*models.Charge, error)
}

// OrderService manages order placement and lookup
type OrderService struct {
	repo     OrderRepository
	products ProductRepository
	issuer   PixIssuer
	users    UserLookup
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, products ProductRepository, issuer PixIssuer, users UserLookup) *OrderService {
	return &OrderService{
		repo:     repo,
		products: products,
		issuer:   issuer,
		users:    users,
	}
}

// PlaceOrder creates a pending order for the product and issues its PIX
// charge. The product price is captured onto the order at creation time, so a
// later catalog price change cannot alter what the buyer owes.
func (os *OrderService) PlaceOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	product, err := os.products.GetProductByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.Active {
		return nil, models.ErrProductInactive
	}
	if product.Stock < order.Quantity {
		return nil, models.ErrInsufficientStock
	}

	if order.DiscordUsername == "" {
		if user, err := os.users.GetUser(ctx, order.DiscordUserID); err == nil {
			order.DiscordUsername = user.Username
		} else {
			logger.Log.Warn("cannot resolve discord user",
				zap.String("user", order.DiscordUserID), zap.Error(err))
		}
	}

	// price snapshot
	order.TotalAmount = product.Price * int64(order.Quantity)
	order.Status = models.OrderStatusPending

	order, err = os.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("order created",
		zap.String("order", order.ID.String()),
		zap.String("product", product.Name),
		zap.Int64("amount", order.TotalAmount))

	charge, err := os.issuer.IssueForOrder(ctx, order.ID)
	if err != nil {
		// the order stays pending; a retryable issuance failure can be
		// retried by placing the charge again for the same order
		return order, err
	}

	order.PixTransactionID = &charge.TransactionID
	order.PixQRCode = &charge.QRCode
	order.PixQRCodeBase64 = &charge.QRCodeBase64
	order.Status = models.OrderStatusAwaitingPayment

	return order, nil
}

// GetOrder returns order by id
func (os *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return os.repo.GetOrderByID(ctx, id)
}

// ListOrders returns all orders
func (os *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := os.repo.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, models.ErrDataNotFound
	}

	return orders, nil
}
