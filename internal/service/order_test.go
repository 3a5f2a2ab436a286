package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/pixmart/pixmart/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	productID := uuid.New()

	product := func() *models.Product {
		return &models.Product{
			ID:     productID,
			Name:   "Key",
			Price:  2495,
			Stock:  10,
			Active: true,
		}
	}

	t.Run("captures_price_snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		issuer := mocks.NewMockPixIssuer(ctrl)

		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product(), nil)
		orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *models.Order) (*models.Order, error) {
				// 2 x 24.95 captured at creation time
				assert.Equal(t, int64(4990), order.TotalAmount)
				assert.Equal(t, models.OrderStatusPending, order.Status)
				order.ID = uuid.New()
				return order, nil
			})
		issuer.EXPECT().IssueForOrder(gomock.Any(), gomock.Any()).
			Return(&models.Charge{TransactionID: "42", QRCode: "qr"}, nil)

		svc := NewOrderService(orders, products, issuer, mocks.NewMockUserLookup(ctrl))
		order, err := svc.PlaceOrder(context.Background(), &models.Order{
			ProductID:       productID,
			DiscordUserID:   "user-1",
			DiscordUsername: "buyer",
			Quantity:        2,
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAwaitingPayment, order.Status)
		require.NotNil(t, order.PixQRCode)
		assert.Equal(t, "qr", *order.PixQRCode)
	})

	t.Run("fills_missing_username_from_lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		issuer := mocks.NewMockPixIssuer(ctrl)
		users := mocks.NewMockUserLookup(ctrl)

		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product(), nil)
		users.EXPECT().GetUser(gomock.Any(), "user-1").
			Return(&models.DiscordUser{ID: "user-1", Username: "buyer"}, nil)
		orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *models.Order) (*models.Order, error) {
				assert.Equal(t, "buyer", order.DiscordUsername)
				order.ID = uuid.New()
				return order, nil
			})
		issuer.EXPECT().IssueForOrder(gomock.Any(), gomock.Any()).
			Return(&models.Charge{TransactionID: "42", QRCode: "qr"}, nil)

		svc := NewOrderService(orders, products, issuer, users)
		_, err := svc.PlaceOrder(context.Background(), &models.Order{
			ProductID:     productID,
			DiscordUserID: "user-1",
			Quantity:      1,
		})
		require.NoError(t, err)
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := NewOrderService(mocks.NewMockOrderRepository(ctrl),
			mocks.NewMockProductRepository(ctrl), mocks.NewMockPixIssuer(ctrl),
			mocks.NewMockUserLookup(ctrl))

		_, err := svc.PlaceOrder(context.Background(), &models.Order{ProductID: productID})
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	})

	t.Run("rejects_inactive_product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		p := product()
		p.Active = false

		products := mocks.NewMockProductRepository(ctrl)
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(p, nil)

		svc := NewOrderService(mocks.NewMockOrderRepository(ctrl), products,
			mocks.NewMockPixIssuer(ctrl), mocks.NewMockUserLookup(ctrl))

		_, err := svc.PlaceOrder(context.Background(), &models.Order{ProductID: productID, Quantity: 1})
		assert.ErrorIs(t, err, models.ErrProductInactive)
	})

	t.Run("rejects_insufficient_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		products := mocks.NewMockProductRepository(ctrl)
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product(), nil)

		svc := NewOrderService(mocks.NewMockOrderRepository(ctrl), products,
			mocks.NewMockPixIssuer(ctrl), mocks.NewMockUserLookup(ctrl))

		_, err := svc.PlaceOrder(context.Background(), &models.Order{ProductID: productID, Quantity: 11})
		assert.ErrorIs(t, err, models.ErrInsufficientStock)
	})

	t.Run("issuance_failure_keeps_pending_order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		issuer := mocks.NewMockPixIssuer(ctrl)

		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product(), nil)
		orders.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *models.Order) (*models.Order, error) {
				order.ID = uuid.New()
				return order, nil
			})
		issuer.EXPECT().IssueForOrder(gomock.Any(), gomock.Any()).
			Return(nil, models.NewRetryableGatewayError(0, "timeout"))

		svc := NewOrderService(orders, products, issuer, mocks.NewMockUserLookup(ctrl))
		order, err := svc.PlaceOrder(context.Background(), &models.Order{
			ProductID:       productID,
			DiscordUserID:   "user-1",
			DiscordUsername: "buyer",
			Quantity:        1,
		})
		require.Error(t, err)
		assert.True(t, models.IsRetryable(err))
		// the order exists and stays pending for a later re-issuance
		require.NotNil(t, order)
		assert.Equal(t, models.OrderStatusPending, order.Status)
	})
}
