package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/mercadopago"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/pixmart/pixmart/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixService_IssueForOrder(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()

	pendingOrder := func() *models.Order {
		return &models.Order{
			ID:          orderID,
			ProductID:   productID,
			Quantity:    1,
			TotalAmount: 4990,
			Status:      models.OrderStatusPending,
		}
	}
	product := &models.Product{ID: productID, Name: "Key", Price: 4990, Active: true}

	t.Run("issues_charge_and_moves_to_awaiting_payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		gateway := mocks.NewMockPaymentGateway(ctrl)

		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(pendingOrder(), nil)
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), mercadopago.CreatePaymentRequest{
			OrderID:     orderID.String(),
			Amount:      4990,
			Description: "Key x1",
			PayerEmail:  fallbackPayerEmail,
		}).Return(&models.Charge{TransactionID: "42", QRCode: "qr", QRCodeBase64: "qr64"}, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), orderID,
			models.OrderStatusPending, models.OrderStatusAwaitingPayment, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _, _ string, fields models.OrderUpdate) (*models.Order, error) {
				require.NotNil(t, fields.PixTransactionID)
				assert.Equal(t, "42", *fields.PixTransactionID)
				require.NotNil(t, fields.PixQRCode)
				assert.Equal(t, "qr", *fields.PixQRCode)
				return pendingOrder(), nil
			})

		charge, err := NewPixService(orders, products, gateway).IssueForOrder(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, "42", charge.TransactionID)
	})

	t.Run("order_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(nil, models.ErrDataNotFound)

		_, err := NewPixService(orders, mocks.NewMockProductRepository(ctrl),
			mocks.NewMockPaymentGateway(ctrl)).IssueForOrder(context.Background(), orderID)
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})

	t.Run("order_already_awaiting_payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		order := pendingOrder()
		order.Status = models.OrderStatusAwaitingPayment

		orders := mocks.NewMockOrderRepository(ctrl)
		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(order, nil)

		_, err := NewPixService(orders, mocks.NewMockProductRepository(ctrl),
			mocks.NewMockPaymentGateway(ctrl)).IssueForOrder(context.Background(), orderID)
		assert.ErrorIs(t, err, models.ErrInvalidOrderState)
	})

	t.Run("lost_race_converges_on_persisted_charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		gateway := mocks.NewMockPaymentGateway(ctrl)

		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(pendingOrder(), nil)
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
			Return(&models.Charge{TransactionID: "loser", QRCode: "qr-loser"}, nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), orderID,
			models.OrderStatusPending, models.OrderStatusAwaitingPayment, gomock.Any()).
			Return(nil, models.ErrStatusConflict)

		keptTx := "winner"
		keptQR := "qr-winner"
		keptQR64 := "qr64-winner"
		winner := pendingOrder()
		winner.Status = models.OrderStatusAwaitingPayment
		winner.PixTransactionID = &keptTx
		winner.PixQRCode = &keptQR
		winner.PixQRCodeBase64 = &keptQR64
		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(winner, nil)

		charge, err := NewPixService(orders, products, gateway).IssueForOrder(context.Background(), orderID)
		require.NoError(t, err)
		// the concurrently persisted charge wins, ours is discarded
		assert.Equal(t, "winner", charge.TransactionID)
		assert.Equal(t, "qr-winner", charge.QRCode)
		assert.Equal(t, "qr64-winner", charge.QRCodeBase64)
	})

	t.Run("gateway_failure_leaves_order_pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		gateway := mocks.NewMockPaymentGateway(ctrl)

		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(pendingOrder(), nil)
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
			Return(nil, models.NewRetryableGatewayError(0, "timeout"))

		_, err := NewPixService(orders, products, gateway).IssueForOrder(context.Background(), orderID)
		require.Error(t, err)
		assert.True(t, models.IsRetryable(err))
	})

	// a timed-out issuance followed by a retry ends with one charge
	t.Run("retry_after_timeout_succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		gateway := mocks.NewMockPaymentGateway(ctrl)

		orders.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(pendingOrder(), nil).Times(2)
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil).Times(2)
		first := gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
			Return(nil, models.NewRetryableGatewayError(0, "timeout"))
		gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
			Return(&models.Charge{TransactionID: "42", QRCode: "qr"}, nil).After(first)
		orders.EXPECT().TransitionStatus(gomock.Any(), orderID,
			models.OrderStatusPending, models.OrderStatusAwaitingPayment, gomock.Any()).
			Return(pendingOrder(), nil)

		svc := NewPixService(orders, products, gateway)

		_, err := svc.IssueForOrder(context.Background(), orderID)
		require.Error(t, err)

		charge, err := svc.IssueForOrder(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, "42", charge.TransactionID)
	})
}
