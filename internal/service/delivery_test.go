package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/pixmart/pixmart/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryService_Deliver(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()

	order := &models.Order{
		ID:            orderID,
		ProductID:     productID,
		DiscordUserID: "user-1",
		Status:        models.OrderStatusPaid,
	}
	product := &models.Product{
		ID:              productID,
		Name:            "Key",
		DeliveryContent: "SECRET-CODE",
	}

	t.Run("confirmed_send_marks_delivered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		settings := mocks.NewMockSettingsRepository(ctrl)
		msgr := mocks.NewMockMessenger(ctrl)

		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		settings.EXPECT().GetSettings(gomock.Any()).Return(nil, models.ErrDataNotFound)
		msgr.EXPECT().SendDM(gomock.Any(), "user-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, content string) error {
				assert.Contains(t, content, "SECRET-CODE")
				assert.Contains(t, content, "Key")
				return nil
			})
		orders.EXPECT().TransitionStatus(gomock.Any(), orderID,
			models.OrderStatusPaid, models.OrderStatusDelivered, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _, _ string, fields models.OrderUpdate) (*models.Order, error) {
				require.NotNil(t, fields.DeliveredAt)
				return order, nil
			})

		err := NewDeliveryService(orders, products, settings, msgr).Deliver(context.Background(), order)
		require.NoError(t, err)
	})

	t.Run("custom_template_is_rendered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		settings := mocks.NewMockSettingsRepository(ctrl)
		msgr := mocks.NewMockMessenger(ctrl)

		tmpl := "Entrega de {product}: {content}"
		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		settings.EXPECT().GetSettings(gomock.Any()).Return(&models.BotSettings{DeliveryMessage: &tmpl}, nil)
		msgr.EXPECT().SendDM(gomock.Any(), "user-1", "Entrega de Key: SECRET-CODE").Return(nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), orderID,
			models.OrderStatusPaid, models.OrderStatusDelivered, gomock.Any()).
			Return(order, nil)

		err := NewDeliveryService(orders, products, settings, msgr).Deliver(context.Background(), order)
		require.NoError(t, err)
	})

	t.Run("failed_send_leaves_order_paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		settings := mocks.NewMockSettingsRepository(ctrl)
		msgr := mocks.NewMockMessenger(ctrl)

		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		settings.EXPECT().GetSettings(gomock.Any()).Return(nil, models.ErrDataNotFound)
		msgr.EXPECT().SendDM(gomock.Any(), "user-1", gomock.Any()).
			Return(errors.New("dm closed"))

		err := NewDeliveryService(orders, products, settings, msgr).Deliver(context.Background(), order)
		require.Error(t, err)

		var deliveryErr *models.DeliveryError
		require.ErrorAs(t, err, &deliveryErr)
		assert.Equal(t, orderID.String(), deliveryErr.OrderID)
	})

	t.Run("concurrent_delivery_already_finished", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		orders := mocks.NewMockOrderRepository(ctrl)
		products := mocks.NewMockProductRepository(ctrl)
		settings := mocks.NewMockSettingsRepository(ctrl)
		msgr := mocks.NewMockMessenger(ctrl)

		products.EXPECT().GetProductByID(gomock.Any(), productID).Return(product, nil)
		settings.EXPECT().GetSettings(gomock.Any()).Return(nil, models.ErrDataNotFound)
		msgr.EXPECT().SendDM(gomock.Any(), "user-1", gomock.Any()).Return(nil)
		orders.EXPECT().TransitionStatus(gomock.Any(), orderID,
			models.OrderStatusPaid, models.OrderStatusDelivered, gomock.Any()).
			Return(nil, models.ErrStatusConflict)

		err := NewDeliveryService(orders, products, settings, msgr).Deliver(context.Background(), order)
		require.NoError(t, err)
	})
}

func TestDeliveryService_GetOrdersForRedelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stuck := []models.Order{
		{ID: uuid.New(), Status: models.OrderStatusPaid},
		{ID: uuid.New(), Status: models.OrderStatusPaid},
	}

	orders := mocks.NewMockOrderRepository(ctrl)
	orders.EXPECT().GetUndeliveredOrders(gomock.Any(), gomock.Any()).Return(stuck, nil)

	svc := NewDeliveryService(orders, mocks.NewMockProductRepository(ctrl),
		mocks.NewMockSettingsRepository(ctrl), mocks.NewMockMessenger(ctrl))

	ch := make(chan models.Order, 10)
	require.NoError(t, svc.GetOrdersForRedelivery(context.Background(), ch))
	close(ch)

	got := []models.Order{}
	for order := range ch {
		got = append(got, order)
	}
	assert.Len(t, got, 2)
}
