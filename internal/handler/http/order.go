package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/models"
)

// OrderService is interface for order-related operations
type OrderService interface {
	// PlaceOrder creates a pending order and issues its PIX charge
	PlaceOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrder returns order by id
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// ListOrders returns all orders
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderReq struct {
	ProductID       string `json:"product_id"`
	DiscordUserID   string `json:"discord_user_id"`
	DiscordUsername string `json:"discord_username"`
	Quantity        int    `json:"quantity"`
}

type orderResp struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"product_id"`
	DiscordUserID    string  `json:"discord_user_id"`
	DiscordUsername  string  `json:"discord_username"`
	Quantity         int     `json:"quantity"`
	TotalAmount      int64   `json:"total_amount"`
	PixTransactionID *string `json:"pix_transaction_id,omitempty"`
	PixQRCode        *string `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64  *string `json:"pix_qr_code_base64,omitempty"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
	PaidAt           *string `json:"paid_at,omitempty"`
	DeliveredAt      *string `json:"delivered_at,omitempty"`
}

func toOrderResp(order *models.Order) orderResp {
	resp := orderResp{
		ID:               order.ID.String(),
		ProductID:        order.ProductID.String(),
		DiscordUserID:    order.DiscordUserID,
		DiscordUsername:  order.DiscordUsername,
		Quantity:         order.Quantity,
		TotalAmount:      order.TotalAmount,
		PixTransactionID: order.PixTransactionID,
		PixQRCode:        order.PixQRCode,
		PixQRCodeBase64:  order.PixQRCodeBase64,
		Status:           order.Status,
		CreatedAt:        order.CreatedAt.Format(time.RFC3339),
	}
	if order.PaidAt != nil {
		paidAt := order.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	if order.DeliveredAt != nil {
		deliveredAt := order.DeliveredAt.Format(time.RFC3339)
		resp.DeliveredAt = &deliveredAt
	}
	return resp
}

// CreateOrder places an order and issues its PIX charge
// 201 — заказ создан, PIX выставлен;
// 400 — неверный формат запроса;
// 404 — товар не найден;
// 409 — товар неактивен или нет в наличии;
// 502 — платёжный шлюз временно недоступен, можно повторить;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		productID, err := uuid.Parse(req.ProductID)
		if err != nil || req.DiscordUserID == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		order := models.Order{
			ProductID:       productID,
			DiscordUserID:   req.DiscordUserID,
			DiscordUsername: req.DiscordUsername,
			Quantity:        req.Quantity,
		}

		created, err := oh.svc.PlaceOrder(r.Context(), &order)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidQuantity):
				http.Error(w, "invalid quantity", http.StatusBadRequest)
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "product not found", http.StatusNotFound)
			case errors.Is(err, models.ErrProductInactive), errors.Is(err, models.ErrInsufficientStock):
				http.Error(w, err.Error(), http.StatusConflict)
			case models.IsRetryable(err):
				// charge issuance failed but the order is kept; the
				// caller may retry and reach the same order
				http.Error(w, "payment gateway unavailable, try again", http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toOrderResp(created))
	}
}

// GetOrder returns one order
// 200 — успешная обработка запроса;
// 400 — некорректный идентификатор;
// 404 — заказ не найден;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		order, err := oh.svc.GetOrder(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toOrderResp(order))
	}
}

// ListOrders returns all orders, newest first
// 200 — успешная обработка запроса;
// 204 — нет данных для ответа;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := oh.svc.ListOrders(r.Context())
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]orderResp, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResp(&orders[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
