package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/models"
)

// ProductService is interface for product-related operations
type ProductService interface {
	// CreateProduct creates new product
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// GetProduct returns product by id
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// ListProducts returns all products
	ListProducts(ctx context.Context) ([]models.Product, error)
	// UpdateProduct updates product
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// DeleteProduct removes product by id
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductHandler represents HTTP handler for product-related requests
type ProductHandler struct {
	svc ProductService
}

// NewProductHandler creates new ProductHandler instance
func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productReq struct {
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	Price            int64   `json:"price"`
	Stock            int     `json:"stock"`
	DiscordChannelID *string `json:"discord_channel_id"`
	DeliveryContent  string  `json:"delivery_content"`
	ImageURL         *string `json:"image_url"`
	Active           bool    `json:"active"`
}

type productResp struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	Price            int64   `json:"price"`
	Stock            int     `json:"stock"`
	DiscordChannelID *string `json:"discord_channel_id,omitempty"`
	DeliveryContent  string  `json:"delivery_content"`
	ImageURL         *string `json:"image_url,omitempty"`
	Active           bool    `json:"active"`
}

func toProductResp(product *models.Product) productResp {
	return productResp{
		ID:               product.ID.String(),
		Name:             product.Name,
		Description:      product.Description,
		Price:            product.Price,
		Stock:            product.Stock,
		DiscordChannelID: product.DiscordChannelID,
		DeliveryContent:  product.DeliveryContent,
		ImageURL:         product.ImageURL,
		Active:           product.Active,
	}
}

// CreateProduct creates new product
// 201 — товар создан;
// 400 — неверный формат запроса;
// 500 — внутренняя ошибка сервера.
func (ph *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		product := models.Product{
			Name:             req.Name,
			Description:      req.Description,
			Price:            req.Price,
			Stock:            req.Stock,
			DiscordChannelID: req.DiscordChannelID,
			DeliveryContent:  req.DeliveryContent,
			ImageURL:         req.ImageURL,
			Active:           req.Active,
		}

		created, err := ph.svc.CreateProduct(r.Context(), &product)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toProductResp(created))
	}
}

// GetProduct returns one product
// 200 — успешная обработка запроса;
// 400 — некорректный идентификатор;
// 404 — товар не найден;
// 500 — внутренняя ошибка сервера.
func (ph *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		product, err := ph.svc.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toProductResp(product))
	}
}

// ListProducts returns all products
// 200 — успешная обработка запроса;
// 500 — внутренняя ошибка сервера.
func (ph *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := ph.svc.ListProducts(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]productResp, 0, len(products))
		for i := range products {
			resp = append(resp, toProductResp(&products[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// UpdateProduct updates product by id
// 200 — товар обновлён;
// 400 — неверный формат запроса;
// 404 — товар не найден;
// 500 — внутренняя ошибка сервера.
func (ph *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		var req productReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		product := models.Product{
			ID:               id,
			Name:             req.Name,
			Description:      req.Description,
			Price:            req.Price,
			Stock:            req.Stock,
			DiscordChannelID: req.DiscordChannelID,
			DeliveryContent:  req.DeliveryContent,
			ImageURL:         req.ImageURL,
			Active:           req.Active,
		}

		updated, err := ph.svc.UpdateProduct(r.Context(), &product)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toProductResp(updated))
	}
}

// DeleteProduct removes product by id
// 204 — товар удалён;
// 400 — некорректный идентификатор;
// 404 — товар не найден;
// 500 — внутренняя ошибка сервера.
func (ph *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := ph.svc.DeleteProduct(r.Context(), id); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
