package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pixmart/pixmart/internal/models"
)

var (
	errProductNameRequired    = errors.New("product name is required")
	errProductContentRequired = errors.New("product delivery content is required")
)

// ProductRepository is interface for interacting with product-related data
type ProductRepository interface {
	// CreateProduct inserts new product to database
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// GetProductByID returns product by id
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// GetProducts returns all products
	GetProducts(ctx context.Context) ([]models.Product, error)
	// UpdateProduct updates product fields
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// DeleteProduct removes product by id
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductService manages the product catalog
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates new ProductService instance
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func validateProduct(product *models.Product) error {
	if product.Name == "" {
		return errProductNameRequired
	}
	if product.Price <= 0 {
		return models.ErrInvalidAmount
	}
	if product.DeliveryContent == "" {
		return errProductContentRequired
	}
	return nil
}

// CreateProduct creates new product
func (ps *ProductService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return ps.repo.CreateProduct(ctx, product)
}

// GetProduct returns product by id
func (ps *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return ps.repo.GetProductByID(ctx, id)
}

// ListProducts returns all products
func (ps *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return ps.repo.GetProducts(ctx)
}

// UpdateProduct updates product
func (ps *ProductService) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	return ps.repo.UpdateProduct(ctx, product)
}

// DeleteProduct removes product by id
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return ps.repo.DeleteProduct(ctx, id)
}
