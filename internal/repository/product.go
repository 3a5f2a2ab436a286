package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/pixmart/pixmart/internal/repository/postgres"
)

const (
	insertProductQuery = `
						INSERT INTO products (name, description, price, stock, discord_channel_id, delivery_content, image_url, active)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
						RETURNING id, name, description, price, stock, discord_channel_id, delivery_content, image_url, active, created_at, updated_at
`
	selectProductByIDQuery = `
						SELECT id, name, description, price, stock, discord_channel_id, delivery_content, image_url, active, created_at, updated_at
						FROM products
						WHERE id = $1
`
	selectProductsQuery = `
						SELECT id, name, description, price, stock, discord_channel_id, delivery_content, image_url, active, created_at, updated_at
						FROM products
						ORDER BY created_at DESC
`
	updateProductQuery = `
						UPDATE products
						SET name               = $2,
							description        = $3,
							price              = $4,
							stock              = $5,
							discord_channel_id = $6,
							delivery_content   = $7,
							image_url          = $8,
							active             = $9,
							updated_at         = now()
						WHERE id = $1
						RETURNING id, name, description, price, stock, discord_channel_id, delivery_content, image_url, active, created_at, updated_at
`
	deleteProductQuery = `
						DELETE FROM products
						WHERE id = $1
`
)

// ProductRepository implements ProductRepository interface
type ProductRepository struct {
	db *postgres.DB
}

// NewProductRepository creates new ProductRepository instance
func NewProductRepository(db *postgres.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row, product *models.Product) error {
	return row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.DiscordChannelID, &product.DeliveryContent,
		&product.ImageURL, &product.Active, &product.CreatedAt, &product.UpdatedAt)
}

// CreateProduct inserts new product to database
func (pr *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	row := pr.db.QueryRow(ctx, insertProductQuery, product.Name, product.Description,
		product.Price, product.Stock, product.DiscordChannelID, product.DeliveryContent,
		product.ImageURL, product.Active)
	if err := scanProduct(row, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProductByID returns product by id
func (pr *ProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := scanProduct(pr.db.QueryRow(ctx, selectProductByIDQuery, id), &product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &product, nil
}

// GetProducts returns all products, newest first
func (pr *ProductRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := pr.db.Query(ctx, selectProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		product := models.Product{}
		if err := scanProduct(rows, &product); err != nil {
			continue
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// UpdateProduct updates product fields
func (pr *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	row := pr.db.QueryRow(ctx, updateProductQuery, product.ID, product.Name,
		product.Description, product.Price, product.Stock, product.DiscordChannelID,
		product.DeliveryContent, product.ImageURL, product.Active)
	if err := scanProduct(row, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes product by id
func (pr *ProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	cmd, err := pr.db.Exec(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
