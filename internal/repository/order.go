package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/pixmart/pixmart/internal/repository/postgres"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (product_id, discord_user_id, discord_username, quantity, total_amount, status)
						VALUES ($1, $2, $3, $4, $5, $6)
						RETURNING id, product_id, discord_user_id, discord_username, quantity, total_amount,
								  pix_transaction_id, pix_qr_code, pix_qr_code_base64, status,
								  created_at, updated_at, paid_at, delivered_at
`
	selectOrderByIDQuery = `
						SELECT id, product_id, discord_user_id, discord_username, quantity, total_amount,
							   pix_transaction_id, pix_qr_code, pix_qr_code_base64, status,
							   created_at, updated_at, paid_at, delivered_at
						FROM orders
						WHERE id = $1
`
	selectOrdersQuery = `
						SELECT id, product_id, discord_user_id, discord_username, quantity, total_amount,
							   pix_transaction_id, pix_qr_code, pix_qr_code_base64, status,
							   created_at, updated_at, paid_at, delivered_at
						FROM orders
						ORDER BY created_at DESC
`
	// conditional update: succeeds only when the stored status still equals
	// the expected one, so concurrent writers cannot clobber each other
	transitionStatusQuery = `
						UPDATE orders
						SET status             = $3,
							pix_transaction_id = COALESCE($4, pix_transaction_id),
							pix_qr_code        = COALESCE($5, pix_qr_code),
							pix_qr_code_base64 = COALESCE($6, pix_qr_code_base64),
							paid_at            = COALESCE($7, paid_at),
							delivered_at       = COALESCE($8, delivered_at),
							updated_at         = now()
						WHERE id = $1
						  AND status = $2
						RETURNING id, product_id, discord_user_id, discord_username, quantity, total_amount,
								  pix_transaction_id, pix_qr_code, pix_qr_code_base64, status,
								  created_at, updated_at, paid_at, delivered_at
`
	selectUndeliveredQuery = `
						SELECT id, product_id, discord_user_id, discord_username, quantity, total_amount,
							   pix_transaction_id, pix_qr_code, pix_qr_code_base64, status,
							   created_at, updated_at, paid_at, delivered_at
						FROM orders
						WHERE status = 'paid'
						  AND paid_at < $1
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row, order *models.Order) error {
	return row.Scan(&order.ID, &order.ProductID, &order.DiscordUserID, &order.DiscordUsername,
		&order.Quantity, &order.TotalAmount, &order.PixTransactionID, &order.PixQRCode,
		&order.PixQRCodeBase64, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		&order.PaidAt, &order.DeliveredAt)
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	row := or.db.QueryRow(ctx, insertOrderQuery, order.ProductID, order.DiscordUserID,
		order.DiscordUsername, order.Quantity, order.TotalAmount, order.Status)
	if err := scanOrder(row, order); err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByID returns order by id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	if err := scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, id), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrders returns all orders, newest first
func (or *OrderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		if err := scanOrder(rows, &order); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// TransitionStatus performs compare-and-swap on order status. The update is
// applied only if the stored status equals expected; fields are set in the
// same statement. Returns ErrStatusConflict when the order exists but its
// status moved on, ErrDataNotFound when there is no such order.
func (or *OrderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, expected, next string, fields models.OrderUpdate) (*models.Order, error) {
	order := models.Order{}
	row := or.db.QueryRow(ctx, transitionStatusQuery, id, expected, next,
		fields.PixTransactionID, fields.PixQRCode, fields.PixQRCodeBase64,
		fields.PaidAt, fields.DeliveredAt)
	err := scanOrder(row, &order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// no row matched: either the order is gone or the status moved on
	if _, err := or.GetOrderByID(ctx, id); err != nil {
		return nil, err
	}

	return nil, models.ErrStatusConflict
}

// GetUndeliveredOrders returns paid orders whose payment settled before cutoff
// but which have not been delivered yet
func (or *OrderRepository) GetUndeliveredOrders(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectUndeliveredQuery, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		if err := scanOrder(rows, &order); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
