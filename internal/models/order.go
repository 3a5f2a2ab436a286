package models

import (
	"time"

	"github.com/google/uuid"
)

// order status
//
// pending          — order created, no charge issued yet
// awaiting_payment — PIX charge issued, waiting for gateway confirmation
// paid             — gateway confirmed the payment
// delivered        — product content sent to the buyer
// failed/cancelled — terminal, reachable only from pending or awaiting_payment
const (
	OrderStatusPending         = "pending"
	OrderStatusAwaitingPayment = "awaiting_payment"
	OrderStatusPaid            = "paid"
	OrderStatusDelivered       = "delivered"
	OrderStatusFailed          = "failed"
	OrderStatusCancelled       = "cancelled"
)

// Order is one purchase attempt. Amounts are centavos.
type Order struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	DiscordUserID    string
	DiscordUsername  string
	Quantity         int
	TotalAmount      int64
	PixTransactionID *string
	PixQRCode        *string
	PixQRCodeBase64  *string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PaidAt           *time.Time
	DeliveredAt      *time.Time
}

// Charge is the gateway-side payment record attached to an order
// at issuance time.
type Charge struct {
	TransactionID string
	Status        string
	QRCode        string
	QRCodeBase64  string
}

// OrderUpdate carries the fields set atomically with a status transition.
// Nil fields are left untouched.
type OrderUpdate struct {
	PixTransactionID *string
	PixQRCode        *string
	PixQRCodeBase64  *string
	PaidAt           *time.Time
	DeliveredAt      *time.Time
}
