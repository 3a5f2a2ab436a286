package models

import (
	"time"

	"github.com/google/uuid"
)

// BotSettings is the single mutable configuration record edited from the
// dashboard: the Discord guild to operate in and the message templates.
// Templates may use the {product}, {content} and {qrcode} placeholders.
type BotSettings struct {
	ID                    uuid.UUID
	GuildID               *string
	WelcomeMessage        *string
	PurchaseMessage       *string
	PaymentPendingMessage *string
	DeliveryMessage       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
