package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a digital good for sale. Price is centavos. DeliveryContent is
// the opaque payload sent to the buyer after payment.
type Product struct {
	ID               uuid.UUID
	Name             string
	Description      *string
	Price            int64
	Stock            int
	DiscordChannelID *string
	DeliveryContent  string
	ImageURL         *string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
