package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/pixmart/pixmart/internal/models"
	"github.com/pixmart/pixmart/internal/repository/postgres"
)

const (
	selectSettingsQuery = `
						SELECT id, guild_id, welcome_message, purchase_message, payment_pending_message, delivery_message, created_at, updated_at
						FROM bot_settings
						LIMIT 1
`
	insertSettingsQuery = `
						INSERT INTO bot_settings (guild_id, welcome_message, purchase_message, payment_pending_message, delivery_message)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING id, guild_id, welcome_message, purchase_message, payment_pending_message, delivery_message, created_at, updated_at
`
	updateSettingsQuery = `
						UPDATE bot_settings
						SET guild_id                = $2,
							welcome_message         = $3,
							purchase_message        = $4,
							payment_pending_message = $5,
							delivery_message        = $6,
							updated_at              = now()
						WHERE id = $1
						RETURNING id, guild_id, welcome_message, purchase_message, payment_pending_message, delivery_message, created_at, updated_at
`
)

// SettingsRepository implements SettingsRepository interface
type SettingsRepository struct {
	db *postgres.DB
}

// NewSettingsRepository creates new SettingsRepository instance
func NewSettingsRepository(db *postgres.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func scanSettings(row pgx.Row, s *models.BotSettings) error {
	return row.Scan(&s.ID, &s.GuildID, &s.WelcomeMessage, &s.PurchaseMessage,
		&s.PaymentPendingMessage, &s.DeliveryMessage, &s.CreatedAt, &s.UpdatedAt)
}

// GetSettings returns the settings record
func (sr *SettingsRepository) GetSettings(ctx context.Context) (*models.BotSettings, error) {
	settings := models.BotSettings{}
	if err := scanSettings(sr.db.QueryRow(ctx, selectSettingsQuery), &settings); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &settings, nil
}

// SaveSettings updates the settings record, creating it on first save
func (sr *SettingsRepository) SaveSettings(ctx context.Context, settings *models.BotSettings) (*models.BotSettings, error) {
	existing, err := sr.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrDataNotFound) {
			return nil, err
		}
		row := sr.db.QueryRow(ctx, insertSettingsQuery, settings.GuildID,
			settings.WelcomeMessage, settings.PurchaseMessage,
			settings.PaymentPendingMessage, settings.DeliveryMessage)
		if err := scanSettings(row, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	row := sr.db.QueryRow(ctx, updateSettingsQuery, existing.ID, settings.GuildID,
		settings.WelcomeMessage, settings.PurchaseMessage,
		settings.PaymentPendingMessage, settings.DeliveryMessage)
	if err := scanSettings(row, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
