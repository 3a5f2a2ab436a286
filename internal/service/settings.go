package service

import (
	"context"
	"errors"

	"github.com/pixmart/pixmart/internal/models"
)

var errGuildNotConfigured = errors.New("discord guild id is not configured")

// SettingsRepository is interface for interacting with the settings record
type SettingsRepository interface {
	// GetSettings returns the settings record
	GetSettings(ctx context.Context) (*models.BotSettings, error)
	// SaveSettings updates the settings record, creating it on first save
	SaveSettings(ctx context.Context, settings *models.BotSettings) (*models.BotSettings, error)
}

// ChannelLister lists the guild's text channels
type ChannelLister interface {
	// ListGuildChannels returns the guild's text channels sorted by position
	ListGuildChannels(ctx context.Context, guildID string) ([]models.DiscordChannel, error)
}

// SettingsService manages the bot settings record and the channel picker
type SettingsService struct {
	repo     SettingsRepository
	channels ChannelLister
}

// NewSettingsService creates new SettingsService instance
func NewSettingsService(repo SettingsRepository, channels ChannelLister) *SettingsService {
	return &SettingsService{
		repo:     repo,
		channels: channels,
	}
}

// GetSettings returns the settings record; a missing record comes back empty
func (ss *SettingsService) GetSettings(ctx context.Context) (*models.BotSettings, error) {
	settings, err := ss.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return &models.BotSettings{}, nil
		}
		return nil, err
	}
	return settings, nil
}

// SaveSettings updates the settings record
func (ss *SettingsService) SaveSettings(ctx context.Context, settings *models.BotSettings) (*models.BotSettings, error) {
	return ss.repo.SaveSettings(ctx, settings)
}

// ListChannels returns the configured guild's text channels
func (ss *SettingsService) ListChannels(ctx context.Context) ([]models.DiscordChannel, error) {
	settings, err := ss.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.GuildID == nil || *settings.GuildID == "" {
		return nil, errGuildNotConfigured
	}

	return ss.channels.ListGuildChannels(ctx, *settings.GuildID)
}
