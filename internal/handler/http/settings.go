package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/models"
	"go.uber.org/zap"
)

// SettingsService is interface for bot settings operations
type SettingsService interface {
	// GetSettings returns the settings record
	GetSettings(ctx context.Context) (*models.BotSettings, error)
	// SaveSettings updates the settings record
	SaveSettings(ctx context.Context, settings *models.BotSettings) (*models.BotSettings, error)
	// ListChannels returns the configured guild's text channels
	ListChannels(ctx context.Context) ([]models.DiscordChannel, error)
}

// SettingsHandler represents HTTP handler for settings-related requests
type SettingsHandler struct {
	svc SettingsService
}

// NewSettingsHandler creates new SettingsHandler instance
func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

type settingsReq struct {
	GuildID               *string `json:"guild_id"`
	WelcomeMessage        *string `json:"welcome_message"`
	PurchaseMessage       *string `json:"purchase_message"`
	PaymentPendingMessage *string `json:"payment_pending_message"`
	DeliveryMessage       *string `json:"delivery_message"`
}

type settingsResp struct {
	GuildID               *string `json:"guild_id"`
	WelcomeMessage        *string `json:"welcome_message"`
	PurchaseMessage       *string `json:"purchase_message"`
	PaymentPendingMessage *string `json:"payment_pending_message"`
	DeliveryMessage       *string `json:"delivery_message"`
}

// GetSettings returns bot settings
// 200 — успешная обработка запроса;
// 500 — внутренняя ошибка сервера.
func (sh *SettingsHandler) GetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := sh.svc.GetSettings(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settingsResp{
			GuildID:               settings.GuildID,
			WelcomeMessage:        settings.WelcomeMessage,
			PurchaseMessage:       settings.PurchaseMessage,
			PaymentPendingMessage: settings.PaymentPendingMessage,
			DeliveryMessage:       settings.DeliveryMessage,
		})
	}
}

// UpdateSettings saves bot settings
// 200 — настройки сохранены;
// 400 — неверный формат запроса;
// 500 — внутренняя ошибка сервера.
func (sh *SettingsHandler) UpdateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settingsReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		saved, err := sh.svc.SaveSettings(r.Context(), &models.BotSettings{
			GuildID:               req.GuildID,
			WelcomeMessage:        req.WelcomeMessage,
			PurchaseMessage:       req.PurchaseMessage,
			PaymentPendingMessage: req.PaymentPendingMessage,
			DeliveryMessage:       req.DeliveryMessage,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settingsResp{
			GuildID:               saved.GuildID,
			WelcomeMessage:        saved.WelcomeMessage,
			PurchaseMessage:       saved.PurchaseMessage,
			PaymentPendingMessage: saved.PaymentPendingMessage,
			DeliveryMessage:       saved.DeliveryMessage,
		})
	}
}

type channelResp struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type channelsResp struct {
	Channels []channelResp `json:"channels"`
}

// ListChannels returns the guild's text channels for the dashboard picker.
// Always responds 200; a lookup failure yields an empty list.
func (sh *SettingsHandler) ListChannels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := channelsResp{Channels: []channelResp{}}

		channels, err := sh.svc.ListChannels(r.Context())
		if err != nil {
			logger.Log.Warn("cannot list discord channels", zap.Error(err))
		}
		for _, ch := range channels {
			resp.Channels = append(resp.Channels, channelResp{
				ID:       ch.ID,
				Name:     ch.Name,
				Position: ch.Position,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
