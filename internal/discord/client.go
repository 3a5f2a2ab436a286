package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pixmart/pixmart/internal/models"
)

// request timeout for discord api calls
const requestTimeout = 10 * time.Second

// guild channel type for text channels
const channelTypeText = 0

// Client is HTTP client for the Discord bot API
type Client struct {
	client   *http.Client
	baseURL  string
	botToken string
}

// NewClient creates new Client instance
func NewClient(baseURL, botToken string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:  baseURL,
		botToken: botToken,
	}
}

func (c *Client) do(ctx context.Context, method, reqURL string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("discord api: unexpected status %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}

	return nil
}

type dmChannelResponse struct {
	ID string `json:"id"`
}

// SendDM opens a DM channel with the user and sends content to it
func (c *Client) SendDM(ctx context.Context, userID, content string) error {
	reqURL, err := url.JoinPath(c.baseURL, "users", "@me", "channels")
	if err != nil {
		return err
	}

	dm := dmChannelResponse{}
	if err := c.do(ctx, http.MethodPost, reqURL, map[string]string{"recipient_id": userID}, &dm); err != nil {
		return err
	}
	if dm.ID == "" {
		return fmt.Errorf("discord api: dm channel has no id")
	}

	return c.SendChannelMessage(ctx, dm.ID, content)
}

// SendChannelMessage posts content to a channel
func (c *Client) SendChannelMessage(ctx context.Context, channelID, content string) error {
	reqURL, err := url.JoinPath(c.baseURL, "channels", channelID, "messages")
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, reqURL, map[string]string{"content": content}, nil)
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GetUser returns the discord user by id
func (c *Client) GetUser(ctx context.Context, userID string) (*models.DiscordUser, error) {
	reqURL, err := url.JoinPath(c.baseURL, "users", userID)
	if err != nil {
		return nil, err
	}

	user := userResponse{}
	if err := c.do(ctx, http.MethodGet, reqURL, nil, &user); err != nil {
		return nil, err
	}

	return &models.DiscordUser{ID: user.ID, Username: user.Username}, nil
}

type channelResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Position int    `json:"position"`
}

// ListGuildChannels returns the guild's text channels sorted by position
func (c *Client) ListGuildChannels(ctx context.Context, guildID string) ([]models.DiscordChannel, error) {
	reqURL, err := url.JoinPath(c.baseURL, "guilds", guildID, "channels")
	if err != nil {
		return nil, err
	}

	channels := []channelResponse{}
	if err := c.do(ctx, http.MethodGet, reqURL, nil, &channels); err != nil {
		return nil, err
	}

	textChannels := []models.DiscordChannel{}
	for _, ch := range channels {
		if ch.Type != channelTypeText {
			continue
		}
		textChannels = append(textChannels, models.DiscordChannel{
			ID:       ch.ID,
			Name:     ch.Name,
			Position: ch.Position,
		})
	}

	sort.Slice(textChannels, func(i, j int) bool {
		return textChannels[i].Position < textChannels[j].Position
	})

	return textChannels, nil
}
