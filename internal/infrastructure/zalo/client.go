package zalo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// Zalo API error codes that mean the access token must be renewed.
const (
	errCodeTokenExpired = 213
	errCodeTokenInvalid = 214
)

var ErrSendFailed = errors.New("zalo send failed")

// TokenSource supplies a valid official-account access token.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	// Invalidate discards the cached token after the API rejects it.
	Invalidate(ctx context.Context) error
}

// Config holds the endpoints and retry policy for the chat-platform client.
type Config struct {
	BaseURL           string
	MiniAppURL        string
	BookingTemplateID string
	Timeout           time.Duration
	MaxRetries        int
}

// Client implements ports.Messenger against the Zalo OA HTTP API. Requests
// are retried with exponential backoff; an expired-token response triggers a
// token renewal before the next attempt.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens TokenSource
	logger zerolog.Logger
}

func NewClient(cfg Config, tokens TokenSource, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		tokens: tokens,
		logger: logger,
	}
}

type apiResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// SendText sends a plain text message to a follower.
func (c *Client) SendText(ctx context.Context, zaloUserID, text string) error {
	payload := map[string]any{
		"recipient": map[string]string{"user_id": zaloUserID},
		"message":   map[string]string{"text": text},
	}
	return c.post(ctx, c.cfg.BaseURL+"/v2.0/oa/message", payload)
}

// SendBookingNotification delivers the booking-confirmed template message.
func (c *Client) SendBookingNotification(ctx context.Context, n ports.BookingNotification) error {
	payload := map[string]any{
		"recipient":   map[string]string{"user_id": n.ZaloUserID},
		"template_id": c.cfg.BookingTemplateID,
		"template_data": map[string]any{
			"booking_number": n.BookingNumber,
			"hotel_name":     n.HotelName,
			"check_in":       n.CheckIn.Format("02/01/2006"),
			"check_out":      n.CheckOut.Format("02/01/2006"),
			"total_amount":   fmt.Sprintf("%.0f", n.TotalAmount),
		},
	}
	return c.post(ctx, c.cfg.MiniAppURL, payload)
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = c.doRequest(ctx, url, body)
		if lastErr == nil {
			return nil
		}
		c.logger.Warn().Err(lastErr).Int("attempt", attempt+1).Str("url", url).Msg("zalo request failed")
	}
	return fmt.Errorf("%w: %v", ErrSendFailed, lastErr)
}

func (c *Client) doRequest(ctx context.Context, url string, body []byte) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if api.Error == errCodeTokenExpired || api.Error == errCodeTokenInvalid {
		if err := c.tokens.Invalidate(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("failed to invalidate oa token")
		}
		return fmt.Errorf("token rejected (code %d)", api.Error)
	}
	if api.Error != 0 {
		return fmt.Errorf("api error %d: %s", api.Error, api.Message)
	}
	return nil
}
