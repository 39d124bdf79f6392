package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// ErrTokenNotCached signals that no official-account token is stored.
var ErrTokenNotCached = errors.New("oa token not cached")

// OATokenCache stores the official-account credential pair so every process
// shares the same short-lived access token.
// Key format: zalo:oa_token:<app_id>
type OATokenCache struct {
	client *redis.Client
	appID  string
}

func NewOATokenCache(client *redis.Client, appID string) *OATokenCache {
	return &OATokenCache{client: client, appID: appID}
}

// Get returns the cached token pair, or ErrTokenNotCached when absent.
func (c *OATokenCache) Get(ctx context.Context) (*domain.OAToken, error) {
	raw, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotCached
		}
		return nil, fmt.Errorf("get oa token: %w", err)
	}
	var token domain.OAToken
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("decode oa token: %w", err)
	}
	return &token, nil
}

// Set stores the token pair until it expires. The refresh token outlives the
// access token, so the entry is kept for a grace window past expiry.
func (c *OATokenCache) Set(ctx context.Context, token *domain.OAToken) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode oa token: %w", err)
	}
	ttl := time.Until(token.ExpiresAt) + 30*24*time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return c.client.Set(ctx, c.key(), raw, ttl).Err()
}

func (c *OATokenCache) key() string {
	return fmt.Sprintf("zalo:oa_token:%s", c.appID)
}
