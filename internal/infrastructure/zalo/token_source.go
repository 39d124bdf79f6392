package zalo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

const oauthTokenURL = "https://oauth.zaloapp.com/v4/oa/access_token"

var ErrNoToken = errors.New("no oa token available, official account must be re-authorized")

// TokenStore persists the official-account token pair across processes.
type TokenStore interface {
	Get(ctx context.Context) (*domain.OAToken, error)
	Set(ctx context.Context, token *domain.OAToken) error
}

// CachedTokenSource serves OA access tokens from a shared store and renews
// them with the refresh token when they expire. Renewal is serialized so
// concurrent senders do not race to burn the same refresh token.
type CachedTokenSource struct {
	store     TokenStore
	appID     string
	appSecret string
	http      *http.Client
	logger    zerolog.Logger

	mu sync.Mutex
}

func NewCachedTokenSource(store TokenStore, appID, appSecret string, logger zerolog.Logger) *CachedTokenSource {
	return &CachedTokenSource{
		store:     store,
		appID:     appID,
		appSecret: appSecret,
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// AccessToken returns a token that is valid for at least another minute,
// refreshing it first when necessary.
func (s *CachedTokenSource) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if time.Until(token.ExpiresAt) > time.Minute {
		return token.AccessToken, nil
	}
	if token.RefreshToken == "" {
		return "", ErrNoToken
	}

	renewed, err := s.refresh(ctx, token.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh oa token: %w", err)
	}
	if err := s.store.Set(ctx, renewed); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache renewed oa token")
	}
	return renewed.AccessToken, nil
}

// Invalidate forces a refresh on the next AccessToken call by expiring the
// cached access token while keeping the refresh token.
func (s *CachedTokenSource) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.store.Get(ctx)
	if err != nil {
		return err
	}
	token.ExpiresAt = time.Now().UTC()
	return s.store.Set(ctx, token)
}

type oauthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	Error        int    `json:"error"`
	ErrorName    string `json:"error_name"`
}

func (s *CachedTokenSource) refresh(ctx context.Context, refreshToken string) (*domain.OAToken, error) {
	form := url.Values{}
	form.Set("app_id", s.appID)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oauthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("secret_key", s.appSecret)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var oauth oauthResponse
	if err := json.NewDecoder(resp.Body).Decode(&oauth); err != nil {
		return nil, fmt.Errorf("decode oauth response: %w", err)
	}
	if oauth.Error != 0 || oauth.AccessToken == "" {
		return nil, fmt.Errorf("oauth error %d: %s", oauth.Error, oauth.ErrorName)
	}

	expiresIn, err := strconv.Atoi(oauth.ExpiresIn)
	if err != nil || expiresIn <= 0 {
		expiresIn = 3600
	}
	return &domain.OAToken{
		AccessToken:  oauth.AccessToken,
		RefreshToken: oauth.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
