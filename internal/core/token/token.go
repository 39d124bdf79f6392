// Package token issues and verifies the signed claims that carry a user's
// identity between requests. Tokens are stateless: validity is fully
// determined by the HMAC signature and the embedded expiry, so verification
// never touches the database.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// Token purposes. A refresh token can only mint new access tokens; an access
// token can only authorize API calls.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Verification failures. All of them are normalized to ErrUnauthorized at the
// HTTP boundary; the distinction exists for logging and tests.
var (
	ErrMalformed        = errors.New("token: malformed")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrWrongTokenType   = errors.New("token: wrong token type")
	ErrExpired          = errors.New("token: expired")
)

// Claims is the payload embedded in every signed token.
type Claims struct {
	Role     domain.Role `json:"role"`
	TenantID string      `json:"tenant_id,omitempty"`
	Type     string      `json:"type"`
	jwt.RegisteredClaims
}

// Subject returns the user id carried in the claims.
func (c *Claims) Subject() (uuid.UUID, error) {
	return uuid.Parse(c.RegisteredClaims.Subject)
}

// Tenant returns the tenant id carried in the claims, or nil for a
// super-admin token that has no tenant.
func (c *Claims) Tenant() *uuid.UUID {
	if c.TenantID == "" {
		return nil
	}
	id, err := uuid.Parse(c.TenantID)
	if err != nil {
		return nil
	}
	return &id
}

// Issuer mints and verifies HS256-signed tokens with a process-wide secret.
// Rotating the secret invalidates every outstanding token at once; there is
// no rotation or revocation mechanism.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer builds an Issuer. Non-positive TTLs fall back to 30 minutes for
// access tokens and 7 days for refresh tokens.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// IssueAccess signs a short-lived access token for the given user identity.
func (i *Issuer) IssueAccess(userID uuid.UUID, role domain.Role, tenantID *uuid.UUID) (string, error) {
	return i.issue(userID, role, tenantID, TypeAccess, i.accessTTL)
}

// IssueRefresh signs a longer-lived refresh token for the given user identity.
func (i *Issuer) IssueRefresh(userID uuid.UUID, role domain.Role, tenantID *uuid.UUID) (string, error) {
	return i.issue(userID, role, tenantID, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) issue(userID uuid.UUID, role domain.Role, tenantID *uuid.UUID, typ string, ttl time.Duration) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if tenantID != nil {
		claims.TenantID = tenantID.String()
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify validates signature and expiry and checks that the token carries the
// expected purpose. Expiry is compared without leeway; there is no clock-skew
// compensation.
func (i *Issuer) Verify(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if claims.Type != expectedType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
