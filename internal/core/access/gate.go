// Package access decides whether an authenticated user may act on a given
// tenant's resources. It encodes the role hierarchy and the tenant-isolation
// boundary consulted by every protected operation.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
	"github.com/stayhub/hotel-saas/internal/core/token"
)

// Gate resolves bearer tokens into users and exposes the authorization
// predicates. Verification itself is stateless; the single database read is
// the user lookup, needed because the token's embedded role and tenant can be
// stale for up to the access-token TTL.
type Gate struct {
	tokens *token.Issuer
	users  ports.UserRepository
}

// NewGate wires the gate with its token verifier and user store.
func NewGate(tokens *token.Issuer, users ports.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// RequireAuthenticated verifies an access token and loads the referenced
// user. Every token-level failure (malformed, bad signature, wrong type,
// expired) and any inactive or absent user is reported as ErrUnauthorized;
// callers never see the internal distinction. A failing user store is not an
// authorization verdict and is returned as-is.
func (g *Gate) RequireAuthenticated(ctx context.Context, bearer string) (*domain.User, error) {
	raw := strings.TrimSpace(bearer)
	if raw == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := g.tokens.Verify(raw, token.TypeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	userID, err := claims.Subject()
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// RequireRoleAtLeast fails with ErrForbidden unless the actor's role
// satisfies the minimum per the hierarchy in domain.Role.AtLeast.
func RequireRoleAtLeast(actor *domain.User, min domain.Role) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.Role.AtLeast(min) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireSameTenant enforces the tenant-isolation boundary: a super admin
// passes for any tenant, everyone else only for their own.
func RequireSameTenant(actor *domain.User, tenantID uuid.UUID) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if actor.Role == domain.RoleSuperAdmin {
		return nil
	}
	if !actor.BelongsToTenant(tenantID) {
		return domain.ErrForbidden
	}
	return nil
}

// ScopeTenant resolves the tenant a list/read operation runs against. A super
// admin may request any tenant (nil means all); everyone else is pinned to
// their own tenant and forbidden from requesting another.
func ScopeTenant(actor *domain.User, requested *uuid.UUID) (*uuid.UUID, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role == domain.RoleSuperAdmin {
		return requested, nil
	}
	if actor.TenantID == nil {
		return nil, domain.ErrForbidden
	}
	if requested != nil && *requested != *actor.TenantID {
		return nil, domain.ErrForbidden
	}
	return actor.TenantID, nil
}
