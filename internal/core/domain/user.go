package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies a user's position in the access hierarchy.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleTenantAdmin Role = "tenant_admin"
	RoleHotelAdmin  Role = "hotel_admin"
	RoleStaff       Role = "staff"
	RoleUser        Role = "user"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleTenantAdmin, RoleHotelAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// AtLeast reports whether r satisfies a minimum-role requirement.
// A super admin satisfies every requirement and a tenant admin satisfies
// itself and anything below it. Hotel admin, staff and user are peers:
// none of them satisfies a requirement for one of the others.
func (r Role) AtLeast(min Role) bool {
	if r == RoleSuperAdmin {
		return true
	}
	if r == min {
		return true
	}
	if r == RoleTenantAdmin {
		switch min {
		case RoleHotelAdmin, RoleStaff, RoleUser:
			return true
		}
	}
	return false
}

// User models an authenticated actor in the system. Every user except a
// super admin belongs to exactly one tenant.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	// Password reset ticket. Both fields are cleared on a successful reset
	// and overwritten by a newer forgot-password request (last write wins).
	ResetToken        string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// BelongsToTenant reports whether the user is scoped to the given tenant.
func (u *User) BelongsToTenant(tenantID uuid.UUID) bool {
	return u.TenantID != nil && *u.TenantID == tenantID
}

// HasValidResetTicket reports whether the stored reset ticket matches token
// and has not expired at instant now.
func (u *User) HasValidResetTicket(token string, now time.Time) bool {
	if u.ResetToken == "" || token == "" || u.ResetToken != token {
		return false
	}
	return u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now)
}
