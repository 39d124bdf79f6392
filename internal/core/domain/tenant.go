package domain

import (
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the lifecycle state of a tenant account.
type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
	TenantPending  TenantStatus = "pending"
)

// SubscriptionPlan identifies the tenant's billing tier.
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanBasic      SubscriptionPlan = "basic"
	PlanPremium    SubscriptionPlan = "premium"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// Tenant is an isolated customer organization (a hotel group). All resources
// except super-admin users are scoped to exactly one tenant.
type Tenant struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	ContactEmail string           `json:"contact_email,omitempty"`
	ContactPhone string           `json:"contact_phone,omitempty"`
	Status       TenantStatus     `json:"status"`
	Plan         SubscriptionPlan `json:"plan"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    *time.Time       `json:"-"`
}
