package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a tenant-scoped guest record. Customers are not users: they
// never authenticate and exist only as booking counterparts.
type Customer struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	ZaloUserID string     `json:"zalo_user_id,omitempty"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}
