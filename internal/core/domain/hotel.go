package domain

import (
	"time"

	"github.com/google/uuid"
)

// HotelStatus represents the publication state of a hotel.
type HotelStatus string

const (
	HotelDraft       HotelStatus = "draft"
	HotelPending     HotelStatus = "pending"
	HotelPublished   HotelStatus = "published"
	HotelSuspended   HotelStatus = "suspended"
	HotelMaintenance HotelStatus = "maintenance"
	HotelArchived    HotelStatus = "archived"
)

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Hotel is a property managed by a tenant.
type Hotel struct {
	ID           uuid.UUID   `json:"id"`
	TenantID     uuid.UUID   `json:"tenant_id"`
	Name         string      `json:"name"`
	Address      string      `json:"address"`
	City         string      `json:"city"`
	Country      string      `json:"country"`
	PostalCode   string      `json:"postal_code,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Email        string      `json:"email,omitempty"`
	Website      string      `json:"website,omitempty"`
	Location     Coordinates `json:"location"`
	Description  string      `json:"description,omitempty"`
	StarRating   int         `json:"star_rating,omitempty"`
	CheckInTime  string      `json:"check_in_time"`
	CheckOutTime string      `json:"check_out_time"`
	Amenities    []string    `json:"amenities,omitempty"`
	Status       HotelStatus `json:"status"`
	IsActive     bool        `json:"is_active"`
	Thumbnail    string      `json:"thumbnail,omitempty"`
	Gallery      []string    `json:"gallery,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	DeletedAt    *time.Time  `json:"-"`
}
