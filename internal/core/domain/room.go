package domain

import (
	"time"

	"github.com/google/uuid"
)

// BedType identifies the bed configuration of a room type.
type BedType string

const (
	BedSingle BedType = "single"
	BedTwin   BedType = "twin"
	BedDouble BedType = "double"
	BedQueen  BedType = "queen"
	BedKing   BedType = "king"
)

// RoomStatus represents the operational state of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
	RoomBlocked     RoomStatus = "blocked"
)

// IsValid reports whether s is a known room status.
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning, RoomBlocked:
		return true
	}
	return false
}

// RoomType is a hotel-scoped room category with shared pricing and capacity.
type RoomType struct {
	ID          uuid.UUID  `json:"id"`
	HotelID     uuid.UUID  `json:"hotel_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	BedType     BedType    `json:"bed_type"`
	Capacity    int        `json:"capacity"`
	BasePrice   float64    `json:"base_price"`
	Amenities   []string   `json:"amenities,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Room is a physical, bookable unit belonging to a room type.
type Room struct {
	ID         uuid.UUID  `json:"id"`
	HotelID    uuid.UUID  `json:"hotel_id"`
	RoomTypeID uuid.UUID  `json:"room_type_id"`
	Number     string     `json:"number"`
	Floor      int        `json:"floor,omitempty"`
	Status     RoomStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}
