package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

const collectionBookings = "bookings"

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

type bookingRoomDoc struct {
	RoomID    string  `bson:"room_id"`
	RateNight float64 `bson:"rate_night"`
}

type bookingDoc struct {
	ID            string           `bson:"_id"`
	HotelID       string           `bson:"hotel_id"`
	TenantID      string           `bson:"tenant_id"`
	CustomerID    string           `bson:"customer_id"`
	BookingNumber string           `bson:"booking_number"`
	CheckIn       time.Time        `bson:"check_in"`
	CheckOut      time.Time        `bson:"check_out"`
	Status        string           `bson:"status"`
	AdultCount    int              `bson:"adult_count"`
	ChildrenCount int              `bson:"children_count"`
	GuestName     string           `bson:"guest_name,omitempty"`
	GuestEmail    string           `bson:"guest_email,omitempty"`
	GuestPhone    string           `bson:"guest_phone,omitempty"`
	SpecialReqs   string           `bson:"special_requests,omitempty"`
	Note          string           `bson:"note,omitempty"`
	TotalAmount   float64          `bson:"total_amount"`
	DiscountAmt   float64          `bson:"discount_amount"`
	TaxAmount     float64          `bson:"tax_amount"`
	PaymentState  string           `bson:"payment_state"`
	Channel       string           `bson:"channel,omitempty"`
	Rooms         []bookingRoomDoc `bson:"rooms"`
	CreatedAt     time.Time        `bson:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at"`
	DeletedAt     *time.Time       `bson:"deleted_at,omitempty"`
}

func toBookingDoc(b *domain.Booking) bookingDoc {
	rooms := make([]bookingRoomDoc, 0, len(b.Rooms))
	for _, room := range b.Rooms {
		rooms = append(rooms, bookingRoomDoc{RoomID: room.RoomID.String(), RateNight: room.RateNight})
	}
	return bookingDoc{
		ID:            b.ID.String(),
		HotelID:       b.HotelID.String(),
		TenantID:      b.TenantID.String(),
		CustomerID:    b.CustomerID.String(),
		BookingNumber: b.BookingNumber,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Status:        string(b.Status),
		AdultCount:    b.AdultCount,
		ChildrenCount: b.ChildrenCount,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
		SpecialReqs:   b.SpecialReqs,
		Note:          b.Note,
		TotalAmount:   b.TotalAmount,
		DiscountAmt:   b.DiscountAmt,
		TaxAmount:     b.TaxAmount,
		PaymentState:  string(b.PaymentState),
		Channel:       b.Channel,
		Rooms:         rooms,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		DeletedAt:     b.DeletedAt,
	}
}

func (d bookingDoc) toDomain() (*domain.Booking, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("booking doc %q: %w", d.ID, err)
	}
	hotelID, err := uuid.Parse(d.HotelID)
	if err != nil {
		return nil, fmt.Errorf("booking doc %q hotel: %w", d.ID, err)
	}
	tenantID, err := uuid.Parse(d.TenantID)
	if err != nil {
		return nil, fmt.Errorf("booking doc %q tenant: %w", d.ID, err)
	}
	customerID, err := uuid.Parse(d.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("booking doc %q customer: %w", d.ID, err)
	}
	rooms := make([]domain.BookingRoom, 0, len(d.Rooms))
	for _, room := range d.Rooms {
		roomID, err := uuid.Parse(room.RoomID)
		if err != nil {
			return nil, fmt.Errorf("booking doc %q room: %w", d.ID, err)
		}
		rooms = append(rooms, domain.BookingRoom{RoomID: roomID, RateNight: room.RateNight})
	}
	return &domain.Booking{
		ID:            id,
		HotelID:       hotelID,
		TenantID:      tenantID,
		CustomerID:    customerID,
		BookingNumber: d.BookingNumber,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		Status:        domain.BookingStatus(d.Status),
		AdultCount:    d.AdultCount,
		ChildrenCount: d.ChildrenCount,
		GuestName:     d.GuestName,
		GuestEmail:    d.GuestEmail,
		GuestPhone:    d.GuestPhone,
		SpecialReqs:   d.SpecialReqs,
		Note:          d.Note,
		TotalAmount:   d.TotalAmount,
		DiscountAmt:   d.DiscountAmt,
		TaxAmount:     d.TaxAmount,
		PaymentState:  domain.PaymentState(d.PaymentState),
		Channel:       d.Channel,
		Rooms:         rooms,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		DeletedAt:     d.DeletedAt,
	}, nil
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["deleted_at"] = nil
	var doc bookingDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return doc.toDomain()
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *BookingRepository) FindByNumber(ctx context.Context, bookingNumber string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"booking_number": bookingNumber})
}

func (r *BookingRepository) List(ctx context.Context, filter ports.BookingFilter, page ports.ListParams) ([]domain.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"deleted_at": nil}
	if filter.TenantID != nil {
		query["tenant_id"] = filter.TenantID.String()
	}
	if filter.HotelID != nil {
		query["hotel_id"] = filter.HotelID.String()
	}
	if filter.CustomerID != nil {
		query["customer_id"] = filter.CustomerID.String()
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.From != nil || filter.To != nil {
		rangeQuery := bson.M{}
		if filter.From != nil {
			rangeQuery["$gte"] = *filter.From
		}
		if filter.To != nil {
			rangeQuery["$lt"] = *filter.To
		}
		query["check_in"] = rangeQuery
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode booking: %w", err)
		}
		b, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, total, cursor.Err()
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toBookingDoc(booking)); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": booking.ID.String()}, toBookingDoc(booking))
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// EnsureIndexes creates the unique booking number index plus lookup indexes.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "hotel_id", Value: 1}, {Key: "check_in", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
