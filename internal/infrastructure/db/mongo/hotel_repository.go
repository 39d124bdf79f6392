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

const collectionHotels = "hotels"

type HotelRepository struct {
	col *mongo.Collection
}

func NewHotelRepository(db *mongo.Database) *HotelRepository {
	return &HotelRepository{col: db.Collection(collectionHotels)}
}

type hotelDoc struct {
	ID           string             `bson:"_id"`
	TenantID     string             `bson:"tenant_id"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	City         string             `bson:"city"`
	Country      string             `bson:"country"`
	PostalCode   string             `bson:"postal_code,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	Email        string             `bson:"email,omitempty"`
	Website      string             `bson:"website,omitempty"`
	Location     domain.Coordinates `bson:"location"`
	Description  string             `bson:"description,omitempty"`
	StarRating   int                `bson:"star_rating,omitempty"`
	CheckInTime  string             `bson:"check_in_time"`
	CheckOutTime string             `bson:"check_out_time"`
	Amenities    []string           `bson:"amenities,omitempty"`
	Status       string             `bson:"status"`
	IsActive     bool               `bson:"is_active"`
	Thumbnail    string             `bson:"thumbnail,omitempty"`
	Gallery      []string           `bson:"gallery,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
	DeletedAt    *time.Time         `bson:"deleted_at,omitempty"`
}

func toHotelDoc(h *domain.Hotel) hotelDoc {
	return hotelDoc{
		ID:           h.ID.String(),
		TenantID:     h.TenantID.String(),
		Name:         h.Name,
		Address:      h.Address,
		City:         h.City,
		Country:      h.Country,
		PostalCode:   h.PostalCode,
		Phone:        h.Phone,
		Email:        h.Email,
		Website:      h.Website,
		Location:     h.Location,
		Description:  h.Description,
		StarRating:   h.StarRating,
		CheckInTime:  h.CheckInTime,
		CheckOutTime: h.CheckOutTime,
		Amenities:    h.Amenities,
		Status:       string(h.Status),
		IsActive:     h.IsActive,
		Thumbnail:    h.Thumbnail,
		Gallery:      h.Gallery,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
		DeletedAt:    h.DeletedAt,
	}
}

func (d hotelDoc) toDomain() (*domain.Hotel, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("hotel doc %q: %w", d.ID, err)
	}
	tenantID, err := uuid.Parse(d.TenantID)
	if err != nil {
		return nil, fmt.Errorf("hotel doc %q tenant: %w", d.ID, err)
	}
	return &domain.Hotel{
		ID:           id,
		TenantID:     tenantID,
		Name:         d.Name,
		Address:      d.Address,
		City:         d.City,
		Country:      d.Country,
		PostalCode:   d.PostalCode,
		Phone:        d.Phone,
		Email:        d.Email,
		Website:      d.Website,
		Location:     d.Location,
		Description:  d.Description,
		StarRating:   d.StarRating,
		CheckInTime:  d.CheckInTime,
		CheckOutTime: d.CheckOutTime,
		Amenities:    d.Amenities,
		Status:       domain.HotelStatus(d.Status),
		IsActive:     d.IsActive,
		Thumbnail:    d.Thumbnail,
		Gallery:      d.Gallery,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		DeletedAt:    d.DeletedAt,
	}, nil
}

func (r *HotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc hotelDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id.String(), "deleted_at": nil}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("find hotel: %w", err)
	}
	return doc.toDomain()
}

func (r *HotelRepository) List(ctx context.Context, filter ports.HotelFilter, page ports.ListParams) ([]domain.Hotel, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"deleted_at": nil}
	if filter.TenantID != nil {
		query["tenant_id"] = filter.TenantID.String()
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count hotels: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []domain.Hotel
	for cursor.Next(ctx) {
		var doc hotelDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode hotel: %w", err)
		}
		h, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		hotels = append(hotels, *h)
	}
	return hotels, total, cursor.Err()
}

func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toHotelDoc(hotel)); err != nil {
		return nil, fmt.Errorf("insert hotel: %w", err)
	}
	return hotel, nil
}

func (r *HotelRepository) Update(ctx context.Context, hotel *domain.Hotel) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": hotel.ID.String()}, toHotelDoc(hotel))
	if err != nil {
		return fmt.Errorf("update hotel: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

func (r *HotelRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("delete hotel: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

// EnsureIndexes creates tenant and city lookup indexes.
func (r *HotelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
