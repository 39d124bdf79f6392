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

const (
	collectionRoomTypes = "room_types"
	collectionRooms     = "rooms"
)

type RoomTypeRepository struct {
	col *mongo.Collection
}

func NewRoomTypeRepository(db *mongo.Database) *RoomTypeRepository {
	return &RoomTypeRepository{col: db.Collection(collectionRoomTypes)}
}

type roomTypeDoc struct {
	ID          string     `bson:"_id"`
	HotelID     string     `bson:"hotel_id"`
	Name        string     `bson:"name"`
	Description string     `bson:"description,omitempty"`
	BedType     string     `bson:"bed_type"`
	Capacity    int        `bson:"capacity"`
	BasePrice   float64    `bson:"base_price"`
	Amenities   []string   `bson:"amenities,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
	DeletedAt   *time.Time `bson:"deleted_at,omitempty"`
}

func toRoomTypeDoc(rt *domain.RoomType) roomTypeDoc {
	return roomTypeDoc{
		ID:          rt.ID.String(),
		HotelID:     rt.HotelID.String(),
		Name:        rt.Name,
		Description: rt.Description,
		BedType:     string(rt.BedType),
		Capacity:    rt.Capacity,
		BasePrice:   rt.BasePrice,
		Amenities:   rt.Amenities,
		CreatedAt:   rt.CreatedAt,
		UpdatedAt:   rt.UpdatedAt,
		DeletedAt:   rt.DeletedAt,
	}
}

func (d roomTypeDoc) toDomain() (*domain.RoomType, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("room type doc %q: %w", d.ID, err)
	}
	hotelID, err := uuid.Parse(d.HotelID)
	if err != nil {
		return nil, fmt.Errorf("room type doc %q hotel: %w", d.ID, err)
	}
	return &domain.RoomType{
		ID:          id,
		HotelID:     hotelID,
		Name:        d.Name,
		Description: d.Description,
		BedType:     domain.BedType(d.BedType),
		Capacity:    d.Capacity,
		BasePrice:   d.BasePrice,
		Amenities:   d.Amenities,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		DeletedAt:   d.DeletedAt,
	}, nil
}

func (r *RoomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roomTypeDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id.String(), "deleted_at": nil}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("find room type: %w", err)
	}
	return doc.toDomain()
}

func (r *RoomTypeRepository) ListByHotel(ctx context.Context, hotelID uuid.UUID, page ports.ListParams) ([]domain.RoomType, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"hotel_id": hotelID.String(), "deleted_at": nil}
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count room types: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "base_price", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []domain.RoomType
	for cursor.Next(ctx) {
		var doc roomTypeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode room type: %w", err)
		}
		rt, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		types = append(types, *rt)
	}
	return types, total, cursor.Err()
}

func (r *RoomTypeRepository) Create(ctx context.Context, rt *domain.RoomType) (*domain.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toRoomTypeDoc(rt)); err != nil {
		return nil, fmt.Errorf("insert room type: %w", err)
	}
	return rt, nil
}

func (r *RoomTypeRepository) Update(ctx context.Context, rt *domain.RoomType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rt.ID.String()}, toRoomTypeDoc(rt))
	if err != nil {
		return fmt.Errorf("update room type: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomTypeNotFound
	}
	return nil
}

func (r *RoomTypeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("delete room type: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomTypeNotFound
	}
	return nil
}

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection(collectionRooms)}
}

type roomDoc struct {
	ID         string     `bson:"_id"`
	HotelID    string     `bson:"hotel_id"`
	RoomTypeID string     `bson:"room_type_id"`
	Number     string     `bson:"number"`
	Floor      int        `bson:"floor,omitempty"`
	Status     string     `bson:"status"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty"`
}

func toRoomDoc(room *domain.Room) roomDoc {
	return roomDoc{
		ID:         room.ID.String(),
		HotelID:    room.HotelID.String(),
		RoomTypeID: room.RoomTypeID.String(),
		Number:     room.Number,
		Floor:      room.Floor,
		Status:     string(room.Status),
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
		DeletedAt:  room.DeletedAt,
	}
}

func (d roomDoc) toDomain() (*domain.Room, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("room doc %q: %w", d.ID, err)
	}
	hotelID, err := uuid.Parse(d.HotelID)
	if err != nil {
		return nil, fmt.Errorf("room doc %q hotel: %w", d.ID, err)
	}
	roomTypeID, err := uuid.Parse(d.RoomTypeID)
	if err != nil {
		return nil, fmt.Errorf("room doc %q type: %w", d.ID, err)
	}
	return &domain.Room{
		ID:         id,
		HotelID:    hotelID,
		RoomTypeID: roomTypeID,
		Number:     d.Number,
		Floor:      d.Floor,
		Status:     domain.RoomStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}, nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roomDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id.String(), "deleted_at": nil}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return doc.toDomain()
}

func (r *RoomRepository) List(ctx context.Context, filter ports.RoomFilter, page ports.ListParams) ([]domain.Room, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"deleted_at": nil}
	if filter.HotelID != nil {
		query["hotel_id"] = filter.HotelID.String()
	}
	if filter.RoomTypeID != nil {
		query["room_type_id"] = filter.RoomTypeID.String()
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var rooms []domain.Room
	for cursor.Next(ctx) {
		var doc roomDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode room: %w", err)
		}
		room, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, total, cursor.Err()
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toRoomDoc(room)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRoomExists
		}
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return room, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": room.ID.String()}, toRoomDoc(room))
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// EnsureIndexes creates a unique hotel+number index so two rooms in the same
// hotel can never share a number.
func (r *RoomRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hotel_id", Value: 1}, {Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "room_type_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
