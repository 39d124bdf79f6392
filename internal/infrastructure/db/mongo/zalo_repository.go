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
	collectionFollowers = "zalo_followers"
	collectionMessages  = "zalo_messages"
)

type FollowerRepository struct {
	col *mongo.Collection
}

func NewFollowerRepository(db *mongo.Database) *FollowerRepository {
	return &FollowerRepository{col: db.Collection(collectionFollowers)}
}

type followerDoc struct {
	ID         string     `bson:"_id"`
	TenantID   string     `bson:"tenant_id"`
	ZaloUserID string     `bson:"zalo_user_id"`
	IsFollower bool       `bson:"is_follower"`
	FollowedAt time.Time  `bson:"followed_at"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty"`
}

func (d followerDoc) toDomain() (*domain.Follower, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("follower doc %q: %w", d.ID, err)
	}
	tenantID, err := uuid.Parse(d.TenantID)
	if err != nil {
		return nil, fmt.Errorf("follower doc %q tenant: %w", d.ID, err)
	}
	return &domain.Follower{
		ID:         id,
		TenantID:   tenantID,
		ZaloUserID: d.ZaloUserID,
		IsFollower: d.IsFollower,
		FollowedAt: d.FollowedAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}, nil
}

func (r *FollowerRepository) FindByZaloID(ctx context.Context, zaloUserID string) (*domain.Follower, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc followerDoc
	err := r.col.FindOne(ctx, bson.M{"zalo_user_id": zaloUserID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFollowerNotFound
		}
		return nil, fmt.Errorf("find follower: %w", err)
	}
	return doc.toDomain()
}

func (r *FollowerRepository) List(ctx context.Context, tenantID uuid.UUID, page ports.ListParams) ([]domain.Follower, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"tenant_id": tenantID.String(), "is_follower": true}
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count followers: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "followed_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list followers: %w", err)
	}
	defer cursor.Close(ctx)

	var followers []domain.Follower
	for cursor.Next(ctx) {
		var doc followerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode follower: %w", err)
		}
		f, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		followers = append(followers, *f)
	}
	return followers, total, cursor.Err()
}

// Upsert inserts or refreshes the follower keyed by chat user id. Repeated
// follow and unfollow events update the same document.
func (r *FollowerRepository) Upsert(ctx context.Context, follower *domain.Follower) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"tenant_id": follower.TenantID.String(), "zalo_user_id": follower.ZaloUserID}
	update := bson.M{
		"$set": bson.M{
			"is_follower": follower.IsFollower,
			"followed_at": follower.FollowedAt,
			"updated_at":  time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id":        follower.ID.String(),
			"tenant_id":  follower.TenantID.String(),
			"created_at": follower.CreatedAt,
		},
	}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert follower: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique tenant+chat-user index backing upserts.
func (r *FollowerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "zalo_user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type messageDoc struct {
	ID         string    `bson:"_id"`
	TenantID   string    `bson:"tenant_id"`
	CustomerID string    `bson:"customer_id,omitempty"`
	ZaloUserID string    `bson:"zalo_user_id"`
	Direction  string    `bson:"direction"`
	Kind       string    `bson:"kind"`
	Text       string    `bson:"text,omitempty"`
	Status     string    `bson:"status"`
	SentAt     time.Time `bson:"sent_at"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d messageDoc) toDomain() (*domain.ZaloMessage, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("message doc %q: %w", d.ID, err)
	}
	tenantID, err := uuid.Parse(d.TenantID)
	if err != nil {
		return nil, fmt.Errorf("message doc %q tenant: %w", d.ID, err)
	}
	var customerID *uuid.UUID
	if d.CustomerID != "" {
		cid, err := uuid.Parse(d.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("message doc %q customer: %w", d.ID, err)
		}
		customerID = &cid
	}
	return &domain.ZaloMessage{
		ID:         id,
		TenantID:   tenantID,
		CustomerID: customerID,
		ZaloUserID: d.ZaloUserID,
		Direction:  domain.MessageDirection(d.Direction),
		Kind:       d.Kind,
		Text:       d.Text,
		Status:     domain.MessageStatus(d.Status),
		SentAt:     d.SentAt,
		CreatedAt:  d.CreatedAt,
	}, nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.ZaloMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDoc{
		ID:         msg.ID.String(),
		TenantID:   msg.TenantID.String(),
		ZaloUserID: msg.ZaloUserID,
		Direction:  string(msg.Direction),
		Kind:       msg.Kind,
		Text:       msg.Text,
		Status:     string(msg.Status),
		SentAt:     msg.SentAt,
		CreatedAt:  msg.CreatedAt,
	}
	if msg.CustomerID != nil {
		doc.CustomerID = msg.CustomerID.String()
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByZaloID(ctx context.Context, zaloUserID string, page ports.ListParams) ([]domain.ZaloMessage, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"zalo_user_id": zaloUserID}
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "sent_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []domain.ZaloMessage
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode message: %w", err)
		}
		m, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		messages = append(messages, *m)
	}
	return messages, total, cursor.Err()
}
