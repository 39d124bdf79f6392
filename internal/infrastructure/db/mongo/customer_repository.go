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

const collectionCustomers = "customers"

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

type customerDoc struct {
	ID         string     `bson:"_id"`
	TenantID   string     `bson:"tenant_id"`
	FullName   string     `bson:"full_name"`
	Email      string     `bson:"email,omitempty"`
	Phone      string     `bson:"phone,omitempty"`
	ZaloUserID string     `bson:"zalo_user_id,omitempty"`
	Note       string     `bson:"note,omitempty"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty"`
}

func toCustomerDoc(c *domain.Customer) customerDoc {
	return customerDoc{
		ID:         c.ID.String(),
		TenantID:   c.TenantID.String(),
		FullName:   c.FullName,
		Email:      c.Email,
		Phone:      c.Phone,
		ZaloUserID: c.ZaloUserID,
		Note:       c.Note,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		DeletedAt:  c.DeletedAt,
	}
}

func (d customerDoc) toDomain() (*domain.Customer, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("customer doc %q: %w", d.ID, err)
	}
	tenantID, err := uuid.Parse(d.TenantID)
	if err != nil {
		return nil, fmt.Errorf("customer doc %q tenant: %w", d.ID, err)
	}
	return &domain.Customer{
		ID:         id,
		TenantID:   tenantID,
		FullName:   d.FullName,
		Email:      d.Email,
		Phone:      d.Phone,
		ZaloUserID: d.ZaloUserID,
		Note:       d.Note,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		DeletedAt:  d.DeletedAt,
	}, nil
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["deleted_at"] = nil
	var doc customerDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain()
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *CustomerRepository) FindByPhone(ctx context.Context, tenantID uuid.UUID, phone string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"tenant_id": tenantID.String(), "phone": phone})
}

func (r *CustomerRepository) FindByZaloID(ctx context.Context, tenantID uuid.UUID, zaloUserID string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"tenant_id": tenantID.String(), "zalo_user_id": zaloUserID})
}

func (r *CustomerRepository) List(ctx context.Context, filter ports.CustomerFilter, page ports.ListParams) ([]domain.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"deleted_at": nil}
	if filter.TenantID != nil {
		query["tenant_id"] = filter.TenantID.String()
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"full_name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": filter.Search}},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []domain.Customer
	for cursor.Next(ctx) {
		var doc customerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode customer: %w", err)
		}
		c, err := doc.toDomain()
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	return customers, total, cursor.Err()
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toCustomerDoc(customer)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCustomerExists
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": customer.ID.String()}, toCustomerDoc(customer))
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// EnsureIndexes creates tenant-scoped phone and chat id lookup indexes.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "phone", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "zalo_user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
