package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

const collectionAccounts = "accounts"

// AccountRepository implements ports.AccountRepository on MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(collectionAccounts)}
}

type accountDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Role           string             `bson:"role"`
	Username       string             `bson:"username"`
	SecretHash     string             `bson:"secret_hash"`
	Name           string             `bson:"name,omitempty"`
	Email          string             `bson:"email,omitempty"`
	Phone          string             `bson:"phone,omitempty"`
	ApprovalStatus string             `bson:"approval_status,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:             d.ID.Hex(),
		Role:           domain.Role(d.Role),
		Username:       d.Username,
		SecretHash:     d.SecretHash,
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		ApprovalStatus: domain.ApprovalStatus(d.ApprovalStatus),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create inserts a new account. Duplicate (role, username) pairs are rejected
// by the compound unique index.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		Role:           string(account.Role),
		Username:       account.Username,
		SecretHash:     account.SecretHash,
		Name:           account.Name,
		Email:          account.Email,
		Phone:          account.Phone,
		ApprovalStatus: string(account.ApprovalStatus),
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, storeErr("insert account", err)
	}

	created := *account
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByUsername retrieves an account by its role-scoped username.
func (r *AccountRepository) FindByUsername(ctx context.Context, role domain.Role, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	err := r.coll.FindOne(ctx, bson.M{"role": string(role), "username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storeErr("find account", err)
	}
	return doc.toDomain(), nil
}

// FindCustomerByID retrieves a customer account by id. Non-customer ids
// resolve to not-found so employees never leak through the customer paths.
func (r *AccountRepository) FindCustomerByID(ctx context.Context, id string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var doc accountDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "role": string(domain.RoleCustomer)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storeErr("find customer", err)
	}
	return doc.toDomain(), nil
}

// ListCustomers returns customer accounts sorted by _id, so the sequence is
// stable across calls.
func (r *AccountRepository) ListCustomers(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"role": string(domain.RoleCustomer)}
	if filter.Status != "" {
		query["approval_status"] = string(filter.Status)
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeErr("list customers", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Account
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode customer", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("iterate customers", err)
	}
	return out, nil
}

// UpdateApprovalStatus atomically sets the approval status of one customer
// document and returns the updated record. Mongo's single-document atomicity
// serializes concurrent updates on the same id.
func (r *AccountRepository) UpdateApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	filter := bson.M{"_id": oid, "role": string(domain.RoleCustomer)}
	update := bson.M{"$set": bson.M{
		"approval_status": string(status),
		"updated_at":      time.Now().UTC(),
	}}

	var doc accountDoc
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storeErr("update approval status", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes the repository relies on.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "approval_status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// storeErr tags a driver failure so the API layer maps it to a generic 500.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
