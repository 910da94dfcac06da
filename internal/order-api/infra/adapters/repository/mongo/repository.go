// Package mongo stores orders as documents in a MongoDB collection. The
// document layout matches the JSON the storefront posts.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

var _ ports.OrderRepository = (*Repository)(nil)

const collectionName = "orders"

type Repository struct {
	client *mongo.Client
	orders *mongo.Collection
}

// Connect dials uri, verifies the primary and makes sure the indexes exist.
func Connect(ctx context.Context, uri, database string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	r := &Repository{
		client: client,
		orders: client.Database(database).Collection(collectionName),
	}
	if err := r.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	_, err := r.orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo: create indexes: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) Create(ctx context.Context, o *domain.Order) error {
	_, err := r.orders.InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongo: %w: %s", domain.ErrDuplicateOrderNumber, o.OrderNumber)
	}
	if err != nil {
		return fmt.Errorf("mongo: insert order %q: %w", o.OrderNumber, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var o domain.Order
	err := r.orders.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get order %q: %w", orderNumber, err)
	}
	return &o, nil
}

func (r *Repository) FindByCustomer(ctx context.Context, identifier string) ([]domain.Order, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"phone": identifier},
	}}
	return r.find(ctx, filter, newestFirst())
}

func (r *Repository) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.find(ctx, bson.M{}, newestFirst().SetLimit(int64(limit)))
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *Repository) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status, at time.Time) (*domain.Order, error) {
	var o domain.Order
	err := r.orders.FindOneAndUpdate(ctx,
		bson.M{"orderNumber": orderNumber},
		bson.M{"$set": bson.M{"status": status, "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: update status of %q: %w", orderNumber, err)
	}
	return &o, nil
}

func (r *Repository) find(ctx context.Context, filter any, opts *options.FindOptions) ([]domain.Order, error) {
	cur, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find orders: %w", err)
	}

	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("mongo: decode orders: %w", err)
	}
	return orders, nil
}

// newestFirst breaks date ties on insertion order through _id.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
}
