package orders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

var ErrNotFound = errors.New("order not found")

// Store wraps the orders collection.
type Store struct {
	coll *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{coll: db.Collection("orders")}
}

func (s *Store) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	res, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return order, nil
}

// List returns all orders newest-first, the way the dashboard reads them.
func (s *Store) List(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets orderStatus and stamps updatedAt. Any status may replace
// any other; the caller is responsible for enum validity.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	update := bson.M{"$set": bson.M{
		"orderStatus": status,
		"updatedAt":   time.Now(),
	}}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
