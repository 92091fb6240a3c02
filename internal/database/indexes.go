package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	// The dashboard always reads newest-first.
	createdAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	}

	// The human-facing order id is minted client-side from a timestamp plus a
	// short random suffix. A unique index turns a residual collision into a
	// loud write failure instead of two orders sharing one id.
	orderIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().
			SetName("orderId_unique").
			SetUnique(true),
	}

	log.Println("EnsureOrderIndexes: creating createdAt_desc index")
	if _, err := indexes.CreateOne(ctx, createdAtIndex); err != nil {
		log.Println("EnsureOrderIndexes: createdAt index error:", err)
		return err
	}

	log.Println("EnsureOrderIndexes: creating orderId_unique index")
	if _, err := indexes.CreateOne(ctx, orderIDIndex); err != nil {
		log.Println("EnsureOrderIndexes: orderId index error:", err)
		return err
	}
	return nil
}
