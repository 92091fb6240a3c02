package orders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/logging"
	"storefront/internal/models"
)

// OrderEvent is one change on the orders collection.
type OrderEvent struct {
	Type    string        `json:"type"` // insert, update, replace, delete
	OrderID string        `json:"orderId"`
	Order   *models.Order `json:"order,omitempty"`
}

// Subscription is a live feed of order changes. The consumer owns its
// lifetime: call Cancel when done, then drain Events until it closes.
type Subscription struct {
	events chan OrderEvent
	cancel context.CancelFunc
}

func (s *Subscription) Events() <-chan OrderEvent { return s.events }

func (s *Subscription) Cancel() { s.cancel() }

// Watch opens a change stream on the orders collection and fans its events
// into the returned subscription. Updates carry the full post-image so the
// dashboard can replace its row without a follow-up read.
func (s *Store) Watch(ctx context.Context) (*Subscription, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := s.coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		events: make(chan OrderEvent, 16),
		cancel: cancel,
	}

	log := logging.New("orders.watch")

	go func() {
		defer close(sub.events)
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			var change struct {
				OperationType string        `bson:"operationType"`
				FullDocument  *models.Order `bson:"fullDocument"`
				DocumentKey   struct {
					ID primitive.ObjectID `bson:"_id"`
				} `bson:"documentKey"`
			}
			if err := stream.Decode(&change); err != nil {
				log.Error("change stream decode failed", "err", err)
				continue
			}

			ev := OrderEvent{
				Type:    change.OperationType,
				OrderID: change.DocumentKey.ID.Hex(),
				Order:   change.FullDocument,
			}

			select {
			case sub.events <- ev:
			case <-streamCtx.Done():
				return
			}
		}

		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			log.Error("change stream terminated", "err", err)
		}
	}()

	return sub, nil
}
