package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

var eventOrder = bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{db: db, coll: db.Collection(collectionEvents)}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var event domain.Event
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context, filter ports.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{}
	if filter.OpenOnly {
		query["is_open"] = true
	}
	if filter.CreatedBy != "" {
		query["created_by"] = filter.CreatedBy
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(eventOrder))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]*domain.Event, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// Delete removes the event and every registration pointing at it.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}

	if _, err := r.db.Collection(collectionRegistrations).DeleteMany(ctx, bson.M{"event_id": id}); err != nil {
		return fmt.Errorf("delete event registrations: %w", err)
	}
	return nil
}

var _ ports.EventRepository = (*EventRepository)(nil)
