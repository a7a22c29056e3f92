package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// RegistrationRepository stores the student/event ledger in event_registrations.
type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(collectionRegistrations)}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, reg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, studentID, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"student_id": studentID, "event_id": eventID})
	if err != nil {
		return false, fmt.Errorf("count registrations: %w", err)
	}
	return n > 0, nil
}

func (r *RegistrationRepository) ListEventIDs(ctx context.Context, studentID string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	var regs []domain.Registration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	ids := make([]string, 0, len(regs))
	for _, reg := range regs {
		ids = append(ids, reg.EventID)
	}
	return ids, nil
}

// ListRegisteredEvents joins the student's registrations to the events collection.
func (r *RegistrationRepository) ListRegisteredEvents(ctx context.Context, studentID string) ([]*domain.Event, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"student_id": studentID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionEvents,
			"localField":   "event_id",
			"foreignField": "_id",
			"as":           "event",
		}}},
		{{Key: "$unwind", Value: "$event"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$event"}}},
		{{Key: "$sort", Value: eventOrder}},
	}
	return r.aggregateEvents(ctx, r.coll, pipeline)
}

// ListAvailableEvents anti-joins open events against the student's registrations.
func (r *RegistrationRepository) ListAvailableEvents(ctx context.Context, studentID string) ([]*domain.Event, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_open": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": collectionRegistrations,
			"let":  bson.M{"eid": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$event_id", "$$eid"}},
					bson.M{"$eq": bson.A{"$student_id", studentID}},
				}}}},
				bson.M{"$limit": 1},
			},
			"as": "mine",
		}}},
		{{Key: "$match", Value: bson.M{"mine": bson.M{"$size": 0}}}},
		{{Key: "$project", Value: bson.M{"mine": 0}}},
		{{Key: "$sort", Value: eventOrder}},
	}
	return r.aggregateEvents(ctx, r.coll.Database().Collection(collectionEvents), pipeline)
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$event_id", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count by event: %w", err)
	}

	var rows []struct {
		EventID string `bson:"_id"`
		Count   int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}

func (r *RegistrationRepository) aggregateEvents(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate events: %w", err)
	}
	events := make([]*domain.Event, 0)
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

var (
	_ ports.RegistrationRepository = (*RegistrationRepository)(nil)
	_ ports.AvailableEventsQuerier = (*RegistrationRepository)(nil)
)
