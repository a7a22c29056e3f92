package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

type ReminderRepository struct {
	coll *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{coll: db.Collection(collectionReminders)}
}

func (r *ReminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rem); err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": rem.ID, "user_id": rem.UserID},
		bson.M{"$set": bson.M{
			"title":      rem.Title,
			"note":       rem.Note,
			"remind_at":  rem.RemindAt.UTC(),
			"updated_at": rem.UpdatedAt.UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rem domain.Reminder
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&rem); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, fmt.Errorf("find reminder: %w", err)
	}
	return &rem, nil
}

func (r *ReminderRepository) ListFrom(ctx context.Context, userID string, from time.Time) ([]*domain.Reminder, error) {
	return r.find(ctx, bson.M{"user_id": userID, "remind_at": bson.M{"$gte": from.UTC()}})
}

func (r *ReminderRepository) ListDue(ctx context.Context, from, to time.Time) ([]*domain.Reminder, error) {
	return r.find(ctx, bson.M{"remind_at": bson.M{"$gte": from.UTC(), "$lte": to.UTC()}})
}

func (r *ReminderRepository) find(ctx context.Context, filter bson.M) ([]*domain.Reminder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "remind_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	reminders := make([]*domain.Reminder, 0)
	if err := cur.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}
	return reminders, nil
}

var _ ports.ReminderRepository = (*ReminderRepository)(nil)
