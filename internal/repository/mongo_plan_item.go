package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/repfit/repfit-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoPlanItemRepository struct {
	collection *mongo.Collection
}

func NewMongoPlanItemRepository(db *mongo.Database) *MongoPlanItemRepository {
	coll := db.Collection("plan_items")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys: bson.D{
			{Key: "plan_id", Value: 1},
			{Key: "scheduled_date", Value: 1},
		},
	}
	coll.Indexes().CreateOne(ctx, mod)

	return &MongoPlanItemRepository{
		collection: coll,
	}
}

// generateULID creates a new ULID string
func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// InsertForWorkout writes all dated occurrences of one workout in a single
// bulk request. Items get client-facing ULIDs so the mobile app can address
// them before a sync round-trip.
func (r *MongoPlanItemRepository) InsertForWorkout(ctx context.Context, planID, workoutID string, dates []string) ([]*domain.PlanItem, error) {
	if len(dates) == 0 {
		return []*domain.PlanItem{}, nil
	}

	now := time.Now()
	items := make([]*domain.PlanItem, 0, len(dates))
	docs := make([]interface{}, 0, len(dates))
	for _, date := range dates {
		item := &domain.PlanItem{
			ClientID:      generateULID(),
			PlanID:        planID,
			WorkoutID:     workoutID,
			ScheduledDate: date,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		items = append(items, item)
		docs = append(docs, item)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("failed to insert plan items for workout %s: %w", workoutID, err)
	}

	for i, insertedID := range result.InsertedIDs {
		if oid, ok := insertedID.(primitive.ObjectID); ok && i < len(items) {
			items[i].ID = oid.Hex()
		}
	}
	return items, nil
}

func (r *MongoPlanItemRepository) DeleteByPlan(ctx context.Context, planID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"plan_id": planID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete plan items: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoPlanItemRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanItem, error) {
	return r.findSorted(ctx, bson.M{"plan_id": planID})
}

// ListByPlanAndRange returns items scheduled within [from, to] inclusive.
// Date tokens compare lexicographically in the storage layout, so a plain
// string range filter is correct.
func (r *MongoPlanItemRepository) ListByPlanAndRange(ctx context.Context, planID, from, to string) ([]*domain.PlanItem, error) {
	filter := bson.M{
		"plan_id": planID,
		"scheduled_date": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	return r.findSorted(ctx, filter)
}

func (r *MongoPlanItemRepository) SetCompleted(ctx context.Context, planID, id string, completed bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	var item domain.PlanItem
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrPlanItemNotFound
		}
		return err
	}
	if item.PlanID != planID {
		return domain.ErrForbidden
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid, "plan_id": planID}, bson.M{
		"$set": bson.M{
			"completed":  completed,
			"updated_at": time.Now(),
		},
	})
	return err
}

func (r *MongoPlanItemRepository) findSorted(ctx context.Context, filter bson.M) ([]*domain.PlanItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domain.PlanItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
