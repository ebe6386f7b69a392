package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/repfit/repfit-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoWorkoutRepository struct {
	collection *mongo.Collection
}

func NewMongoWorkoutRepository(db *mongo.Database) *MongoWorkoutRepository {
	coll := db.Collection("workouts")

	// Create Index
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mod := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	coll.Indexes().CreateOne(ctx, mod)

	return &MongoWorkoutRepository{
		collection: coll,
	}
}

func (r *MongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateWorkout
		}
		return fmt.Errorf("failed to create workout: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		workout.ID = oid.Hex()
	}
	return nil
}

func (r *MongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var workout domain.Workout
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&workout)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *MongoWorkoutRepository) List(ctx context.Context, filter map[string]interface{}) ([]*domain.Workout, error) {
	query := bson.M{}
	if name, ok := filter["name"].(string); ok && name != "" {
		query["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	if group, ok := filter["muscle_group"].(string); ok && group != "" {
		query["muscle_group"] = group
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []*domain.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *MongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	oid, err := primitive.ObjectIDFromHex(workout.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	workout.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":         workout.Name,
			"muscle_group": workout.MuscleGroup,
			"equipment":    workout.Equipment,
			"description":  workout.Description,
			"updated_at":   workout.UpdatedAt,
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *MongoWorkoutRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
