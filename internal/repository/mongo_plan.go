package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/repfit/repfit-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoPlanRepository(db *mongo.Database) *MongoPlanRepository {
	return &MongoPlanRepository{
		collection: db.Collection("workout_plans"),
	}
}

func (r *MongoPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) error {
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		plan.ID = oid.Hex()
	}
	return nil
}

func (r *MongoPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var plan domain.WorkoutPlan
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *MongoPlanRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "active": true}).Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *MongoPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	oid, err := primitive.ObjectIDFromHex(plan.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	plan.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        plan.Name,
			"template_id": plan.TemplateID,
			"start_date":  plan.StartDate,
			"active":      plan.Active,
			"updated_at":  plan.UpdatedAt,
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *MongoPlanRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
