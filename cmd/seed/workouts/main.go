package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/repfit/repfit-api/internal/config"
	"github.com/repfit/repfit-api/internal/domain"
	"github.com/repfit/repfit-api/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	repo := repository.NewMongoWorkoutRepository(db)

	workouts := []domain.Workout{
		// Legs
		{Name: "Barbell Squat", MuscleGroup: "Legs", Equipment: "Barbell"},
		{Name: "Leg Press", MuscleGroup: "Legs", Equipment: "Machine"},
		{Name: "Walking Lunge", MuscleGroup: "Legs", Equipment: "Bodyweight/Dumbbell"},
		{Name: "Romanian Deadlift", MuscleGroup: "Legs (Hamstrings)", Equipment: "Barbell"},
		{Name: "Calf Raise", MuscleGroup: "Legs (Calves)", Equipment: "Machine"},
		{Name: "Bulgarian Split Squat", MuscleGroup: "Legs", Equipment: "Dumbbell"},
		{Name: "Glute Bridge", MuscleGroup: "Legs (Glutes)", Equipment: "Bodyweight"},

		// Chest
		{Name: "Barbell Bench Press", MuscleGroup: "Chest", Equipment: "Barbell"},
		{Name: "Incline Dumbbell Press", MuscleGroup: "Chest", Equipment: "Dumbbell"},
		{Name: "Push Up", MuscleGroup: "Chest", Equipment: "Bodyweight"},
		{Name: "Cable Fly", MuscleGroup: "Chest", Equipment: "Cable"},
		{Name: "Dips", MuscleGroup: "Chest/Triceps", Equipment: "Bodyweight"},

		// Back
		{Name: "Pull Up", MuscleGroup: "Back", Equipment: "Bodyweight"},
		{Name: "Lat Pulldown", MuscleGroup: "Back", Equipment: "Cable"},
		{Name: "Barbell Row", MuscleGroup: "Back", Equipment: "Barbell"},
		{Name: "Seated Cable Row", MuscleGroup: "Back", Equipment: "Cable"},
		{Name: "Deadlift", MuscleGroup: "Back/Legs", Equipment: "Barbell"},
		{Name: "Face Pull", MuscleGroup: "Back (Rear Delts)", Equipment: "Cable"},

		// Shoulders
		{Name: "Overhead Press", MuscleGroup: "Shoulders", Equipment: "Barbell"},
		{Name: "Dumbbell Shoulder Press", MuscleGroup: "Shoulders", Equipment: "Dumbbell"},
		{Name: "Lateral Raise", MuscleGroup: "Shoulders", Equipment: "Dumbbell"},
		{Name: "Arnold Press", MuscleGroup: "Shoulders", Equipment: "Dumbbell"},

		// Arms
		{Name: "Barbell Curl", MuscleGroup: "Biceps", Equipment: "Barbell"},
		{Name: "Hammer Curl", MuscleGroup: "Biceps", Equipment: "Dumbbell"},
		{Name: "Tricep Pushdown", MuscleGroup: "Triceps", Equipment: "Cable"},
		{Name: "Skullcrusher", MuscleGroup: "Triceps", Equipment: "EZ Bar"},

		// Core
		{Name: "Plank", MuscleGroup: "Core", Equipment: "Bodyweight"},
		{Name: "Leg Raise", MuscleGroup: "Core", Equipment: "Bodyweight"},
		{Name: "Russian Twist", MuscleGroup: "Core", Equipment: "Bodyweight/Weight"},
		{Name: "Mountain Climber", MuscleGroup: "Core", Equipment: "Bodyweight"},

		// Conditioning
		{Name: "Rowing Machine", MuscleGroup: "Conditioning", Equipment: "Machine"},
		{Name: "Assault Bike", MuscleGroup: "Conditioning", Equipment: "Machine"},
	}

	for _, w := range workouts {
		if err := repo.Create(context.Background(), &w); err != nil {
			if err == domain.ErrDuplicateWorkout {
				fmt.Printf("Skipping duplicate: %s\n", w.Name)
			} else {
				log.Printf("Error creating %s: %v\n", w.Name, err)
			}
		} else {
			fmt.Printf("Created: %s\n", w.Name)
		}
	}
	fmt.Println("Seeding Workouts Complete.")
}
