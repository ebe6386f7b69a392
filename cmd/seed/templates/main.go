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
	workoutRepo := repository.NewMongoWorkoutRepository(db)
	tplRepo := repository.NewMongoTemplateRepository(db)

	// Helper to resolve catalog ids by workout name
	getIDs := func(names ...string) []string {
		var ids []string
		for _, name := range names {
			ws, err := workoutRepo.List(ctx, map[string]interface{}{"name": name})
			if err == nil && len(ws) > 0 {
				ids = append(ids, ws[0].ID)
			} else {
				fmt.Printf("Warning: Workout not found: %s\n", name)
			}
		}
		return ids
	}

	// Push/Pull/Legs over 4 weeks, 3 days per week
	ppl := func() []domain.TemplateWeek {
		weeks := make([]domain.TemplateWeek, 4)
		for w := range weeks {
			weeks[w] = domain.TemplateWeek{
				Days: []domain.TemplateDay{
					{Name: "Push", WorkoutIDs: getIDs("Barbell Bench Press", "Overhead Press", "Tricep Pushdown")},
					{Name: "Pull", WorkoutIDs: getIDs("Deadlift", "Lat Pulldown", "Barbell Curl")},
					{Name: "Legs", WorkoutIDs: getIDs("Barbell Squat", "Romanian Deadlift", "Calf Raise")},
				},
			}
		}
		return weeks
	}

	// Two full-body days per week for 8 weeks
	fullBody := func() []domain.TemplateWeek {
		weeks := make([]domain.TemplateWeek, 8)
		for w := range weeks {
			weeks[w] = domain.TemplateWeek{
				Days: []domain.TemplateDay{
					{Name: "Full Body A", WorkoutIDs: getIDs("Barbell Squat", "Push Up", "Seated Cable Row", "Plank")},
					{Name: "Full Body B", WorkoutIDs: getIDs("Deadlift", "Dumbbell Shoulder Press", "Lat Pulldown", "Leg Raise")},
				},
			}
		}
		return weeks
	}

	templates := []*domain.PlanTemplate{
		{
			Name:        "Push Pull Legs",
			Description: "Classic 3-day split over 4 weeks",
			NumWeeks:    4,
			DaysPerWeek: 3,
			Weeks:       ppl(),
		},
		{
			Name:        "Full Body - Beginner",
			Description: "Two full-body sessions a week for 8 weeks",
			NumWeeks:    8,
			DaysPerWeek: 2,
			Weeks:       fullBody(),
		},
	}

	for _, tpl := range templates {
		if err := tplRepo.Create(ctx, tpl); err != nil {
			log.Printf("Error creating template %s: %v\n", tpl.Name, err)
		} else {
			fmt.Printf("Created Template: %s (%d weeks)\n", tpl.Name, tpl.NumWeeks)
		}
	}
}
