package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/repfit/repfit-api/internal/config"
	"github.com/repfit/repfit-api/internal/domain"
	"github.com/repfit/repfit-api/internal/handler"
	"github.com/repfit/repfit-api/internal/middleware"
	"github.com/repfit/repfit-api/internal/repository"
	"github.com/repfit/repfit-api/internal/service"
	"github.com/repfit/repfit-api/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	AuthClient  service.FirebaseAuthClient
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	redisRepo := repository.NewRedisCacheRepository(deps.RedisClient)
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	workoutRepo := repository.NewMongoWorkoutRepository(deps.MongoDB)
	templateRepo := repository.NewMongoTemplateRepository(deps.MongoDB)
	planMongoRepo := repository.NewMongoPlanRepository(deps.MongoDB)
	planRepo := repository.NewCachedPlanRepository(planMongoRepo, redisRepo)
	itemRepo := repository.NewMongoPlanItemRepository(deps.MongoDB)
	session := repository.NewRedisSession(redisRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, deps.AuthClient, deps.Config.JWT)
	importService := service.NewImportService(session, planRepo, itemRepo, redisRepo)
	previewService := service.NewPreviewService(workoutRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workoutHandler := handler.NewWorkoutHandler(workoutRepo)
	templateHandler := handler.NewTemplateHandler(templateRepo)
	planHandler := handler.NewPlanHandler(planRepo, itemRepo)
	importHandler := handler.NewImportHandler(importService, previewService, templateRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "RepFit API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(telemetry.FiberMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "repfit-api",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.LoginOrRegister)

	// ===========================================
	// MEMBER API - /v1/me/* (requires 'member' role)
	// ===========================================
	me := v1.Group("/me")
	me.Use(middleware.VerifyRepFitToken(deps.Config.JWT.Secret))
	me.Use(middleware.AuthorizeRole(domain.RoleMember))

	mePlan := me.Group("/plan")
	mePlan.Get("/", planHandler.GetActive)
	mePlan.Post("/", planHandler.Create)
	mePlan.Get("/items", planHandler.ListItems)
	mePlan.Patch("/items/:id/complete", planHandler.CompleteItem)

	// Import is retry-safe: clients send X-Correlation-ID and replays of the
	// same import return the original response instead of inserting twice
	mePlan.Post("/import",
		middleware.IdempotencyMiddleware(deps.RedisClient, deps.Config.Server.IdempotencyTTL),
		importHandler.Import,
	)
	mePlan.Post("/import/preview", importHandler.Preview)

	// ===========================================
	// WORKOUTS & TEMPLATES API (Shared)
	// ===========================================
	// Public Read, Admin Write

	v1.Get("/workouts", workoutHandler.List)
	v1.Get("/workouts/:id", workoutHandler.Get)
	adminWorkouts := v1.Group("/workouts")
	adminWorkouts.Use(middleware.VerifyRepFitToken(deps.Config.JWT.Secret))
	adminWorkouts.Use(middleware.AuthorizeRole(domain.RoleAdmin))
	adminWorkouts.Post("/", workoutHandler.Create)
	adminWorkouts.Put("/:id", workoutHandler.Update)
	adminWorkouts.Delete("/:id", workoutHandler.Delete)

	v1.Get("/templates", templateHandler.List)
	v1.Get("/templates/:id", templateHandler.Get)
	adminTpl := v1.Group("/templates")
	adminTpl.Use(middleware.VerifyRepFitToken(deps.Config.JWT.Secret))
	adminTpl.Use(middleware.AuthorizeRole(domain.RoleAdmin))
	adminTpl.Post("/", templateHandler.Create)
	adminTpl.Put("/:id", templateHandler.Update)
	adminTpl.Delete("/:id", templateHandler.Delete)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
