package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"recipebox/internal/config"
	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/repositories"
	"recipebox/internal/services"
	"recipebox/pkg/rabbitmq"
)

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber       *fiber.App
	DB          *gorm.DB
	MQ          *rabbitmq.Client
	AuthService *services.AuthService
}

// NewApp opens the database, migrates it, connects to RabbitMQ when
// configured and registers every route.
func NewApp(cfg config.Config) (*App, error) {
	db, err := repositories.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, err
	}

	var (
		mqClient  *rabbitmq.Client
		publisher services.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return nil, err
		}
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL is not set. Event publication is disabled.")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	txManager := repositories.NewGORMTxManager(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, publisher, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	accountService := services.NewAccountService(userRepo, txManager, publisher, cfg.BcryptCost)
	recipeService := services.NewRecipeService(recipeRepo, userRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")

	// Public routes must be registered before the auth middleware.
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterSessionRoutes(protected)
	accountHandler.RegisterRoutes(protected)
	recipeHandler.RegisterRoutes(protected)

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status, code = "degraded", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": cfg.DatabaseDriver,
			"events":   mqClient != nil,
		})
	})

	return &App{
		Fiber:       app,
		DB:          db,
		MQ:          mqClient,
		AuthService: authService,
	}, nil
}

// Close shuts the server down and releases the broker and database.
func (a *App) Close() error {
	var errs []error
	if err := a.Fiber.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if a.MQ != nil {
		if err := a.MQ.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}

func main() {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if app.MQ != nil {
		if err := app.MQ.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
