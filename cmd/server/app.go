package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/platform/postgres"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// application holds the initialized dependency graph of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	taskStore     store.TaskStore
	categoryStore store.CategoryStore

	jwtService  auth.JWTService
	authService *service.AuthService
	taskService *service.TaskService
	userService *service.UserService

	validate *validator.Validate
}

// newApplication connects the database, applies migrations, and wires the
// stores, services, and handler dependencies.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db)
	taskStore := postgres.NewTaskStore(db)
	categoryStore := postgres.NewCategoryStore(db)

	hasher := auth.NewBcryptHasher()
	notifier := service.NewLogNotificationService(logger)

	app := &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		userStore:     userStore,
		taskStore:     taskStore,
		categoryStore: categoryStore,
		jwtService:    jwtService,
		authService: service.NewAuthService(
			userStore, taskStore, hasher, hasher, jwtService, notifier, db, logger),
		taskService: service.NewTaskService(taskStore, notifier, db, logger),
		userService: service.NewUserService(userStore, taskStore, hasher, db, logger),
		validate:    validator.New(),
	}

	if cfg.Server.SeedData {
		if err := app.seedData(context.Background(), hasher); err != nil {
			return nil, fmt.Errorf("failed to seed data: %w", err)
		}
	}

	return app, nil
}

// run starts the HTTP server and blocks until it shuts down.
func (app *application) run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}

// setupDatabase opens the connection pool and verifies connectivity.
func setupDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}
