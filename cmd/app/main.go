package main

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/blogapi/internal/blogservice"
	"github.com/sushihentaime/blogapi/internal/common"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens := userservice.NewTokenService(userservice.TokenConfig{
		Secret: []byte(cfg.JWT.Secret),
		TTL:    cfg.JWT.ExpiresIn,
		Issuer: cfg.JWT.Issuer,
	})

	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Store {
	case storeMemory:
		logger.Warn("using the in-memory store, data is lost on restart")

		c := common.NewMemoryStore()
		app.userService = userservice.NewService(userservice.NewMemoryModel(c), tokens)
		app.blogService = blogservice.NewBlogService(blogservice.NewMemoryModel(c))
	default:
		db, err := openDB(cfg)
		if err != nil {
			logger.Error("failed to connect to the database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer common.CloseDB(db)

		logger.Info("database migrations applied", slog.String("source", cfg.MigrationsPath))

		app.userService = userservice.NewService(userservice.NewDBModel(db), tokens)
		app.blogService = blogservice.NewBlogService(blogservice.NewDBModel(db))
	}

	// Start the HTTP server
	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openDB connects to postgres and brings the schema up to date.
func openDB(cfg *Config) (*sql.DB, error) {
	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
	if err != nil {
		return nil, err
	}

	m, err := common.MigrateDB(cfg.MigrationsPath, common.PostgresURI(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name))
	if err != nil {
		db.Close()
		return nil, err
	}
	m.Close()

	return db, nil
}
