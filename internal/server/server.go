package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/redhat-appstudio/statuspage-mirror/apis/common"
	"github.com/redhat-appstudio/statuspage-mirror/internal/config"
	"github.com/redhat-appstudio/statuspage-mirror/internal/handlers"
	"github.com/redhat-appstudio/statuspage-mirror/internal/version"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/integrations"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/monitors/statuspage"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Server represents the HTTP server instance with all its components.
// It owns the Fiber application, the incident store and the status page monitor.
type Server struct {
	// app is the Fiber HTTP application instance
	app *fiber.App

	// cfg contains the server configuration
	cfg *config.Config

	// store persists incident records
	store storage.Store

	// monitor polls the status page and mirrors incidents
	monitor *statuspage.Monitor
}

// New creates and initializes a new Server instance with the provided configuration.
// It opens the incident store, builds the Discord sink and the status page monitor,
// and sets up the Fiber application with middleware and routes.
// The configuration is expected to be validated already.
func New(cfg *config.Config) (*Server, error) {
	// Initialize logger first
	if err := logger.InitFromConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := storage.NewManager(storageConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Infof("Incident store initialized - backend: %s", cfg.Storage.Backend)

	sink, err := integrations.NewDiscordIntegration(integrations.DiscordConfig{
		WebhookID:      cfg.Discord.WebhookID,
		WebhookToken:   cfg.Discord.WebhookToken,
		APIURL:         cfg.Discord.APIURL,
		Username:       cfg.Discord.Username,
		AvatarURL:      cfg.Discord.AvatarURL,
		TimeoutSeconds: cfg.Discord.TimeoutSeconds,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize discord integration: %w", err)
	}
	logger.Infof("Discord integration enabled - webhook: %s", cfg.Discord.WebhookID)

	client := statuspage.NewClient(cfg.StatusPage.APIURL, time.Duration(cfg.StatusPage.TimeoutSeconds)*time.Second)
	monitor := statuspage.NewMonitor(statuspage.NewIncidents(client, store, sink), cfg.StatusPage.Interval)
	if monitor == nil {
		_ = store.Close()
		return nil, errors.New("status page monitor is nil after initialization")
	}
	logger.Infof("Status page monitoring enabled - API URL: %s, Check interval: %v", cfg.StatusPage.APIURL, cfg.StatusPage.Interval)

	app := newApp(store)

	return &Server{
		app:     app,
		cfg:     cfg,
		store:   store,
		monitor: monitor,
	}, nil
}

// newApp creates the Fiber application with the faster JSON codec and all routes.
func newApp(store storage.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Status Page Mirror " + version.GetVersion(),
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(common.NewErrorResponse(err.Error()))
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	handlers.SetupRoutes(app, store)

	return app
}

func storageConfig(cfg *config.Config) storage.StorageConfig {
	return storage.StorageConfig{
		Backend: cfg.Storage.Backend,
		SQLite: storage.SQLiteConfig{
			Path: cfg.Storage.SQLite.Path,
		},
		Redis: storage.RedisConfig{
			Address:   cfg.Storage.Redis.Address,
			Password:  cfg.Storage.Redis.Password,
			Database:  cfg.Storage.Redis.Database,
			KeyPrefix: cfg.Storage.Redis.KeyPrefix,
		},
	}
}

// Start launches the monitor in the background and then serves HTTP.
// It blocks until the listener stops and returns its error, if any.
func (s *Server) Start() error {
	logger.Info("Starting status page incident monitoring thread...")
	go s.monitor.Start()

	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown stops the monitor and waits for in-flight reconciliation, then
// stops the HTTP server and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.monitor.Stop()
	logger.Info("Status page monitor stopped")

	var errs []error
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}

	return errors.Join(errs...)
}

// App returns the Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
