package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"skystash/docs"
	"skystash/internal/auth"
	"skystash/internal/config"
	"skystash/internal/database"
	"skystash/internal/database/migration"
	handlers "skystash/internal/http/handler"
	"skystash/internal/http/middleware"
	"skystash/internal/logging"
	"skystash/internal/otel"
	"skystash/internal/repository/postgres"
	"skystash/internal/service"
	"skystash/internal/storage"
)

// @title SkyStash API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logging.NewStdout(cfg.Location(), cfg.LogLevel)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("tracing_init_failed", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	blobs, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	verifier, err := auth.NewVerifier(ctx, cfg.Auth, log)
	if err != nil {
		log.Fatal("failed to initialize identity verifier", zap.Error(err))
	}
	directory, err := auth.NewHTTPDirectory(cfg.Auth.AdminURL, cfg.Auth.AdminKey, nil)
	if err != nil {
		log.Fatal("failed to initialize identity directory", zap.Error(err))
	}

	nodeRepo := postgres.NewNodePostgres(db)
	starRepo := postgres.NewStarPostgres(db)
	svc := handlers.Services{
		Nodes:     service.NewNodeService(nodeRepo),
		Queries:   service.NewQueryService(nodeRepo, starRepo),
		Favorites: service.NewFavoriteService(nodeRepo, starRepo),
		Uploads:   service.NewUploadService(nodeRepo, blobs, cfg.Upload.SlotTTL, cfg.Upload.DownloadTTL),
		Sharing: service.NewSharingService(
			nodeRepo,
			postgres.NewSharePostgres(db),
			postgres.NewLinkPostgres(db),
			directory,
			blobs,
			cfg.Upload.DownloadTTL,
			log,
		),
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer, "/health", "/healthz")
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: cfg.CORSAllowCredentials(),
	}))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	// RequestID runs before Logger so every log line and error body carries the id
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, verifier, svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", zap.String("addr", addr), zap.String("auth_provider", cfg.Auth.Provider))
	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing_shutdown_failed", zap.Error(err))
	}
	log.Info("server_stopped")
}
