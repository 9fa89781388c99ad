package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/config"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/persistence"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/service"
	"github.com/spec-kit/complaint-desk/internal/session"
	"github.com/spec-kit/complaint-desk/internal/web"
	"github.com/spec-kit/complaint-desk/internal/web/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
	if err != nil {
		logger.Fatal("failed to open sqlite store", zap.Error(err))
	}
	defer store.Close()

	if cfg.SQLite.RunSchemaInit {
		if err := persistence.InitSchema(ctx, store.Handle(), logger); err != nil {
			logger.Fatal("failed to init schema", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	sessionStore := session.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		sessionStore = session.NewRedisStore(redis.Client)
	}
	sessions := session.NewManager(cfg.Session, sessionStore, logger)

	db := store.Handle()
	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	accountService := service.NewAccountService(userRepo)
	complaintService := service.NewComplaintService(complaintRepo, responseRepo)

	engine, err := web.NewEngine()
	if err != nil {
		logger.Fatal("failed to load views", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
	})

	metrics := observability.NewMetrics()
	web.RegisterMiddlewares(app, logger, metrics, sessions)

	web.RegisterRoutes(app, web.RouteConfig{
		Accounts:   handlers.NewAccountsHandler(accountService, sessions),
		Complaints: handlers.NewComplaintsHandler(complaintService, sessions),
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redis),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
