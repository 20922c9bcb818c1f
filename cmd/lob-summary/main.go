package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lob-summary/internal/api"
	"lob-summary/internal/api/handlers"
	"lob-summary/internal/models"
	"lob-summary/internal/repository"
	"lob-summary/internal/service"
	"lob-summary/pkg/auth"
	"lob-summary/pkg/config"
	"lob-summary/pkg/logger"
	"lob-summary/pkg/postgres"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title LOB Summary Generator API
// @version 1.0.0
// @description Generates Line of Business summaries from customer statements using a CSV knowledge base.

// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin access token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting LOB summary service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := service.SummaryOptions{
		DefaultTier:      models.Tier(cfg.Knowledge.DefaultTier),
		NormalizeText:    cfg.Knowledge.NormalizeText,
		MinClassifyChars: cfg.Knowledge.MinClassifyChars,
		VOCExampleLimit:  cfg.Knowledge.VOCExampleLimit,
		UploadDir:        cfg.Server.UploadsDir,
	}

	if cfg.Database.Enabled() {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
		opts.Archive = repository.NewSourceRepository(db, appLogger)
	}

	summaryService := service.NewSummaryService(opts, logger.Component("summary"))
	loadKnowledge(ctx, summaryService, cfg, appLogger)

	var watcher *service.KnowledgeWatcher
	if cfg.Knowledge.Watch {
		watcher, err = service.NewKnowledgeWatcher(cfg.Knowledge.CSVPath, summaryService, logger.Component("watcher"))
		if err == nil {
			err = watcher.Start(ctx)
		}
		if err != nil {
			appLogger.Warn("Knowledge watcher disabled", zap.Error(err))
			watcher = nil
		}
	}

	var jwtManager *auth.JWTManager
	if cfg.Auth.Enabled() {
		jwtManager = auth.NewJWTManager(cfg.Auth.SecretKey, cfg.Auth.Expiration)
	} else {
		appLogger.Warn("ADMIN_PASSWORD_HASH not set, uploads are unauthenticated")
	}
	authService := service.NewAuthService(cfg.Auth.AdminPasswordHash, auth.NewJWTManager(cfg.Auth.SecretKey, cfg.Auth.Expiration), appLogger)

	app := api.SetupRouter(api.Handlers{
		Summary:   handlers.NewSummaryHandler(summaryService, appLogger),
		Knowledge: handlers.NewKnowledgeHandler(summaryService, appLogger),
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Health: func(c *fiber.Ctx) error {
			info := summaryService.Info()
			return c.JSON(fiber.Map{
				"status":            "ok",
				"knowledge_base":    info.Status,
				"total_issue_types": info.TotalIssueTypes,
			})
		},
	}, jwtManager, cfg.Server, appLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server")
		if watcher != nil {
			watcher.Stop()
		}
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
	}
}

// loadKnowledge prefers the newest archived upload and falls back to the
// configured sheet. The service starts with an empty knowledge base when both
// fail.
func loadKnowledge(ctx context.Context, s *service.SummaryService, cfg *config.Config, appLogger *zap.Logger) {
	restored, err := s.RestoreLatest(ctx)
	if err != nil {
		appLogger.Warn("Failed to restore archived knowledge source", zap.Error(err))
	}
	if restored {
		return
	}

	report, err := s.Load(ctx, service.SourceFor(cfg.Knowledge.CSVPath))
	if err != nil {
		appLogger.Error("Knowledge base not loaded, serving empty", zap.String("path", cfg.Knowledge.CSVPath), zap.Error(err))
		return
	}
	appLogger.Info("Knowledge base loaded",
		zap.Int("rows", report.Rows),
		zap.Int("issue_types", report.Records),
		zap.Int("skipped", report.Skipped),
	)
}
