package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/case-report-service/internal/api/http"
	"github.com/spec-kit/case-report-service/internal/api/http/handlers"
	"github.com/spec-kit/case-report-service/internal/auth"
	"github.com/spec-kit/case-report-service/internal/classify"
	"github.com/spec-kit/case-report-service/internal/config"
	"github.com/spec-kit/case-report-service/internal/events"
	"github.com/spec-kit/case-report-service/internal/observability"
	"github.com/spec-kit/case-report-service/internal/persistence"
	"github.com/spec-kit/case-report-service/internal/reconcile"
	"github.com/spec-kit/case-report-service/internal/report"
	"github.com/spec-kit/case-report-service/internal/repository"
	"github.com/spec-kit/case-report-service/internal/service"
	"github.com/spec-kit/case-report-service/internal/session"
	"github.com/spec-kit/case-report-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	runRepo := repository.NewReportRunRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo: staffRepo,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	auditService := service.NewAuditService(dispatcher, runRepo, metrics, logger)
	worker.StartAuditWorker(auditService)

	sessions := session.NewStore(redis.Client, cfg.Session.TTL())

	classifier := classify.New(classifierOptions(cfg.Classifier))
	reconciler := reconcile.New(reconcilerOptions(cfg.Reconciler))
	pipeline := report.NewPipeline(classifier, reconciler, cfg.Report.ClosedStatuses, nil)

	reportService := report.NewService(report.Dependencies{
		Sessions:   sessions,
		Pipeline:   pipeline,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Staff:          handlers.NewStaffHandler(authService),
		Sessions:       handlers.NewSessionsHandler(sessions, dispatcher, logger),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func classifierOptions(cfg config.ClassifierConfig) classify.Options {
	opts := classify.DefaultOptions()
	if len(cfg.Keywords) > 0 {
		opts.Keywords = cfg.Keywords
	}
	if cfg.WindowChars > 0 {
		opts.Window = cfg.WindowChars
	}
	if cfg.MinDigits > 0 {
		opts.MinDigits = cfg.MinDigits
	}
	opts.Pattern = cfg.Pattern
	if cfg.SRRangeMin > 0 || cfg.SRRangeMax > 0 {
		opts.ServiceRequestRange = classify.Range{Min: cfg.SRRangeMin, Max: cfg.SRRangeMax}
	}
	return opts
}

func reconcilerOptions(cfg config.ReconcilerConfig) reconcile.Options {
	opts := reconcile.DefaultOptions()
	if len(cfg.IncidentIDColumns) > 0 {
		opts.IncidentIDColumns = cfg.IncidentIDColumns
	}
	if len(cfg.IncidentUpdatedColumns) > 0 {
		opts.IncidentUpdatedColumns = cfg.IncidentUpdatedColumns
	}
	return opts
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
