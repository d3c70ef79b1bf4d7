package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/remaimber-it/quizcore/internal/api"
	"github.com/remaimber-it/quizcore/internal/catalog"
	"github.com/remaimber-it/quizcore/internal/evaluator"
	"github.com/remaimber-it/quizcore/internal/infrastructure/config"
	"github.com/remaimber-it/quizcore/internal/metrics"
	"github.com/remaimber-it/quizcore/internal/service"
	"github.com/remaimber-it/quizcore/internal/store"

	_ "github.com/remaimber-it/quizcore/docs" // swagger docs
)

// @title           Quizcore API
// @version         1.0
// @description     Local-first quiz engine: subject catalogs, staged practice sessions, answer statistics and weighted review.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.ResetContentOnStart {
		if err := db.Initialize(context.Background()); err != nil {
			logger.Error("failed to reset content", "error", err)
			os.Exit(1)
		}
		logger.Info("content tables reset")
	}

	m := metrics.New()
	progress := service.NewProgressTracker(db, logger)
	catalogSync := service.NewCatalogSync(cfg.CatalogPath,
		catalog.NewLoader(cfg.CatalogWorkers, logger),
		catalog.NewSynchronizer(db, logger, cfg.SyncPurgeHistory),
		m, logger)

	// a failed boot sync leaves the store as it was; the server still starts
	if catalogSync.Enabled() {
		if _, err := catalogSync.Run(context.Background()); err != nil {
			logger.Warn("boot catalog sync failed", "error", err)
		}
	}

	handler := api.NewHandler(api.Services{
		Library:     service.NewLibrary(db, logger),
		Stats:       service.NewStatsService(db, nil, logger),
		Progress:    progress,
		Practice:    service.NewPractice(db, progress, evaluator.KeyEvaluator{}, m, logger, cfg.StageSize),
		CatalogSync: catalogSync,
	}, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	mux.Handle("GET /metrics", m.Handler())

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → Instrument → CORS → mux ─────────
	wrapped := api.Logging(logger)(api.Instrument(m)(api.CORS(mux)))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           wrapped,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "db", cfg.DBPath, "catalog", cfg.CatalogPath)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
