package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/remaimber-it/quizcore/internal/catalog"
	"github.com/remaimber-it/quizcore/internal/metrics"
)

// ErrCatalogDisabled is returned by CatalogSync.Run when no manifest is configured.
var ErrCatalogDisabled = errors.New("catalog sync disabled: no manifest configured")

// CatalogSync loads the manifest and reconciles the store with it. Runs
// are serialized.
type CatalogSync struct {
	path    string
	loader  *catalog.Loader
	syncer  *catalog.Synchronizer
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu sync.Mutex
}

func NewCatalogSync(path string, loader *catalog.Loader, syncer *catalog.Synchronizer, m *metrics.Metrics, logger *slog.Logger) *CatalogSync {
	return &CatalogSync{
		path:    path,
		loader:  loader,
		syncer:  syncer,
		metrics: m,
		logger:  logger,
	}
}

func (cs *CatalogSync) Enabled() bool { return cs.path != "" }

func (cs *CatalogSync) Run(ctx context.Context) (catalog.Report, error) {
	if !cs.Enabled() {
		return catalog.Report{}, ErrCatalogDisabled
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cat, err := cs.loader.Load(ctx, cs.path)
	if err != nil {
		cs.metrics.SyncFinished(0, 0, 0, 0, err)
		cs.logger.Error("catalog load failed", "path", cs.path, "error", err)
		return catalog.Report{}, err
	}

	report, err := cs.syncer.Sync(ctx, cat)
	cs.metrics.SyncFinished(len(report.Added), len(report.Removed), len(report.Unchanged), report.Skipped, err)
	if err != nil {
		cs.logger.Error("catalog sync failed", "path", cs.path, "error", err)
		return report, err
	}
	return report, nil
}
