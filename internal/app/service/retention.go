package service

import (
	"context"
	"time"

	apprepository "github.com/linktrove/linktrove/internal/app/repository"
	"go.uber.org/zap"
)

// EventRetentionPruner periodically deletes view and click event rows older
// than the configured retention window. Article view counters are untouched;
// they are lifetime totals.
type EventRetentionPruner struct {
	logger    *zap.Logger
	repo      apprepository.EventRepository
	retention time.Duration
	interval  time.Duration
	stopChan  chan struct{}
}

// NewEventRetentionPruner creates a pruner keeping events for the given
// retention duration.
func NewEventRetentionPruner(logger *zap.Logger, repo apprepository.EventRepository, retention time.Duration) *EventRetentionPruner {
	return &EventRetentionPruner{
		logger:    logger,
		repo:      repo,
		retention: retention,
		interval:  time.Hour,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the periodic pruning.
func (p *EventRetentionPruner) Start() {
	go p.run()
}

// Stop stops the periodic pruning.
func (p *EventRetentionPruner) Stop() {
	close(p.stopChan)
}

func (p *EventRetentionPruner) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.prune()
		case <-p.stopChan:
			p.logger.Info("event retention pruner stopped")
			return
		}
	}
}

func (p *EventRetentionPruner) prune() {
	ctx := context.Background()
	cutoff := time.Now().Add(-p.retention)

	removed, err := p.repo.PruneOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("failed to prune engagement events", zap.Error(err))
		return
	}

	if removed > 0 {
		p.logger.Info("pruned engagement events",
			zap.Int64("count", removed),
			zap.Time("cutoff", cutoff),
		)
	}
}
