package worker

import (
	"context"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/logging"
)

type leadLister interface {
	List(ctx context.Context) ([]entity.Lead, error)
}

// GaugeFunc receives the number of leads per status on every tick.
type GaugeFunc func(status string, n int)

// LeadStatsWorker refreshes the per-status gauge and warns about leads that
// have been waiting for contact longer than the stale window.
type LeadStatsWorker struct {
	store        leadLister
	gauge        GaugeFunc
	logger       logging.Logger
	staleAfter   time.Duration
	tickInterval time.Duration
	now          func() time.Time
}

func NewLeadStatsWorker(store leadLister, gauge GaugeFunc, interval time.Duration, logger logging.Logger) *LeadStatsWorker {
	if logger == nil {
		logger = logging.Nop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &LeadStatsWorker{
		store:        store,
		gauge:        gauge,
		logger:       logger.With("component", "lead_stats_worker"),
		staleAfter:   48 * time.Hour,
		tickInterval: interval,
		now:          time.Now,
	}
}

func (w *LeadStatsWorker) Start(ctx context.Context) {
	w.logger.Info(ctx, "lead stats worker started", "interval", w.tickInterval.String())

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "lead stats worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// Stats is one pass over the store.
type Stats struct {
	ByStatus map[entity.Status]int
	Stale    []entity.Lead
}

func (w *LeadStatsWorker) refresh(ctx context.Context) Stats {
	leads, err := w.store.List(ctx)
	if err != nil {
		w.logger.Error(ctx, "list leads for stats", "error", err)
		return Stats{}
	}

	stats := w.collect(leads)

	if w.gauge != nil {
		for status, n := range stats.ByStatus {
			w.gauge(string(status), n)
		}
	}

	for _, l := range stats.Stale {
		w.logger.Warn(ctx, "lead pending for too long",
			"lead_id", l.ID,
			"name", l.FirstName+" "+l.LastName,
			"waiting", w.now().Sub(l.CreatedAt).Round(time.Hour).String())
	}
	if len(stats.Stale) > 0 {
		w.logger.Info(ctx, "stale pending leads", "count", len(stats.Stale))
	}

	return stats
}

func (w *LeadStatsWorker) collect(leads []entity.Lead) Stats {
	stats := Stats{ByStatus: map[entity.Status]int{
		entity.StatusPending:    0,
		entity.StatusReachedOut: 0,
	}}

	cutoff := w.now().Add(-w.staleAfter)
	for _, l := range leads {
		stats.ByStatus[l.Status]++
		if l.Status == entity.StatusPending && l.CreatedAt.Before(cutoff) {
			stats.Stale = append(stats.Stale, l)
		}
	}
	return stats
}
