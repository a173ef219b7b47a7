// Package autosave coalesces bursts of dashboard edits into single saves.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// DefaultDelay is the quiet period after the last change before saving.
const DefaultDelay = 500 * time.Millisecond

// Saver persists the full state of one dashboard.
type Saver interface {
	Save(ctx context.Context, dashboardID string, s domain.DashboardState) error
}

// Debouncer saves the most recent state of a dashboard once no new change
// has arrived for the configured delay. A newer state always replaces a
// pending one.
type Debouncer struct {
	saver       Saver
	dashboardID string
	delay       time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	pending *domain.DashboardState
	timer   *time.Timer
	gen     uint64
	closed  bool

	// saveMu serializes saves. savedGen is the generation of the newest
	// state written so far; an older snapshot arriving late is skipped.
	saveMu   sync.Mutex
	savedGen uint64
}

func New(saver Saver, dashboardID string, delay time.Duration, logger *slog.Logger) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Debouncer{
		saver:       saver,
		dashboardID: dashboardID,
		delay:       delay,
		logger:      logger.With("component", "autosave", "dashboard_id", dashboardID),
	}
}

// Notify records s as the latest state and restarts the quiet period.
// Notifications after Close are ignored.
func (d *Debouncer) Notify(s domain.DashboardState) {
	snapshot := s.Clone()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = &snapshot
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending reports whether a state is waiting to be saved.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	s := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if err := d.save(context.Background(), *s, gen); err != nil {
		d.logger.Error("autosave failed", "error", err)
	}
}

// Flush saves the pending state now, if there is one.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	s := d.pending
	gen := d.gen
	d.pending = nil
	d.gen++
	d.mu.Unlock()

	if s == nil {
		return nil
	}
	return d.save(ctx, *s, gen)
}

// Close flushes the pending state and stops accepting notifications.
func (d *Debouncer) Close(ctx context.Context) error {
	err := d.Flush(ctx)
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return err
}

// Discard drops the pending state without saving and stops accepting
// notifications.
func (d *Debouncer) Discard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.gen++
	d.closed = true
}

func (d *Debouncer) save(ctx context.Context, s domain.DashboardState, gen uint64) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()
	if gen < d.savedGen {
		d.logger.Debug("skipping stale save", "gen", gen, "saved_gen", d.savedGen)
		return nil
	}

	start := time.Now()
	if err := d.saver.Save(ctx, d.dashboardID, s); err != nil {
		return err
	}
	d.savedGen = gen
	d.logger.Debug("dashboard saved",
		"activities", len(s.Activities),
		"custom_statuses", len(s.CustomStatuses),
		"custom_risks", len(s.CustomRisks),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
