package scanner

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultPollInterval bounds how long a paused walker takes to notice a
// resume.
const DefaultPollInterval = 100 * time.Millisecond

// PauseGate is the pause flag shared by every walker of a scan. Walkers poll
// it between files; cancellation is carried separately by the context.
type PauseGate struct {
	paused   atomic.Bool
	interval time.Duration
}

// NewPauseGate creates an open gate polling at interval. A non-positive
// interval uses DefaultPollInterval.
func NewPauseGate(interval time.Duration) *PauseGate {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PauseGate{interval: interval}
}

// Pause closes the gate
func (g *PauseGate) Pause() { g.paused.Store(true) }

// Resume opens the gate
func (g *PauseGate) Resume() { g.paused.Store(false) }

// Paused reports whether the gate is closed
func (g *PauseGate) Paused() bool { return g.paused.Load() }

// Wait blocks while the gate is closed. It returns ctx.Err() as soon as ctx
// is cancelled, paused or not.
func (g *PauseGate) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !g.paused.Load() {
		return nil
	}

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for g.paused.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return ctx.Err()
}
