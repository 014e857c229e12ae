// Package controller runs scans: it owns the pause and cancel state machine,
// fans walkers out across roots and turns their events into callbacks, a
// word tally and a report.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fenilsonani/wordguard/internal/output"
	"github.com/fenilsonani/wordguard/internal/progress"
	"github.com/fenilsonani/wordguard/internal/redact"
	"github.com/fenilsonani/wordguard/internal/reporter"
	"github.com/fenilsonani/wordguard/internal/scanner"
	"github.com/fenilsonani/wordguard/internal/tally"
	"github.com/fenilsonani/wordguard/internal/words"
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// controller's current state
	ErrInvalidState = errors.New("invalid state")
	// ErrNoWords is returned by Start for an empty word set
	ErrNoWords = fmt.Errorf("%w: no forbidden words given", ErrInvalidState)
	// ErrNoRoots is returned by Start when there is nothing to scan
	ErrNoRoots = fmt.Errorf("%w: no roots to scan", ErrInvalidState)
)

// State is the lifecycle state of a Controller
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateCancelling
	StateCompleted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCancelling:
		return "cancelling"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s State) phase() progress.Phase {
	switch s {
	case StateRunning:
		return progress.PhaseScanning
	case StatePaused:
		return progress.PhasePaused
	case StateCancelling:
		return progress.PhaseCancelling
	case StateCompleted:
		return progress.PhaseComplete
	default:
		return progress.PhaseIdle
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers bounds how many roots are walked at once
func WithWorkers(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithWalkerOptions passes options to every walker
func WithWalkerOptions(opts ...scanner.Option) Option {
	return func(c *Controller) {
		c.walkerOpts = append(c.walkerOpts, opts...)
	}
}

// WithProgressReporter publishes progress through r
func WithProgressReporter(r *progress.Reporter) Option {
	return func(c *Controller) {
		if r != nil {
			c.progress = r
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPollInterval sets how often a paused walker checks for resume
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.pollInterval = d
	}
}

// Controller runs one scan at a time. Start returns at once; the scan runs
// in the background and reports through Callbacks.
type Controller struct {
	store        *output.Store
	cb           Callbacks
	logger       *zap.Logger
	workers      int
	walkerOpts   []scanner.Option
	progress     *progress.Reporter
	now          func() time.Time
	pollInterval time.Duration

	tally *tally.Tally

	mu     sync.Mutex
	state  State
	gate   *scanner.PauseGate
	cancel context.CancelFunc
	done   chan struct{}
	report *reporter.Report
}

// New creates an idle Controller writing into store. cb may be nil.
func New(store *output.Store, cb Callbacks, opts ...Option) *Controller {
	if cb == nil {
		cb = CallbackFuncs{}
	}

	c := &Controller{
		store:    store,
		cb:       cb,
		logger:   zap.NewNop(),
		workers:  runtime.GOMAXPROCS(0),
		progress: progress.NewReporter(),
		now:      time.Now,
		tally:    tally.New(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins scanning roots for the words in set. It is allowed only when
// the controller is idle or a previous scan has completed.
func (c *Controller) Start(roots []string, set words.Set) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle && c.state != StateCompleted {
		return fmt.Errorf("%w: cannot start while %s", ErrInvalidState, c.state)
	}
	if set.Empty() {
		return ErrNoWords
	}
	if len(roots) == 0 {
		return ErrNoRoots
	}

	if err := c.store.Prepare(); err != nil {
		return err
	}

	c.tally.Reset()
	c.report = nil
	c.gate = scanner.NewPauseGate(c.pollInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	c.state = StateRunning

	id := uuid.New()
	started := c.now()
	c.progress.Update(progress.Stats{Phase: progress.PhaseScanning, StartTime: started})

	c.logger.Info("scan started",
		zap.String("id", id.String()),
		zap.Strings("roots", roots),
		zap.Int("words", set.Len()),
		zap.String("output", c.store.Dir()))

	roots = append([]string(nil), roots...)
	go c.run(ctx, cancel, id, started, roots, set, c.gate, c.done)

	return nil
}

// Pause stops walkers before their next file
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning && c.state != StatePaused {
		return fmt.Errorf("%w: cannot pause while %s", ErrInvalidState, c.state)
	}

	c.gate.Pause()
	c.state = StatePaused
	c.progress.SetPhase(progress.PhasePaused)
	return nil
}

// Resume lets paused walkers continue
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning && c.state != StatePaused {
		return fmt.Errorf("%w: cannot resume while %s", ErrInvalidState, c.state)
	}

	c.gate.Resume()
	c.state = StateRunning
	c.progress.SetPhase(progress.PhaseScanning)
	return nil
}

// Cancel asks every walker to stop. The scan still completes with a report
// covering the files processed so far. Cancel does not wait, so it is safe
// to call from a callback.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning && c.state != StatePaused {
		return fmt.Errorf("%w: cannot cancel while %s", ErrInvalidState, c.state)
	}

	c.cancel()
	c.state = StateCancelling
	c.progress.SetPhase(progress.PhaseCancelling)
	return nil
}

// TogglePause pauses a running scan or resumes a paused one
func (c *Controller) TogglePause() error {
	if c.State() == StatePaused {
		return c.Resume()
	}
	return c.Pause()
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns the latest progress snapshot
func (c *Controller) Progress() progress.Stats {
	return c.progress.Snapshot()
}

// Report returns the report of the last completed scan
func (c *Controller) Report() (*reporter.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report, c.report != nil
}

// Wait blocks until the current scan has completed, or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run walks every root and completes the scan.
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, id uuid.UUID, started time.Time,
	roots []string, set words.Set, gate *scanner.PauseGate, done chan struct{}) {
	defer close(done)
	defer cancel()

	opts := []scanner.Option{
		scanner.WithLogger(c.logger),
		scanner.WithSkipDirs(c.store.Dir()),
	}
	walker := scanner.NewWalker(redact.New(set), c.store, append(opts, c.walkerOpts...)...)

	events := make(chan scanner.Event)
	stats := progress.Stats{Phase: progress.PhaseScanning, StartTime: started}

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		c.collect(events, &stats)
	}()

	var g errgroup.Group
	g.SetLimit(c.workers)
	for _, root := range roots {
		if ctx.Err() != nil {
			break
		}
		root := root
		g.Go(func() error {
			return walker.Walk(ctx, root, gate, func(e scanner.Event) {
				events <- e
			})
		})
	}
	walkErr := g.Wait()
	close(events)
	<-collected

	cancelled := ctx.Err() != nil
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		c.logger.Error("walk failed", zap.Error(walkErr))
	}

	finished := c.now()
	report := reporter.Build(id, stats, c.tally.Snapshot(tally.TopN), cancelled, finished)

	path, err := c.store.WriteReport(func(w io.Writer) error {
		return reporter.New(w, reporter.FormatText).Write(report)
	})
	if err != nil {
		stats.Errors++
		report.Errors = stats.Errors
		c.logger.Error("report not written", zap.Error(err))
		c.cb.OnError("Error: " + err.Error())
	} else {
		c.logger.Debug("report written", zap.String("path", path))
	}

	stats.Phase = progress.PhaseComplete
	c.progress.Update(stats)

	c.mu.Lock()
	c.state = StateCompleted
	c.report = report
	c.mu.Unlock()

	c.logger.Info("scan completed",
		zap.String("id", id.String()),
		zap.Bool("cancelled", cancelled),
		zap.Int("processed", stats.Processed),
		zap.Int("matched", stats.Matched),
		zap.Int("errors", stats.Errors),
		zap.Duration("duration", report.Duration))

	c.cb.OnCompleted(stats.Matched)
}

// collect is the only consumer of walker events. It owns stats and is the
// only writer of the tally while a scan runs.
func (c *Controller) collect(events <-chan scanner.Event, stats *progress.Stats) {
	for e := range events {
		switch e.Kind {
		case scanner.EventProgress:
			stats.Processed += e.Processed
			stats.Discovered += e.Discovered
			stats.Dirs += e.Dirs
			stats.CurrentPath = e.Path
			c.publish(stats)
			c.cb.OnProgress(stats.Processed, stats.Discovered)

		case scanner.EventMatch:
			stats.Matched++
			for _, m := range e.Matches {
				c.tally.Increment(m.Word)
			}
			c.publish(stats)
			c.cb.OnFileMatched(e.Path, e.FileMatch().MatchCount())

		case scanner.EventError:
			stats.Errors++
			c.publish(stats)
			c.logger.Warn("scan error", zap.Error(e.Err))
			c.cb.OnError(e.Err.UserMessage())
		}
	}
}

func (c *Controller) publish(stats *progress.Stats) {
	stats.Phase = c.State().phase()
	c.progress.Update(*stats)
}
