package progress

import (
	"fmt"
	"sync"
	"time"
)

// Phase represents the current phase of a scan
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseScanning   Phase = "scanning"
	PhasePaused     Phase = "paused"
	PhaseCancelling Phase = "cancelling"
	PhaseComplete   Phase = "complete"
)

// Stats is a point-in-time view of a scan
type Stats struct {
	Phase       Phase
	CurrentPath string
	Processed   int
	Discovered  int
	Dirs        int
	Matched     int
	Errors      int
	StartTime   time.Time
}

// Percent returns Processed/Discovered in [0, 1]
func (s Stats) Percent() float64 {
	return Percent(s.Processed, s.Discovered)
}

// Percent returns the fraction of discovered files already processed. It is
// 0 until something has been discovered and never exceeds 1.
func Percent(processed, discovered int) float64 {
	if discovered <= 0 || processed <= 0 {
		return 0
	}
	if processed >= discovered {
		return 1
	}
	return float64(processed) / float64(discovered)
}

// Reporter provides thread-safe progress reporting
type Reporter struct {
	stats     Stats
	mu        sync.RWMutex
	listeners []chan Stats
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		stats:     Stats{Phase: PhaseIdle},
		listeners: make([]chan Stats, 0),
	}
}

// Subscribe returns a channel that receives progress updates. Slow
// subscribers miss updates rather than stalling the scan.
func (r *Reporter) Subscribe() <-chan Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Stats, 10)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Update replaces the current stats and notifies listeners
func (r *Reporter) Update(s Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats = s
	r.notify(s)
}

// SetPhase changes only the phase and notifies listeners
func (r *Reporter) SetPhase(p Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Phase = p
	r.notify(r.stats)
}

// Snapshot returns the current stats
func (r *Reporter) Snapshot() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// notify must be called with r.mu held, so Unsubscribe cannot close a
// channel mid-send. Sends never block.
func (r *Reporter) notify(s Stats) {
	for _, listener := range r.listeners {
		select {
		case listener <- s:
		default:
			// Skip if channel is full
		}
	}
}

// FormatScanProgress returns a human-readable progress line
func FormatScanProgress(s Stats) string {
	var elapsed time.Duration
	if !s.StartTime.IsZero() {
		elapsed = time.Since(s.StartTime)
	}

	switch s.Phase {
	case PhaseIdle:
		return "Initializing..."
	case PhaseScanning:
		return fmt.Sprintf("Scanning... %d/%d files (%.0f%%), %d matched [%s]",
			s.Processed,
			s.Discovered,
			s.Percent()*100,
			s.Matched,
			FormatDuration(elapsed))
	case PhasePaused:
		return fmt.Sprintf("Paused at %d/%d files, %d matched",
			s.Processed,
			s.Discovered,
			s.Matched)
	case PhaseCancelling:
		return fmt.Sprintf("Cancelling... %d files processed", s.Processed)
	case PhaseComplete:
		return fmt.Sprintf("Scan complete: %d matched of %d files in %s",
			s.Matched,
			s.Processed,
			FormatDuration(elapsed))
	default:
		return "Scanning..."
	}
}

// FormatBytes formats bytes in human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
