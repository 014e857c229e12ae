package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/fenilsonani/wordguard/internal/progress"
	"github.com/fenilsonani/wordguard/internal/ui/utils"
)

// LiveProgress prints scan results line by line and, on a terminal, keeps a
// single self-updating status line below them.
type LiveProgress struct {
	mu        sync.Mutex
	out       io.Writer
	tty       bool
	termWidth int
	throttle  rate.Sometimes
	startTime time.Time
	quiet     bool

	processed int
	found     int
	matched   int
	errors    int
	lineShown bool
}

// NewLiveProgress creates a live display on f. The status line is only drawn
// when f is a terminal.
func NewLiveProgress(f *os.File) *LiveProgress {
	tty := term.IsTerminal(int(f.Fd()))
	width := 80
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		width = w
	}
	return newLiveProgress(f, tty, width)
}

func newLiveProgress(out io.Writer, tty bool, width int) *LiveProgress {
	return &LiveProgress{
		out:       out,
		tty:       tty,
		termWidth: width,
		// Throttle updates to avoid flickering (max 10 updates per second)
		throttle:  rate.Sometimes{Interval: 100 * time.Millisecond},
		startTime: time.Now(),
	}
}

// SetQuiet suppresses the per-file lines; errors are still printed
func (lp *LiveProgress) SetQuiet(quiet bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	lp.quiet = quiet
}

func (lp *LiveProgress) OnProgress(filesProcessed, filesFound int) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.processed = filesProcessed
	lp.found = filesFound

	if lp.tty {
		lp.throttle.Do(lp.render)
	}
}

func (lp *LiveProgress) OnFileMatched(path string, matchCount int) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.matched++
	if !lp.quiet {
		lp.println(fmt.Sprintf("Matched: %s (%d words)", path, matchCount))
	}
}

func (lp *LiveProgress) OnError(message string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.errors++
	lp.println(message)
}

func (lp *LiveProgress) OnCompleted(totalMatched int) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.clearLine()
	fmt.Fprintf(lp.out, "Scan finished: %d files matched, %d processed, %d errors [%s]\n",
		totalMatched, lp.processed, lp.errors, progress.FormatDuration(time.Since(lp.startTime)))
}

// println writes a result line above the status line
func (lp *LiveProgress) println(line string) {
	lp.clearLine()
	fmt.Fprintln(lp.out, line)
	if lp.tty {
		lp.render()
	}
}

// render draws the status line. Caller holds lp.mu.
func (lp *LiveProgress) render() {
	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinIdx := int(time.Now().UnixMilli()/100) % len(spinner)

	line := fmt.Sprintf("%s %d/%d files (%.0f%%) | %d matched | %s",
		spinner[spinIdx],
		lp.processed,
		lp.found,
		progress.Percent(lp.processed, lp.found)*100,
		lp.matched,
		progress.FormatDuration(time.Since(lp.startTime)))

	fmt.Fprintf(lp.out, "\r\033[K%s", utils.TruncateString(line, lp.termWidth-1))
	lp.lineShown = true
}

func (lp *LiveProgress) clearLine() {
	if lp.lineShown {
		fmt.Fprint(lp.out, "\r\033[K")
		lp.lineShown = false
	}
}
