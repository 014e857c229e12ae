package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	scanprogress "github.com/fenilsonani/wordguard/internal/progress"
	"github.com/fenilsonani/wordguard/internal/ui/components"
	"github.com/fenilsonani/wordguard/internal/ui/styles"
	"github.com/fenilsonani/wordguard/internal/ui/utils"
)

// maxLogLines bounds the results log kept in memory
const maxLogLines = 1000

type logLine struct {
	text  string
	isErr bool
}

// ScanViewModel shows a running scan: a spinner, a progress bar, and a log
// of matched files and errors. Keys: p pauses or resumes, c cancels, q quits
// once the scan is done.
type ScanViewModel struct {
	controls  Controls
	start     func() error
	outputDir string

	spinner   spinner.Model
	bar       progress.Model
	statusBar *components.StatusBar

	processed int
	found     int
	matched   int
	errors    int
	log       []logLine

	paused     bool
	cancelling bool
	done       bool
	quitting   bool
	total      int
	err        error
	startTime  time.Time
	elapsed    time.Duration
	summary    *SummaryViewModel

	width  int
	height int
}

// NewScanViewModel creates a scan view. start is run from Init to launch
// the scan once the program is receiving messages.
func NewScanViewModel(controls Controls, start func() error, outputDir string) *ScanViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return &ScanViewModel{
		controls:  controls,
		start:     start,
		outputDir: outputDir,
		spinner:   s,
		bar:       progress.New(progress.WithDefaultGradient()),
		statusBar: components.NewStatusBar(),
		startTime: time.Now(),
		width:     utils.MinTerminalWidth,
		height:    utils.MinTerminalHeight,
	}
}

// Init starts the spinner and the scan
func (m *ScanViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.startScan,
	)
}

func (m *ScanViewModel) startScan() tea.Msg {
	if m.start == nil {
		return nil
	}
	if err := m.start(); err != nil {
		return startFailedMsg{err: err}
	}
	return nil
}

// Update handles messages
func (m *ScanViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = msg.Width - 4
		if m.bar.Width > 80 {
			m.bar.Width = 80
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.processed = msg.Processed
		m.found = msg.Found
		return m, nil

	case MatchMsg:
		m.matched++
		m.appendLog(logLine{text: fmt.Sprintf("%s (%d words)", msg.Path, msg.Count)})
		return m, nil

	case ErrorMsg:
		m.errors++
		m.appendLog(logLine{text: msg.Message, isErr: true})
		return m, nil

	case CompletedMsg:
		m.done = true
		m.total = msg.Total
		m.elapsed = time.Since(m.startTime)
		if report, ok := m.controls.Report(); ok {
			m.summary = NewSummaryViewModel(report, m.outputDir)
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case startFailedMsg:
		m.err = msg.err
		m.done = true
		return m, nil
	}

	return m, nil
}

func (m *ScanViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p", " ":
		if m.done || m.cancelling {
			return m, nil
		}
		if err := m.controls.TogglePause(); err == nil {
			m.paused = !m.paused
		}

	case "c":
		if m.done || m.cancelling {
			return m, nil
		}
		if err := m.controls.Cancel(); err == nil {
			m.cancelling = true
			m.paused = false
		}

	case "q", "enter":
		if m.done {
			return m, tea.Quit
		}

	case "ctrl+c":
		if m.done {
			return m, tea.Quit
		}
		// cancel and leave as soon as the partial report is written
		m.quitting = true
		if !m.cancelling {
			if err := m.controls.Cancel(); err == nil {
				m.cancelling = true
			}
		}
	}

	return m, nil
}

func (m *ScanViewModel) appendLog(l logLine) {
	m.log = append(m.log, l)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// Err returns the error that kept the scan from starting, if any
func (m *ScanViewModel) Err() error { return m.err }

// State returns the name of the state shown in the status bar
func (m *ScanViewModel) State() string {
	switch {
	case m.err != nil:
		return "failed"
	case m.done && m.cancelling:
		return "cancelled"
	case m.done:
		return "completed"
	case m.cancelling:
		return "cancelling"
	case m.paused:
		return "paused"
	default:
		return "running"
	}
}

// View renders the scan view
func (m *ScanViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("🔍 Scanning for forbidden words"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Press q to exit"))
		return b.String()
	}

	if utils.IsTerminalTooSmall(m.width, m.height) {
		b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("Terminal too small (%dx%d), need %dx%d",
			m.width, m.height, utils.MinTerminalWidth, utils.MinTerminalHeight)))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%s: %d/%d files, %d matched, %d errors",
			m.State(), m.processed, m.found, m.matched, m.errors)))
		return b.String()
	}

	switch {
	case m.done:
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ Scan %s: %d files matched", m.State(), m.total)))
		b.WriteString(" ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", scanprogress.FormatDuration(m.elapsed))))
	case m.paused:
		b.WriteString(styles.WarningStyle.Render("⏸ Paused"))
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.StateBadge(m.State()))
		b.WriteString(" ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
	}
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(scanprogress.Percent(m.processed, m.found)))
	b.WriteString("\n\n")

	if m.summary != nil {
		b.WriteString(m.summary.View())
		b.WriteString("\n")
	}

	b.WriteString(styles.SubtitleStyle.Render("Results:"))
	b.WriteString("\n")
	b.WriteString(m.renderLog())
	b.WriteString("\n")

	m.statusBar.SetState(m.State())
	m.statusBar.SetCounts(m.processed, m.found, m.matched, m.errors)
	if m.done {
		m.statusBar.SetShortcuts(components.Shortcut{Key: "q", Desc: "quit"})
	} else {
		m.statusBar.SetShortcuts(
			components.Shortcut{Key: "p", Desc: "pause/resume"},
			components.Shortcut{Key: "c", Desc: "cancel"},
		)
	}
	b.WriteString(m.statusBar.Render(m.width))

	return b.String()
}

// renderLog shows the newest lines that fit
func (m *ScanViewModel) renderLog() string {
	if len(m.log) == 0 {
		return styles.DimStyle.Render("  no matches yet") + "\n"
	}

	pageSize := utils.CalculatePageSize(m.height)
	if m.summary != nil {
		pageSize -= m.summary.Lines()
		if pageSize < 3 {
			pageSize = 3
		}
	}

	start := 0
	if len(m.log) > pageSize {
		start = len(m.log) - pageSize
	}

	var b strings.Builder
	for _, l := range m.log[start:] {
		if l.isErr {
			b.WriteString("  " + styles.ErrorStyle.Render(utils.TruncateString(l.text, m.width-4)))
		} else {
			b.WriteString("  " + styles.FilePathStyle.Render(utils.TruncatePath(l.text, m.width-4)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
