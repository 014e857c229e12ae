package ui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/wordguard/internal/ui/models"
)

// ProgramCallbacks forwards scan callbacks into a bubbletea program as
// messages, so the model only ever changes on the program's own goroutine.
type ProgramCallbacks struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach sets the program that receives the messages
func (c *ProgramCallbacks) Attach(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.p = p
}

func (c *ProgramCallbacks) send(msg tea.Msg) {
	c.mu.Lock()
	p := c.p
	c.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

func (c *ProgramCallbacks) OnProgress(filesProcessed, filesFound int) {
	c.send(models.ProgressMsg{Processed: filesProcessed, Found: filesFound})
}

func (c *ProgramCallbacks) OnFileMatched(path string, matchCount int) {
	c.send(models.MatchMsg{Path: path, Count: matchCount})
}

func (c *ProgramCallbacks) OnError(message string) {
	c.send(models.ErrorMsg{Message: message})
}

func (c *ProgramCallbacks) OnCompleted(totalMatched int) {
	c.send(models.CompletedMsg{Total: totalMatched})
}

// RunInteractive runs the scan TUI until the user quits. cb must be the
// callbacks the scan was created with; start launches the scan. An error
// returned by start is returned once the user leaves the TUI.
func RunInteractive(cb *ProgramCallbacks, controls models.Controls, start func() error, outputDir string) error {
	m := models.NewScanViewModel(controls, start, outputDir)

	p := tea.NewProgram(m, tea.WithAltScreen())
	cb.Attach(p)
	defer cb.Attach(nil)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running interactive mode: %w", err)
	}

	return startError(final)
}

// startError returns the start failure recorded by the final model
func startError(final tea.Model) error {
	if sv, ok := final.(*models.ScanViewModel); ok && sv.Err() != nil {
		return fmt.Errorf("scan did not start: %w", sv.Err())
	}
	return nil
}
