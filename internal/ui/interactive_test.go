package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/wordguard/internal/reporter"
	"github.com/fenilsonani/wordguard/internal/ui/models"
)

type nopControls struct{}

func (nopControls) TogglePause() error               { return nil }
func (nopControls) Cancel() error                    { return nil }
func (nopControls) Report() (*reporter.Report, bool) { return nil, false }

// runInit executes the model's startup commands and feeds their messages back
func runInit(t *testing.T, m *models.ScanViewModel) {
	t.Helper()
	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	for _, cmd := range batch {
		if cmd == nil {
			continue
		}
		if msg := cmd(); msg != nil {
			m.Update(msg)
		}
	}
}

func TestStartErrorIsReturned(t *testing.T) {
	m := models.NewScanViewModel(nopControls{}, func() error {
		return errors.New("failed to create output directory: permission denied")
	}, "/out")
	runInit(t, m)

	err := startError(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestStartErrorNilWhenStarted(t *testing.T) {
	m := models.NewScanViewModel(nopControls{}, func() error { return nil }, "/out")
	runInit(t, m)

	assert.NoError(t, startError(m))
}
