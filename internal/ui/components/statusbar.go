package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fenilsonani/wordguard/internal/ui/styles"
)

// Shortcut is a key and what it does
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar represents a status bar component that displays at the bottom of views
type StatusBar struct {
	state     string
	processed int
	found     int
	matched   int
	errors    int
	shortcuts []Shortcut
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetState sets the scan state shown on the left
func (s *StatusBar) SetState(state string) {
	s.state = state
}

// SetCounts sets the file counters
func (s *StatusBar) SetCounts(processed, found, matched, errors int) {
	s.processed = processed
	s.found = found
	s.matched = matched
	s.errors = errors
}

// SetShortcuts sets the shortcuts to display, in order
func (s *StatusBar) SetShortcuts(shortcuts ...Shortcut) {
	s.shortcuts = shortcuts
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	var parts []string

	if s.state != "" {
		parts = append(parts, styles.BoldStyle.Render(s.state))
	}

	parts = append(parts, fmt.Sprintf("%d/%d files", s.processed, s.found))
	parts = append(parts, styles.CountStyle.Render(fmt.Sprintf("%d matched", s.matched)))

	if s.errors > 0 {
		parts = append(parts, styles.ErrorStyle.Render(fmt.Sprintf("%d errors", s.errors)))
	}

	leftSide := strings.Join(parts, " • ")

	var shortcutParts []string
	for _, sc := range s.shortcuts {
		shortcutParts = append(shortcutParts, fmt.Sprintf("%s:%s",
			styles.DimStyle.Render(sc.Key), sc.Desc))
	}
	rightSide := strings.Join(shortcutParts, " ")

	leftLen := lipgloss.Width(leftSide)
	rightLen := lipgloss.Width(rightSide)
	spacing := width - leftLen - rightLen - 2 // -2 for padding

	if spacing < 1 {
		// Not enough room for the shortcuts
		rightSide = ""
		spacing = 1
	}

	statusLine := leftSide + strings.Repeat(" ", spacing) + rightSide

	return styles.StatusBarStyle.Width(width).Render(statusLine)
}
