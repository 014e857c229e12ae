package components

import (
	"strings"
	"testing"
)

func TestStatusBarRender(t *testing.T) {
	s := NewStatusBar()
	s.SetState("running")
	s.SetCounts(3, 10, 1, 2)
	s.SetShortcuts(Shortcut{"p", "pause"}, Shortcut{"c", "cancel"})

	out := s.Render(120)
	for _, want := range []string{"running", "3/10 files", "1 matched", "2 errors", "pause", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %s", want, out)
		}
	}
}

func TestStatusBarDropsShortcutsWhenNarrow(t *testing.T) {
	s := NewStatusBar()
	s.SetState("running")
	s.SetCounts(1, 1, 0, 0)
	s.SetShortcuts(Shortcut{"p", "pause or resume the scan"})

	out := s.Render(30)
	if strings.Contains(out, "pause or resume") {
		t.Errorf("expected shortcuts to be dropped: %s", out)
	}
}

func TestStatusBarHidesZeroErrors(t *testing.T) {
	s := NewStatusBar()
	s.SetCounts(1, 1, 0, 0)

	if strings.Contains(s.Render(80), "errors") {
		t.Error("expected no error counter")
	}
}
