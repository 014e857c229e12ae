package models

import (
	"github.com/fenilsonani/wordguard/internal/reporter"
)

// ProgressMsg carries the running file counts
type ProgressMsg struct {
	Processed int
	Found     int
}

// MatchMsg is sent for every file that contained a forbidden word
type MatchMsg struct {
	Path  string
	Count int
}

// ErrorMsg is sent for every file or directory that could not be handled
type ErrorMsg struct {
	Message string
}

// CompletedMsg is sent once, when the scan has finished or was cancelled
type CompletedMsg struct {
	Total int
}

// startFailedMsg reports that the scan could not be started
type startFailedMsg struct {
	err error
}

// Controls is what the scan view needs from the scan it displays
type Controls interface {
	TogglePause() error
	Cancel() error
	Report() (*reporter.Report, bool)
}
