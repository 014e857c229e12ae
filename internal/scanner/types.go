package scanner

import (
	"github.com/fenilsonani/wordguard/internal/output"
	"github.com/fenilsonani/wordguard/internal/redact"
)

// EventKind identifies what a walk event carries
type EventKind int

const (
	// EventProgress reports files discovered in a directory or one file processed
	EventProgress EventKind = iota
	// EventMatch reports a file that contained forbidden words and was saved
	EventMatch
	// EventError reports a file or directory that could not be processed
	EventError
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventMatch:
		return "match"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by a Walker as it works through a root. Events of one
// walk are delivered in the order files are visited.
type Event struct {
	Kind EventKind
	Root string
	Path string

	// EventProgress
	Processed  int // files finished, 0 or 1
	Discovered int // files listed in the directory at Path
	Dirs       int // subdirectories listed in the directory at Path

	// EventMatch
	Matches  []redact.Match
	Artifact output.Artifact

	// EventError
	Err *ScanError
}

// FileMatch is a matched file and the distinct words found in it
type FileMatch struct {
	Path    string         `json:"path" yaml:"path"`
	Matches []redact.Match `json:"matches" yaml:"matches"`
}

// MatchCount returns the number of distinct forbidden words in the file
func (m FileMatch) MatchCount() int { return len(m.Matches) }

// FileMatch returns the match carried by an EventMatch
func (e Event) FileMatch() FileMatch {
	return FileMatch{Path: e.Path, Matches: e.Matches}
}

// Saver persists the copies of a matched file
type Saver interface {
	Save(src string, original, redacted []byte) (output.Artifact, error)
}
