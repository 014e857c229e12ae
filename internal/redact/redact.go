// Package redact masks forbidden words in file content.
package redact

import (
	"strings"

	"github.com/fenilsonani/wordguard/internal/words"
)

// Mask replaces every occurrence of a matched word, whatever its length.
const Mask = "*******"

// Match is a forbidden word found in a piece of content
type Match struct {
	Word        string `json:"word" yaml:"word"`
	Occurrences int    `json:"occurrences" yaml:"occurrences"`
}

// Redactor matches content against a fixed word set. It holds no mutable
// state and is safe for concurrent use.
type Redactor struct {
	words []string
}

// New creates a Redactor for set
func New(set words.Set) *Redactor {
	return &Redactor{words: set.Words()}
}

// Redact returns content with every forbidden word replaced by Mask, along
// with the words found in set order. Containment is tested against the
// original content; matching is case-sensitive and ignores word boundaries.
func (r *Redactor) Redact(content string) (string, []Match) {
	var matches []Match
	redacted := content

	for _, w := range r.words {
		n := strings.Count(content, w)
		if n == 0 {
			continue
		}
		matches = append(matches, Match{Word: w, Occurrences: n})
		redacted = strings.ReplaceAll(redacted, w, Mask)
	}

	return redacted, matches
}

// ContainsAny reports whether content holds at least one forbidden word.
func (r *Redactor) ContainsAny(content string) bool {
	for _, w := range r.words {
		if strings.Contains(content, w) {
			return true
		}
	}
	return false
}

// Words returns the number of words the redactor matches against.
func (r *Redactor) Words() int { return len(r.words) }
