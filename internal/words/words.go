// Package words holds the forbidden-word list a scan matches against.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaskRune is the character the redactor writes in place of a match. Words
// containing it are rejected, since they would match their own mask.
const MaskRune = '*'

var (
	// ErrEmpty is returned when a list contains no usable words
	ErrEmpty = errors.New("word list is empty")
	// ErrMaskRune is returned for words that contain the mask character
	ErrMaskRune = errors.New("word contains the mask character")
)

// Set is an ordered collection of unique forbidden words. The zero value is
// an empty set. A Set is never mutated after construction.
type Set struct {
	words []string
}

// New builds a Set from words, trimming whitespace and dropping blanks and
// duplicates. Order of first appearance is kept.
func New(words ...string) (Set, error) {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))

	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if strings.ContainsRune(w, MaskRune) {
			return Set{}, fmt.Errorf("%w: %q", ErrMaskRune, w)
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	return Set{words: out}, nil
}

// Parse builds a Set from line-delimited text, one word per line.
func Parse(text string) (Set, error) {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read word list: %w", err)
	}
	return New(lines...)
}

// Load reads a word list file, one word per line.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read word list: %w", err)
	}

	set, err := Parse(string(data))
	if err != nil {
		return Set{}, err
	}
	if set.Empty() {
		return Set{}, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return set, nil
}

// Merge returns a Set holding the words of s followed by the new words of other.
func (s Set) Merge(other Set) Set {
	merged, _ := New(append(s.Words(), other.words...)...)
	return merged
}

// Words returns a copy of the words in order.
func (s Set) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Len returns the number of words.
func (s Set) Len() int { return len(s.words) }

// Empty reports whether the set has no words.
func (s Set) Empty() bool { return len(s.words) == 0 }

// Contains reports whether word is in the set.
func (s Set) Contains(word string) bool {
	for _, w := range s.words {
		if w == word {
			return true
		}
	}
	return false
}

// String renders the set the way it was loaded, one word per line.
func (s Set) String() string {
	return strings.Join(s.words, "\n")
}
