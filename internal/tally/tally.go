// Package tally counts, per forbidden word, the files the word was found in.
package tally

import (
	"sort"
	"sync"
)

// TopN is how many words a report lists
const TopN = 10

// Entry is a word and its cumulative count
type Entry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Tally is a thread-safe word counter. Words keep the order in which they
// were first counted so ties sort deterministically.
type Tally struct {
	mu     sync.Mutex
	counts map[string]int
	order  []string
}

// New creates an empty Tally
func New() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Increment adds one to word's count.
func (t *Tally) Increment(word string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.counts[word]; !ok {
		t.order = append(t.order, word)
	}
	t.counts[word]++
}

// Count returns the current count for word.
func (t *Tally) Count(word string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[word]
}

// Len returns the number of distinct words counted.
func (t *Tally) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Reset clears all counts.
func (t *Tally) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts = make(map[string]int)
	t.order = nil
}

// Snapshot returns up to n entries sorted by count descending, ties in
// first-seen order. n <= 0 returns every entry.
func (t *Tally) Snapshot(n int) []Entry {
	t.mu.Lock()
	entries := make([]Entry, 0, len(t.order))
	for _, w := range t.order {
		entries = append(entries, Entry{Word: w, Count: t.counts[w]})
	}
	t.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
