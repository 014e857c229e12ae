package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiveProgressPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	lp := newLiveProgress(&buf, false, 80)

	lp.OnProgress(1, 2)
	lp.OnFileMatched("/data/a.txt", 2)
	lp.OnError("Error: failed to read file /data/b.txt")
	lp.OnProgress(2, 2)
	lp.OnCompleted(1)

	out := buf.String()
	assert.NotContains(t, out, "\033[K", "no status line without a terminal")
	assert.Contains(t, out, "Matched: /data/a.txt (2 words)\n")
	assert.Contains(t, out, "Error: failed to read file /data/b.txt\n")
	assert.Contains(t, out, "Scan finished: 1 files matched, 2 processed, 1 errors")
}

func TestLiveProgressQuiet(t *testing.T) {
	var buf bytes.Buffer
	lp := newLiveProgress(&buf, false, 80)
	lp.SetQuiet(true)

	lp.OnFileMatched("/data/a.txt", 1)
	lp.OnError("Error: boom")

	assert.NotContains(t, buf.String(), "Matched:")
	assert.Contains(t, buf.String(), "Error: boom")
}

func TestLiveProgressThrottlesStatusLine(t *testing.T) {
	var buf bytes.Buffer
	lp := newLiveProgress(&buf, true, 120)

	for i := 1; i <= 100; i++ {
		lp.OnProgress(i, 100)
	}

	// the first update renders, the rest fall inside the interval
	assert.Equal(t, 1, strings.Count(buf.String(), "\r\033[K"))
	assert.Contains(t, buf.String(), "1/100 files")
}

func TestLiveProgressClearsStatusBeforeLines(t *testing.T) {
	var buf bytes.Buffer
	lp := newLiveProgress(&buf, true, 120)

	lp.OnProgress(1, 4)
	lp.OnFileMatched("/x.txt", 1)

	out := buf.String()
	idx := strings.Index(out, "Matched: /x.txt")
	assert.Greater(t, idx, 0)
	assert.True(t, strings.HasSuffix(out[:idx], "\r\033[K"))
}

func TestProgramCallbacksWithoutProgram(t *testing.T) {
	cb := &ProgramCallbacks{}

	// nothing attached: calls are dropped, not blocked
	cb.OnProgress(1, 1)
	cb.OnFileMatched("/x", 1)
	cb.OnError("e")
	cb.OnCompleted(1)
}
