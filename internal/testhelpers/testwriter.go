package testhelpers

import (
	"strings"
	"sync"
	"testing"
)

// Writer sends log output to t.Log so that it only shows up for failed tests. It also keeps the lines so tests can
// assert on what was logged.
type Writer struct {
	t *testing.T

	mu    sync.Mutex
	lines []string
	done  bool
}

// NewWriter returns a Writer logging to t. Writing after t has finished panics, which catches servers that outlive
// their test.
func NewWriter(t *testing.T) *Writer {
	w := &Writer{t: t, mu: sync.Mutex{}, lines: nil, done: false}
	t.Cleanup(func() {
		w.mu.Lock()
		w.done = true
		w.mu.Unlock()
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		panic("testhelpers: write after test completion, is the server shut down in t.Cleanup?")
	}
	out := strings.TrimSuffix(string(p), "\n")
	if out != "" {
		w.lines = append(w.lines, out)
		w.t.Log(out)
	}
	return len(p), nil
}

// Contains reports whether a logged line contains every one of substrs.
func (w *Writer) Contains(substrs ...string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, line := range w.lines {
		all := true
		for _, s := range substrs {
			if !strings.Contains(line, s) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
