package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer implements io.Writer and writes to t.Log so that logs are shown only for failed tests.
type Writer struct {
	tb       testing.TB
	testDone chan struct{}
}

// NewWriter creates a Writer that writes to tb.Log until the test finishes.
func NewWriter(tb testing.TB) io.Writer {
	w := &Writer{
		tb:       tb,
		testDone: make(chan struct{}),
	}
	tb.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

// Write implements io.Writer by writing to t.Log. Writing after the test has finished panics, which points at
// goroutines such as servers or batch runs that outlive their test.
func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testwriter: attempted to write after test completion. Did you forget to stop a server or wait for a goroutine?")
	default:
		if output := strings.TrimSuffix(string(p), "\n"); output != "" {
			w.tb.Log(output)
		}
		return len(p), nil
	}
}
