package core

import (
	"fmt"
	"log"
	"os"
)

// TraceWriter serializes Trace appends through one dedicated goroutine so
// concurrent dispatcher calls never race on the same file descriptor (spec
// §5: "the trace log file is append-only; concurrent appends must be
// serialized", and spec §9 open question: "implementations may funnel
// writes through a dedicated logging task").
type TraceWriter struct {
	lines chan string
	done  chan struct{}
	file  *os.File
}

// NewTraceWriter opens path for appending, if non-empty, and starts its
// writer goroutine. An empty path falls back to the process log (spec §6
// "trace_log_path?").
func NewTraceWriter(path string) (*TraceWriter, error) {
	var f *os.File
	if path != "" {
		opened, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("core: open trace log %q: %w", path, err)
		}
		f = opened
	}

	tw := &TraceWriter{
		lines: make(chan string, 256),
		done:  make(chan struct{}),
		file:  f,
	}
	go tw.run()
	return tw, nil
}

func (tw *TraceWriter) run() {
	defer close(tw.done)
	for line := range tw.lines {
		if tw.file != nil {
			fmt.Fprintln(tw.file, line)
		} else {
			log.Println("trace:", line)
		}
	}
}

// Write enqueues one trace line. The channel is generously buffered; a
// full buffer means the writer is badly behind, so the line is dropped
// rather than blocking the actor's mailbox.
func (tw *TraceWriter) Write(line string) {
	select {
	case tw.lines <- line:
	default:
		fmt.Println("core: trace writer backlog full, dropping line")
	}
}

// Close drains the writer goroutine and releases the underlying file.
func (tw *TraceWriter) Close() {
	close(tw.lines)
	<-tw.done
	if tw.file != nil {
		tw.file.Close()
	}
}
