package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// logBufferSize is how many lines may queue up before Write blocks.
const logBufferSize = 1000

type teaProgramProvider interface {
	Send(msg tea.Msg)
}

// LogMsg carries one formatted log line into the mount monitor.
type LogMsg string

// TeaLogWriter feeds slog output into the mount monitor. Lines are queued
// and handed to the program by a single relay goroutine, so a slow redraw
// never reorders them.
type TeaLogWriter struct {
	program teaProgramProvider

	lines    chan LogMsg
	quit     chan struct{}
	quitOnce sync.Once
}

// NewTeaLogWriter starts the relay to program. Call [TeaLogWriter.Stop] once
// the program has exited.
func NewTeaLogWriter(program teaProgramProvider) *TeaLogWriter {
	wr := &TeaLogWriter{
		program: program,
		lines:   make(chan LogMsg, logBufferSize),
		quit:    make(chan struct{}),
	}

	go wr.relay()

	return wr
}

// Stop ends the relay. Lines still queued, and lines written afterwards, are
// dropped. Stop may be called more than once.
func (wr *TeaLogWriter) Stop() {
	wr.quitOnce.Do(func() {
		close(wr.quit)
	})
}

func (wr *TeaLogWriter) relay() {
	for {
		select {
		case <-wr.quit:
			return
		case line := <-wr.lines:
			wr.program.Send(line)
		}
	}
}

// Write queues p as a single [LogMsg]. It never fails; after Stop the line is
// discarded.
func (wr *TeaLogWriter) Write(p []byte) (int, error) {
	select {
	case <-wr.quit:
	case wr.lines <- LogMsg(p):
	}

	return len(p), nil
}
