// Package ui implements an interactive browser of a virtual file system
// session using [tea].
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/govfs/internal/schema"
	"github.com/desertwitch/govfs/internal/storage"
)

type sessionProvider interface {
	Enumerate(dir string) ([]string, error)
	Stat(path string) (schema.Metadata, error)
	ReadFile(path string, buf []byte) ([]byte, error)
	RealDir(path string) (string, error)
	WriteDir() string
}

type diskUsageProvider interface {
	GetDiskUsage(path string) (storage.DiskStats, error)
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	session sessionProvider
	usage   diskUsageProvider
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler] browsing
// session from the virtual directory dir.
func NewHandler(ctx context.Context, cancel context.CancelFunc, session sessionProvider, usage diskUsageProvider, dir string, opts ...tea.ProgramOption) *Handler {
	handler := &Handler{
		session: session,
		usage:   usage,
	}

	model := NewTeaModel(handler, dir, cancel)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)

	handler.program = tea.NewProgram(model, opts...)
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the user interface (the [tea.Program]) and blocks until it
// is quit.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
