// Command govfs operates on a virtual file system assembled from real
// directories and archives.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string
)

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandlers(cancel)

	app := NewApp(os.Stderr)
	slog.SetDefault(slog.New(app.Logger()))

	command := app.Command()
	command.SetOut(os.Stdout)

	if err := command.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed.", "err", err)
		ExitCode = 1
	}

	if err := app.Close(); err != nil {
		slog.Error("Failed to close the session.", "err", err)
		ExitCode = 1
	}
}
