package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/govfs/internal/configuration"
	"github.com/desertwitch/govfs/internal/storage"
	"github.com/desertwitch/govfs/internal/vfs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// App holds the state shared by all commands: the flags of the root
// command, the loaded settings and the session they established.
type App struct {
	logs     *logManager
	level    *slog.LevelVar
	terminal slog.Handler

	configFiles []string
	mountSpecs  []string
	writeDir    string
	sane        bool
	verbose     bool
	cpuProfile  string
	memProfile  string

	settings  configuration.Settings
	session   *vfs.Session
	profilers []*profiler
}

// NewApp returns a pointer to a new [App] logging to w.
func NewApp(w io.Writer) *App {
	app := &App{
		logs:  newLogManager(),
		level: new(slog.LevelVar),
	}

	app.level.Set(slog.LevelInfo)
	app.terminal = newTerminalHandler(w, app.level)
	app.logs.Set(terminalLog, app.terminal)

	return app
}

// Logger returns the handler all program logs should pass through.
func (app *App) Logger() slog.Handler {
	return app.logs
}

// Command returns the root command with all subcommands attached.
func (app *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "govfs",
		Short: "Virtual file system over directories and archives",
		Long: `govfs overlays real directories and archives into a single virtual tree.
Reads search the mounts in order, every write goes to the write directory.`,
		Version:           Version,
		PersistentPreRunE: app.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&app.configFiles, "config", "c", nil, "settings files, later files override earlier ones")
	flags.StringArrayVarP(&app.mountSpecs, "mount", "m", nil, "mount `realPath[=mountPoint]`, a leading ^ prepends to the search path")
	flags.StringVarP(&app.writeDir, "write-dir", "w", "", "real directory to bind as the write directory")
	flags.BoolVar(&app.sane, "sane", false, "apply the sane configuration of the configured application")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "log debug messages")
	flags.StringVar(&app.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&app.memProfile, "memprofile", "", "write memory profile to file")

	root.AddCommand(
		app.lsCommand(),
		app.catCommand(),
		app.putCommand(),
		app.rmCommand(),
		app.mkdirCommand(),
		app.statCommand(),
		app.findCommand(),
		app.sumCommand(),
		app.mountsCommand(),
		app.dfCommand(),
		app.browseCommand(),
	)

	return root
}

// setup loads the settings, applies the flags over them and establishes the
// session before any subcommand runs.
func (app *App) setup(cmd *cobra.Command, _ []string) error {
	if app.verbose {
		app.level.Set(slog.LevelDebug)
	}

	app.startProfilers(cmd.Context())

	settings, err := app.loadSettings()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("sane") {
		settings.SaneConfig = app.sane
	}

	if app.writeDir != "" {
		settings.WriteDir = app.writeDir
	}

	for _, elem := range app.mountSpecs {
		spec, err := configuration.ParseMountSpec(elem)
		if err != nil {
			return fmt.Errorf("(app-setup) %w", err)
		}
		settings.Mounts = append(settings.Mounts, spec)
	}

	session, err := openSession(settings)
	if err != nil {
		return err
	}

	app.settings = settings
	app.session = session

	return nil
}

func (app *App) loadSettings() (configuration.Settings, error) {
	if len(app.configFiles) == 0 {
		return configuration.DefaultSettings(), nil
	}

	files := make([]string, 0, len(app.configFiles))

	for _, file := range app.configFiles {
		expanded, err := homedir.Expand(file)
		if err != nil {
			return configuration.Settings{}, fmt.Errorf("(app-config) failed to expand %q: %w", file, err)
		}
		files = append(files, expanded)
	}

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	settings, err := configHandler.LoadSettings(files...)
	if err != nil {
		return configuration.Settings{}, fmt.Errorf("(app-config) %w", err)
	}

	return settings, nil
}

func (app *App) startProfilers(ctx context.Context) {
	if app.cpuProfile != "" {
		app.profilers = append(app.profilers, newCPUProfiler(ctx, app.cpuProfile))
	}

	if app.memProfile != "" {
		app.profilers = append(app.profilers, newAllocProfiler(ctx, app.memProfile))
	}
}

// Close releases the session and stops the profilers. It is safe to call
// when no command ran.
func (app *App) Close() error {
	for _, prof := range app.profilers {
		prof.Stop()
	}
	app.profilers = nil

	if app.session == nil {
		return nil
	}

	if err := app.session.Deinit(); err != nil {
		return fmt.Errorf("(app-close) %w", err)
	}

	return nil
}

// openSession establishes a session from settings. A failing sane
// configuration or mount is skipped, as the rest of the session stays
// usable. Failing to bind an explicit write directory is fatal.
func openSession(settings configuration.Settings) (*vfs.Session, error) {
	session := vfs.NewSession(
		vfs.WithIdentity(settings.Organization, settings.AppName),
		vfs.WithBufferSize(settings.BufferSize),
		vfs.WithArchiveOptions(storage.ArchiveOptions{CacheEntries: settings.CacheEntries}),
	)

	if err := session.Init(); err != nil {
		return nil, fmt.Errorf("(app-session) %w", err)
	}

	if settings.SaneConfig {
		var flags vfs.ConfigFlags
		if settings.IncludeCDRoms {
			flags |= vfs.IncludeCDRoms
		}
		if settings.ArchivesFirst {
			flags |= vfs.ArchivesFirst
		}

		if err := session.SetSaneConfig(settings.Organization, settings.AppName, settings.ArchiveExt, flags); err != nil {
			slog.Warn("Skipped parts of the sane configuration: failed to apply",
				"err", err,
				"app", settings.AppName,
			)
		}
	}

	if settings.WriteDir != "" {
		writeDir, err := homedir.Expand(settings.WriteDir)
		if err == nil {
			err = session.SetWriteDir(writeDir)
		}
		if err != nil {
			return nil, errors.Join(fmt.Errorf("(app-session) %w", err), session.Deinit())
		}
	}

	for _, spec := range settings.Mounts {
		realPath, err := homedir.Expand(spec.RealPath)
		if err == nil {
			err = session.Mount(realPath, spec.MountPoint, spec.Append)
		}
		if err != nil {
			slog.Warn("Skipped mount: failed to mount",
				"err", err,
				"mount", spec.String(),
			)

			continue
		}

		slog.Debug("Mounted", "realPath", realPath, "mountPoint", spec.MountPoint, "append", spec.Append)
	}

	return session, nil
}
