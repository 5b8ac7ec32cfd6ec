package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/desertwitch/govfs/internal/schema"
	"github.com/desertwitch/govfs/internal/storage"
	"github.com/desertwitch/govfs/internal/ui"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func argOr(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}

	return def
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func formatSize(meta schema.Metadata) string {
	if meta.IsDir {
		return "-"
	}

	return humanize.IBytes(uint64(max(meta.Size, 0)))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}

	return t.Format(time.DateTime)
}

func formatFlags(meta schema.Metadata) string {
	var flags []string

	if meta.IsDir {
		flags = append(flags, "dir")
	}
	if meta.IsSymlink {
		flags = append(flags, "symlink")
	}
	if meta.ReadOnly {
		flags = append(flags, "readonly")
	}

	if len(flags) == 0 {
		return "-"
	}

	return strings.Join(flags, ",")
}

func (app *App) lsCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List a virtual directory",
		Long:  `List the merged contents of a virtual directory across all mounts, including mount points below it.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := argOr(args, "")

			names, err := app.session.Enumerate(dir)
			if err != nil {
				return fmt.Errorf("(cli-ls) %w", err)
			}

			w := cmd.OutOrStdout()

			if !long {
				for _, name := range names {
					fmt.Fprintln(w, name)
				}

				return nil
			}

			table := newTable(w, "Name", "Size", "Modified", "Flags")
			for _, name := range names {
				meta, err := app.session.Stat(path.Join(dir, name))
				if err != nil {
					slog.Warn("Skipped entry: failed to stat",
						"err", err,
						"dir", dir,
						"name", name,
					)

					continue
				}
				table.Append([]string{name, formatSize(meta), formatTime(meta.ModTime), formatFlags(meta)})
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show size, modification time and flags")

	return cmd
}

func (app *App) catCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat path...",
		Short: "Print virtual files",
		Long:  `Print the contents of virtual files, each read from the first mount holding it.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				if err := app.copyOut(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func (app *App) copyOut(w io.Writer, p string) error {
	f, err := app.session.OpenRead(p)
	if err != nil {
		return fmt.Errorf("(cli-cat) %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("(cli-cat) %w", err)
	}

	return nil
}

func (app *App) putCommand() *cobra.Command {
	var appending bool

	cmd := &cobra.Command{
		Use:   "put local path",
		Short: "Store a local file in the write directory",
		Long: `Copy a local file to a virtual path in the write directory, creating missing
directories. The copy is refused if it would leave less free space than configured.`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			return app.put(args[0], args[1], appending)
		},
	}

	cmd.Flags().BoolVarP(&appending, "append", "a", false, "append to an existing file")

	return cmd
}

func (app *App) put(local, p string, appending bool) error {
	src, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("(cli-put) failed to open: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("(cli-put) failed to stat: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("(cli-put) %w: %s", ErrNotRegular, local)
	}

	ok, err := app.session.WriteDirHasSpace(app.settings.MinFreeSpace, uint64(info.Size()))
	if err != nil {
		return fmt.Errorf("(cli-put) %w", err)
	}
	if !ok {
		return fmt.Errorf("(cli-put) %w: %s needed", ErrNotEnoughSpace, humanize.IBytes(uint64(info.Size())))
	}

	open := app.session.OpenWrite
	if appending {
		open = app.session.OpenAppend
	}

	f, err := open(p)
	if err != nil {
		return fmt.Errorf("(cli-put) %w", err)
	}

	n, err := io.Copy(f, src)
	if err != nil {
		f.Close()

		return fmt.Errorf("(cli-put) %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("(cli-put) %w", err)
	}

	slog.Info("Stored file",
		"path", p,
		"size", humanize.IBytes(uint64(n)),
		"writeDir", app.session.WriteDir(),
	)

	return nil
}

func (app *App) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm path...",
		Short: "Remove files or empty directories from the write directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, p := range args {
				if err := app.session.Remove(p); err != nil {
					return fmt.Errorf("(cli-rm) %w", err)
				}
				slog.Debug("Removed", "path", p)
			}

			return nil
		},
	}
}

func (app *App) mkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir path...",
		Short: "Create directories in the write directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, p := range args {
				if err := app.session.Mkdir(p); err != nil {
					return fmt.Errorf("(cli-mkdir) %w", err)
				}
				slog.Debug("Created directory", "path", p)
			}

			return nil
		},
	}
}

func (app *App) statCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat path",
		Short: "Show the metadata of a virtual path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := args[0]

			meta, err := app.session.Stat(p)
			if err != nil {
				return fmt.Errorf("(cli-stat) %w", err)
			}

			realDir, err := app.session.RealDir(p)
			if err != nil {
				realDir = "-"
			}

			table := newTable(cmd.OutOrStdout(), "Path", "Size", "Modified", "Flags", "Real directory")
			table.Append([]string{p, formatSize(meta), formatTime(meta.ModTime), formatFlags(meta), realDir})
			table.Render()

			return nil
		},
	}
}

func (app *App) findCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find name",
		Short: "Find a file in the write directory or the base directory",
		Long:  `Print the real path of a file, searched in the write directory and then in the program's base directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.session.FindFilePath(args[0])
			if err != nil {
				return fmt.Errorf("(cli-find) %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), p)

			return nil
		},
	}
}

func (app *App) sumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sum path...",
		Short: "Print the BLAKE3 checksums of virtual files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				sum, err := app.session.Checksum(p)
				if err != nil {
					return fmt.Errorf("(cli-sum) %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, p)
			}

			return nil
		},
	}
}

func (app *App) mountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mounts",
		Short: "Show the search path",
		Long:  `Show the mounted stores in search order, with their mount points and kinds.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.session.Mounts()
			if err != nil {
				return fmt.Errorf("(cli-mounts) %w", err)
			}

			table := newTable(cmd.OutOrStdout(), "#", "Mount point", "Real path", "Kind", "Access")
			for i, entry := range entries {
				access := "ro"
				if entry.Store.Capabilities().Has(storage.CapWrite) {
					access = "rw"
				}
				table.Append([]string{
					strconv.Itoa(i + 1),
					"/" + entry.MountPoint,
					entry.Store.Root(),
					entry.Store.Kind().String(),
					access,
				})
			}
			table.Render()

			if writeDir := app.session.WriteDir(); writeDir != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Write directory: %s\n", writeDir)
			}

			return nil
		},
	}
}

func (app *App) dfCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "df",
		Short: "Show the disk usage of the write directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.session.WriteDirUsage()
			if err != nil {
				return fmt.Errorf("(cli-df) %w", err)
			}

			table := newTable(cmd.OutOrStdout(), "Write directory", "Size", "Used", "Free", "Use%")
			table.Append([]string{
				app.session.WriteDir(),
				humanize.IBytes(stats.TotalSize),
				humanize.IBytes(stats.UsedSpace()),
				humanize.IBytes(stats.FreeSpace),
				fmt.Sprintf("%.0f%%", stats.UsedRatio()*100), //nolint:mnd
			})
			table.Render()

			return nil
		},
	}
}

func (app *App) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse the virtual tree interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			usage := storage.NewDiskUsageCacher(ctx, &schema.Unix{})
			uiHandler := ui.NewHandler(ctx, cancel, app.session, usage, argOr(args, ""))

			app.logs.Remove(terminalLog)
			app.logs.Set(uiLog, newTerminalHandler(uiHandler.LogWriter, app.level))

			defer func() {
				app.logs.Remove(uiLog)
				app.logs.Set(terminalLog, app.terminal)
			}()

			if err := uiHandler.Launch(); err != nil {
				return fmt.Errorf("(cli-browse) %w", err)
			}

			return nil
		},
	}
}
