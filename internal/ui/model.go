package ui

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/govfs/internal/schema"
	"github.com/desertwitch/govfs/internal/storage"
	"github.com/dustin/go-humanize"
)

const (
	// previewLimit is the largest file size shown in the preview panel.
	previewLimit = 64 << 10

	// maxLogLines is the amount of log lines kept for the logs panel.
	maxLogLines = 100

	// diskUsageInterval is the interval of the write directory usage updates.
	diskUsageInterval = time.Second
)

var errNoWriteDir = errors.New("no write directory")

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// selectedStyle defines the style of the selected directory entry.
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

type entry struct {
	name string
	meta schema.Metadata
}

type dirLoadedMsg struct {
	dir     string
	entries []entry
	err     error
}

type previewMsg struct {
	path    string
	content string
	err     error
}

// DiskUsageMsg is a [tea.Msg] containing the disk usage of the write
// directory.
type DiskUsageMsg struct {
	t     time.Time
	dir   string
	stats storage.DiskStats
	err   error
}

// TeaModel is the principal [tea.Model] of the browser.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	uiHandler *Handler

	fullWidthWithBorders int
	halfWidthWithBorders int
	listHeight           int

	dir     string
	entries []entry
	cursor  int

	previewPath     string
	previewViewport viewport.Model

	usage         DiskUsageMsg
	usageProgress progress.Model

	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel] browsing from dir.
//
//nolint:mnd
func NewTeaModel(uiHandler *Handler, dir string, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		uiHandler: uiHandler,
		cancel:    cancel,
		dir:       dir,
		usageProgress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(80),
		),
		previewViewport: viewport.New(40, 10),
		logsViewport:    viewport.New(80, 10),
		logs:            make([]string, 0, maxLogLines),
		listHeight:      10,
	}
}

// Init initializes the model within a [tea.Program].
func (m TeaModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadDir(m.uiHandler.session, m.dir),
		updateDiskUsage(m.uiHandler.session, m.uiHandler.usage, 0),
	)
}

// loadDir produces a [tea.Cmd] listing a virtual directory.
func loadDir(s sessionProvider, dir string) tea.Cmd {
	return func() tea.Msg {
		names, err := s.Enumerate(dir)
		if err != nil {
			return dirLoadedMsg{dir: dir, err: err}
		}

		entries := make([]entry, 0, len(names))
		for _, name := range names {
			meta, err := s.Stat(path.Join(dir, name))
			if err != nil {
				continue
			}
			entries = append(entries, entry{name: name, meta: meta})
		}

		return dirLoadedMsg{dir: dir, entries: entries}
	}
}

// loadPreview produces a [tea.Cmd] reading a file for the preview panel.
func loadPreview(s sessionProvider, p string, size int64) tea.Cmd {
	return func() tea.Msg {
		realDir, _ := s.RealDir(p)
		header := fmt.Sprintf("%s (%s)\nfrom %s\n\n", p, humanize.IBytes(uint64(max(size, 0))), realDir)

		if size > previewLimit {
			return previewMsg{path: p, content: header + "(too large to preview)"}
		}

		data, err := s.ReadFile(p, nil)
		if err != nil {
			return previewMsg{path: p, err: err}
		}

		if !utf8.Valid(data) {
			return previewMsg{path: p, content: header + "(binary content)"}
		}

		return previewMsg{path: p, content: header + string(data)}
	}
}

// updateDiskUsage produces a [tea.Cmd] returning a [DiskUsageMsg] after
// delay.
func updateDiskUsage(s sessionProvider, u diskUsageProvider, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		dir := s.WriteDir()
		if dir == "" {
			return DiskUsageMsg{t: t, err: errNoWriteDir}
		}

		stats, err := u.GetDiskUsage(dir)

		return DiskUsageMsg{t: t, dir: dir, stats: stats, err: err}
	})
}

// Update is the principal message handling method of the model.
//
//nolint:mnd,funlen,ireturn,cyclop
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			if m.cursor < len(m.entries) {
				e := m.entries[m.cursor]
				p := path.Join(m.dir, e.name)

				if e.meta.IsDir {
					cmds = append(cmds, loadDir(m.uiHandler.session, p))
				} else {
					cmds = append(cmds, loadPreview(m.uiHandler.session, p, e.meta.Size))
				}
			}
		case "backspace", "left", "h":
			if m.dir != "" {
				cmds = append(cmds, loadDir(m.uiHandler.session, parentDir(m.dir)))
			}
		case "pgup", "pgdown":
			m.previewViewport, cmd = m.previewViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.halfWidthWithBorders = (m.width / 2) - 2

		m.usageProgress.Width = m.fullWidthWithBorders

		// Upper panels take about 60% of the height.
		upperHeight := m.height * 3 / 5
		lowerHeight := m.height - upperHeight - 6

		// Panel heights minus borders and title.
		m.listHeight = max(upperHeight-3, 1)
		m.previewViewport.Width = m.halfWidthWithBorders
		m.previewViewport.Height = m.listHeight
		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = max(lowerHeight-3, 1)

		m.renderLogs()

		if !m.ready {
			m.ready = true
			m.uiHandler.Ready.Store(true)
		}

	case dirLoadedMsg:
		if msg.err != nil {
			m.appendLog(fmt.Sprintf("Failed to list %q: %v\n", "/"+msg.dir, msg.err))

			break
		}

		m.dir = msg.dir
		m.entries = msg.entries
		m.cursor = 0
		m.previewPath = ""
		m.previewViewport.SetContent("")

	case previewMsg:
		if msg.err != nil {
			m.appendLog(fmt.Sprintf("Failed to read %q: %v\n", "/"+msg.path, msg.err))

			break
		}

		m.previewPath = msg.path
		m.previewViewport.SetContent(
			lipgloss.NewStyle().Width(m.previewViewport.Width).Render(msg.content),
		)
		m.previewViewport.GotoTop()

	case DiskUsageMsg:
		m.usage = msg
		if msg.err == nil {
			cmds = append(cmds, m.usageProgress.SetPercent(msg.stats.UsedRatio()))
		}
		cmds = append(cmds, updateDiskUsage(m.uiHandler.session, m.uiHandler.usage, diskUsageInterval))

	case LogMsg:
		m.appendLog(string(msg))

	case progress.FrameMsg:
		updated, cmd := m.usageProgress.Update(msg)
		if progressModel, ok := updated.(progress.Model); ok {
			m.usageProgress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *TeaModel) appendLog(line string) {
	if len(m.logs) >= maxLogLines {
		m.logs = m.logs[1:]
	}
	m.logs = append(m.logs, line)

	m.renderLogs()
}

func (m *TeaModel) renderLogs() {
	if len(m.logs) == 0 {
		return
	}

	logs := lipgloss.NewStyle().
		Width(m.logsViewport.Width).
		Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

	m.logsViewport.SetContent(logs)
	m.logsViewport.GotoBottom()
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == "." || parent == "/" {
		return ""
	}

	return parent
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the browser..."
	}

	listPanel := borderStyle.Width(m.halfWidthWithBorders).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Width(m.halfWidthWithBorders).Render("/"+m.dir),
			m.formatEntries(),
		),
	)

	previewTitle := "Preview"
	if m.previewPath != "" {
		previewTitle += ": /" + m.previewPath
	}

	previewPanel := borderStyle.Width(m.halfWidthWithBorders).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Width(m.halfWidthWithBorders).Render(previewTitle),
			m.previewViewport.View(),
		),
	)

	usagePanel := borderStyle.Width(m.fullWidthWithBorders).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Width(m.fullWidthWithBorders).Render("Write Directory"),
			m.usageProgress.View(),
			infoStyle.Width(m.fullWidthWithBorders).Render(m.formatUsage()),
		),
	)

	logsPanel := borderStyle.Width(m.fullWidthWithBorders).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Width(m.fullWidthWithBorders).Render("Logs"),
			m.logsViewport.View(),
		),
	)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("↑/↓: select • enter: open • backspace: up • pgup/pgdown: scroll preview • q: quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel),
		usagePanel,
		logsPanel,
		helpSection,
	)
}

// formatEntries renders the window of directory entries around the cursor.
func (m TeaModel) formatEntries() string {
	if len(m.entries) == 0 {
		return infoStyle.Render("(empty)")
	}

	start := 0
	if m.cursor >= m.listHeight {
		start = m.cursor - m.listHeight + 1
	}
	end := min(start+m.listHeight, len(m.entries))

	var s strings.Builder

	for i := start; i < end; i++ {
		e := m.entries[i]

		line := e.name
		if e.meta.IsDir {
			line += "/"
		} else {
			line = fmt.Sprintf("%s  %s", line, humanize.IBytes(uint64(max(e.meta.Size, 0))))
		}

		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString(infoStyle.Render("  " + line))
		}

		if i < end-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m TeaModel) formatUsage() string {
	if m.usage.err != nil {
		return fmt.Sprintf("Unavailable: %v", m.usage.err)
	}

	if m.usage.dir == "" {
		return "Waiting for data..."
	}

	return fmt.Sprintf("%s\nUsed: %s of %s (%s free) at %s",
		m.usage.dir,
		humanize.IBytes(m.usage.stats.UsedSpace()),
		humanize.IBytes(m.usage.stats.TotalSize),
		humanize.IBytes(m.usage.stats.FreeSpace),
		m.usage.t.Format("15:04:05"),
	)
}
