// Package viewer hosts a vterm.Terminal in a bubbletea program. Input is
// replayed into the terminal in line-aligned chunks and the frame is drawn
// with the configured palette above a one-line status bar.
package viewer

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/gridterm/internal/config"
	"github.com/andyrewlee/gridterm/internal/logging"
	"github.com/andyrewlee/gridterm/internal/render"
	"github.com/andyrewlee/gridterm/internal/vterm"
)

// statusHeight is the number of rows reserved below the terminal.
const statusHeight = 1

type feedMsg struct{}

type blinkMsg time.Time

type copiedMsg struct {
	lines int
	err   error
}

// ConfigReloadedMsg delivers a reloaded config (or the reload error).
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7e0ea")).
			Background(lipgloss.Color("#2b323b"))
	statusAccent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#79c0ff")).
			Bold(true)
	statusError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff7b72")).
			Background(lipgloss.Color("#2b323b"))
)

// Model is the bubbletea model for the terminal viewer.
type Model struct {
	cfg    *config.Config
	term   *vterm.Terminal
	styler *render.Styler
	keys   keyMap
	help   help.Model

	name    string
	pending []string

	width  int
	height int
	screen string

	status    string
	statusErr bool

	copy func(string) error
}

// New creates a viewer that replays input into a terminal sized from cfg.
func New(cfg *config.Config, name, input string) (*Model, error) {
	palette, err := cfg.ResolvedPalette()
	if err != nil {
		return nil, err
	}
	m := &Model{
		cfg:     cfg,
		term:    vterm.New(cfg.Terminal.Cols, cfg.Terminal.Rows, cfg.TerminalOptions()...),
		styler:  render.NewStyler(palette),
		keys:    defaultKeyMap(),
		help:    help.New(),
		name:    name,
		pending: splitChunks(input, cfg.Viewer.FeedChunkLines),
		copy:    copyToClipboard,
	}
	m.term.Render(m)
	return m, nil
}

// Terminal returns the hosted terminal.
func (m *Model) Terminal() *vterm.Terminal { return m.term }

// Feeding reports whether replayed input remains.
func (m *Model) Feeding() bool { return len(m.pending) > 0 }

// RenderFrame implements vterm.Renderer.
func (m *Model) RenderFrame(f *vterm.Frame) {
	m.screen = m.styler.Render(f)
}

// Init starts the feed and blink timers.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.feedCmd(), m.blinkCmd())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg)
	case feedMsg:
		cmd = m.feed()
	case blinkMsg:
		m.term.Tick(time.Time(msg))
		cmd = m.blinkCmd()
	case copiedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("copy failed: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("copied %d lines", msg.lines), false)
		}
	case ConfigReloadedMsg:
		m.applyConfig(msg)
	}
	if m.term.RenderPending() {
		m.term.Render(m)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	page := max(1, m.term.Size().Rows-1)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.PageUp):
		m.term.ScrollbackScroll(page)
	case key.Matches(msg, m.keys.PageDown):
		m.term.ScrollbackScroll(-page)
	case key.Matches(msg, m.keys.LineUp):
		m.term.ScrollbackScroll(1)
	case key.Matches(msg, m.keys.LineDown):
		m.term.ScrollbackScroll(-1)
	case key.Matches(msg, m.keys.Top):
		m.term.ScrollbackScroll(m.term.ScrollbackLen())
	case key.Matches(msg, m.keys.Bottom):
		m.term.ScrollbackToBottom()
	case key.Matches(msg, m.keys.Copy):
		return m.copyCmd()
	}
	return nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) {
	switch msg.Button {
	case tea.MouseWheelUp:
		m.term.ScrollbackScroll(m.cfg.Viewer.WheelLines)
	case tea.MouseWheelDown:
		m.term.ScrollbackScroll(-m.cfg.Viewer.WheelLines)
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.SetWidth(width)
	size := vterm.ClampSize(
		vterm.Size{Cols: width, Rows: height - statusHeight},
		m.cfg.Terminal.MinCols,
		m.cfg.Terminal.MinRows,
	)
	m.term.Resize(size.Cols, size.Rows)
}

func (m *Model) feed() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	m.term.Write(m.pending[0])
	m.pending = m.pending[1:]
	if len(m.pending) == 0 {
		logging.Debug("viewer: replay of %s complete", m.name)
	}
	return m.feedCmd()
}

func (m *Model) feedCmd() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	interval := m.cfg.FeedInterval()
	if interval <= 0 {
		return func() tea.Msg { return feedMsg{} }
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return feedMsg{} })
}

func (m *Model) blinkCmd() tea.Cmd {
	return tea.Tick(m.term.BlinkInterval(), func(t time.Time) tea.Msg { return blinkMsg(t) })
}

func (m *Model) copyCmd() tea.Cmd {
	text := m.term.Text(false)
	copyFn := m.copy
	return func() tea.Msg {
		lines := 0
		if text != "" {
			lines = strings.Count(text, "\n") + 1
		}
		return copiedMsg{lines: lines, err: copyFn(text)}
	}
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.setStatus(fmt.Sprintf("config: %v", msg.Err), true)
		return
	}
	cfg := msg.Config
	palette, err := cfg.ResolvedPalette()
	if err != nil {
		m.setStatus(fmt.Sprintf("config: %v", err), true)
		return
	}
	m.cfg = cfg
	m.styler.SetPalette(palette)
	m.term.SetCursorBlink(cfg.Terminal.CursorBlink)
	m.term.SetBlinkInterval(cfg.BlinkInterval())
	m.term.SetScrollbackCapacity(cfg.Terminal.Scrollback)
	logging.SetLevel(cfg.LogLevel())
	logging.SetEnabled(cfg.Logging.Enabled)
	if m.width > 0 && m.height > 0 {
		m.resize(m.width, m.height)
	}
	// The palette changed even if the terminal did not.
	m.term.Render(m)
	m.setStatus("config reloaded", false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View renders the terminal frame and the status bar.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.SetContent(m.content())
	return view
}

func (m *Model) content() string {
	lines := strings.Split(m.screen, "\n")
	if m.help.ShowAll {
		helpLines := strings.Split(m.help.View(m.keys), "\n")
		if n := len(helpLines); n < len(lines) {
			lines = append(lines[:len(lines)-n], helpLines...)
		}
	}
	lines = append(lines, m.statusLine())
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	size := m.term.Size()
	left := statusAccent.Render(" gridterm ")
	info := fmt.Sprintf(" %s %dx%d", m.name, size.Cols, size.Rows)
	if m.term.InAltScreen() {
		info += " [alt]"
	} else if off := m.term.ViewOffset(); off > 0 {
		info += fmt.Sprintf(" [scroll %d/%d]", off, m.term.ScrollbackLen())
	}
	if len(m.pending) > 0 {
		info += " [replaying]"
	}
	line := left + statusStyle.Render(info)
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = statusError
		}
		line += style.Render("  " + m.status)
	}
	if !m.help.ShowAll {
		line += statusStyle.Render("  " + m.help.View(m.keys))
	}
	if m.width <= 0 {
		return line
	}
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += statusStyle.Render(strings.Repeat(" ", pad))
	}
	return ansi.Truncate(line, m.width, "")
}

// splitChunks groups input into chunks of up to n lines, keeping line
// terminators with their line.
func splitChunks(input string, n int) []string {
	if input == "" {
		return nil
	}
	n = max(n, 1)
	lines := strings.SplitAfter(input, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	chunks := make([]string, 0, (len(lines)+n-1)/n)
	for i := 0; i < len(lines); i += n {
		end := min(i+n, len(lines))
		chunks = append(chunks, strings.Join(lines[i:end], ""))
	}
	return chunks
}
