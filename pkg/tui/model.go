package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/routeshell/pkg/router"
	"github.com/vango-dev/routeshell/pkg/view"
)

// NavigateMsg asks the model to navigate. It is how code outside the UI
// thread reaches the router.
type NavigateMsg struct {
	Path string
}

// Navigate returns a command producing a NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// chromeLines is the height of everything except the body: title, bordered
// search input and status line.
const chromeLines = 5

// Model is the bubbletea model hosting a router.
type Model struct {
	router  *router.Router
	surface *Surface
	logger  *slog.Logger

	styles  Styles
	mdStyle string
	md      *glamour.TermRenderer
	initial string

	search textinput.Model
	body   viewport.Model

	width  int
	height int

	seq     uint64
	title   string
	targets []*view.Control
	focus   int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithStyles replaces the default theme.
func WithStyles(s Styles) ModelOption {
	return func(m *Model) { m.styles = s }
}

// WithInitialPath sets the route opened by Init.
func WithInitialPath(path string) ModelOption {
	return func(m *Model) { m.initial = path }
}

// WithMarkdownStyle selects a glamour standard style ("dark", "light",
// "notty", ...). The default "auto" detects the terminal background.
func WithMarkdownStyle(style string) ModelOption {
	return func(m *Model) { m.mdStyle = style }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// New returns a model driving r. The router's renderer must present to s.
func New(r *router.Router, s *Surface, opts ...ModelOption) Model {
	m := Model{
		router:  r,
		surface: s,
		logger:  slog.Default().With("component", "tui"),
		styles:  DefaultStyles(),
		mdStyle: "auto",
		initial: "/",
		focus:   -1,
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search routes"
	ti.CharLimit = 256
	ti.ShowSuggestions = true
	m.search = ti

	w, h := s.Size()
	m.body = viewport.New(w, h)
	m.resize(w, h+chromeLines)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, Navigate(m.initial))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.redraw()
		return m, nil

	case NavigateMsg:
		m.router.Navigate(msg.Path)
		cmd := m.sync()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBody(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.search.Value())
		m.search.Reset()
		m.search.Blur()
		if value == "" {
			return m, nil
		}
		if chrome := m.surface.Frame().Chrome; chrome != nil && chrome.OnSubmit != nil {
			chrome.OnSubmit(value)
		} else {
			m.router.Navigate(value)
		}
		cmd := m.sync()
		return m, cmd
	case "esc":
		m.search.Reset()
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/", "ctrl+l":
		cmd := m.search.Focus()
		return m, cmd
	case "tab":
		m.moveFocus(1)
		return m, nil
	case "shift+tab":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		if m.focus >= 0 && m.focus < len(m.targets) {
			m.router.Navigate(m.targets[m.focus].Target)
			cmd := m.sync()
			return m, cmd
		}
		return m, nil
	case "alt+left", "backspace":
		m.router.Back()
		cmd := m.sync()
		return m, cmd
	case "alt+right":
		m.router.Forward()
		cmd := m.sync()
		return m, cmd
	case "ctrl+r":
		m.router.Reload()
		cmd := m.sync()
		return m, cmd
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

// sync picks up a newly presented frame after a router call.
func (m *Model) sync() tea.Cmd {
	f := m.surface.Frame()
	if f.Seq == m.seq {
		return nil
	}
	m.seq = f.Seq
	m.targets = focusable(f.Body)
	m.focus = -1

	if f.Chrome != nil {
		m.search.SetSuggestions(f.Chrome.Options)
		if f.Chrome.Hint != "" {
			m.search.Placeholder = f.Chrome.Hint
		}
	}

	m.redraw()
	m.body.GotoTop()

	if f.Title != m.title {
		m.title = f.Title
		return tea.SetWindowTitle(f.Title)
	}
	return nil
}

func (m *Model) moveFocus(delta int) {
	if len(m.targets) == 0 {
		return
	}
	switch {
	case m.focus < 0 && delta < 0:
		m.focus = len(m.targets) - 1
	case m.focus < 0:
		m.focus = 0
	default:
		m.focus = (m.focus + delta + len(m.targets)) % len(m.targets)
	}
	m.redraw()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	bodyHeight := height - chromeLines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.body.Width = width
	m.body.Height = bodyHeight
	m.search.Width = max(width-8, 10)
	m.surface.resize(width, bodyHeight)

	md, err := markdownRenderer(m.mdStyle, max(width-4, 20))
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", "style", m.mdStyle, "error", err)
		md = nil
	}
	m.md = md
}

func (m *Model) redraw() {
	d := drawer{styles: m.styles, width: m.width, md: m.md}
	if m.focus >= 0 && m.focus < len(m.targets) {
		d.focused = m.targets[m.focus]
	}
	m.body.SetContent(d.draw(m.surface.Frame().Body))
}

// View implements tea.Model.
func (m Model) View() string {
	title := m.title
	if title == "" {
		title = "routeshell"
	}

	search := m.styles.Search.Width(max(m.width-2, 10)).Render(m.search.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(title),
		search,
		m.body.View(),
		m.styles.Status.Render(m.status()),
	)
}

func (m Model) status() string {
	parts := []string{m.router.Path()}
	if h := m.router.History(); h.CanBack() || h.CanForward() {
		var nav []string
		if h.CanBack() {
			nav = append(nav, "alt+← back")
		}
		if h.CanForward() {
			nav = append(nav, "alt+→ forward")
		}
		parts = append(parts, strings.Join(nav, " "))
	}
	parts = append(parts, "/ search", "tab focus", "q quit")
	return strings.Join(parts, " · ")
}

// Run starts a full-screen program for m and blocks until it exits or ctx is
// canceled.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
