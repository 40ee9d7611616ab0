package main

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stocktracker/pkg/config"
	"stocktracker/pkg/theme"
	"stocktracker/services/chart"
	"stocktracker/services/market"
)

const windowTitle = "Indonesian Stock Tracker"

type focus int

const (
	focusInput focus = iota
	focusButton
	focusCheckbox
	focusCount
)

// Window padding, matched by Styles.Window.
const (
	padTop  = 1
	padLeft = 2
)

// fixedLines is every line outside the chart canvas.
const fixedLines = 2*padTop + 11 + 7 + 4

type model struct {
	fetcher snapshotFetcher
	archive snapshotArchiver // nil when the archive is disabled

	theme  theme.Config
	styles theme.Styles

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	chart   *chart.Renderer

	focus    focus
	snapshot *market.Snapshot
	info     []string
	loading  bool
	pending  string
	err      error
	updated  time.Time

	width  int
	height int
	ready  bool
}

func initialModel(cfg *config.Config, fetcher snapshotFetcher, archive snapshotArchiver) model {
	input := textinput.New()
	input.Placeholder = "BBCA.JK"
	input.Prompt = "> "
	input.Width = 30
	input.SetValue(cfg.DefaultSymbol)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		fetcher: fetcher,
		archive: archive,
		theme:   theme.Config{IsDark: cfg.DarkMode},
		input:   input,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		focus:   focusInput,
	}
	m.chart = chart.New(theme.For(m.theme))
	m.applyTheme()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(windowTitle),
		textinput.Blink,
	)
}

// applyTheme recomputes the palette and pushes it to every widget and the
// chart. Calling it twice with the same theme changes nothing.
func (m *model) applyTheme() {
	m.styles = theme.For(m.theme)
	s := m.styles

	m.input.PromptStyle = s.InputPrompt
	m.input.TextStyle = s.Input
	m.input.PlaceholderStyle = s.Help
	m.input.Cursor.Style = s.Input

	m.spinner.Style = s.Status

	m.help.Styles.ShortKey = s.Label.Bold(true)
	m.help.Styles.ShortDesc = s.Help
	m.help.Styles.ShortSeparator = s.Help

	m.chart.SetStyles(s)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if c, ok := m.commandForKey(msg); ok {
			return m.dispatch(c)
		}
		if m.focus == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			x, y := m.chartOrigin()
			col, row := msg.X-x, msg.Y-y
			if col < 0 || row < 0 || col >= m.width-2*padLeft || row >= m.chart.Height() {
				return m.dispatch(hoverCleared{})
			}
			return m.dispatch(hoverMoved{col: col, row: row})
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chart.Resize(m.width-2*padLeft, m.height-fixedLines)

	case snapshotMsg:
		m.loading = false
		m.pending = ""
		if msg.err != nil {
			log.Printf("Fetch failed for %q: %v", msg.ticker, msg.err)
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.snapshot = msg.snapshot
		m.info = msg.snapshot.InfoLines()
		m.updated = msg.snapshot.FetchedAt
		m.chart.Render(msg.ticker, msg.snapshot)
		m.applyTheme()

		if m.archive != nil {
			return m, archiveSnapshot(m.archive, msg.snapshot)
		}

	case archivedMsg:
		if msg.err == nil {
			log.Printf("Archived %d closes for %s", msg.saved, msg.ticker)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	default:
		if m.focus == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// commandForKey translates a key press into a command, if it is one.
func (m model) commandForKey(msg tea.KeyMsg) (command, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return quitRequested{}, true
	case key.Matches(msg, m.keys.Toggle):
		return themeToggled{dark: m.theme.Toggled().IsDark}, true
	case key.Matches(msg, m.keys.Next):
		return focusMoved{delta: 1}, true
	case key.Matches(msg, m.keys.Prev):
		return focusMoved{delta: -1}, true
	case key.Matches(msg, m.keys.Fetch), m.focus != focusInput && key.Matches(msg, m.keys.Press):
		if m.focus == focusCheckbox {
			return themeToggled{dark: m.theme.Toggled().IsDark}, true
		}
		return fetchRequested{ticker: m.input.Value()}, true
	case m.focus != focusInput && key.Matches(msg, m.keys.Left):
		return hoverStepped{delta: -1}, true
	case m.focus != focusInput && key.Matches(msg, m.keys.Right):
		return hoverStepped{delta: 1}, true
	}
	return nil, false
}

// dispatch applies one command to the model.
func (m model) dispatch(c command) (model, tea.Cmd) {
	switch c := c.(type) {
	case fetchRequested:
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.pending = c.ticker
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, fetchSnapshot(m.fetcher, c.ticker))

	case themeToggled:
		m.theme = theme.Config{IsDark: c.dark}
		m.applyTheme()

	case focusMoved:
		m.focus = (m.focus + focus(c.delta) + focusCount) % focusCount
		if m.focus == focusInput {
			return m, m.input.Focus()
		}
		m.input.Blur()

	case hoverMoved:
		m.chart.HoverAt(c.col, c.row)

	case hoverStepped:
		m.chart.Step(c.delta)

	case hoverCleared:
		m.chart.ClearHover()

	case quitRequested:
		return m, tea.Quit
	}

	return m, nil
}

// chartOrigin is the screen position of the chart view's top-left cell.
func (m model) chartOrigin() (int, int) {
	return padLeft, padTop + lipgloss.Height(m.topView())
}
