package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timemap/cardstack/internal/card"
	"github.com/timemap/cardstack/internal/config"
	"github.com/timemap/cardstack/internal/i18n"
	"github.com/timemap/cardstack/internal/state"
	"github.com/timemap/cardstack/internal/timemap"
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Store    *state.Store
	AppStore *config.AppStore
	Messages i18n.Messages
	Logger   *slog.Logger
	// Title is shown in the header; empty uses "cardstack".
	Title    string
	PollTick time.Duration
	// OnSelect receives the event of a card the user selects.
	OnSelect func(timemap.Event)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	appStore *config.AppStore
	messages i18n.Messages
	logger   *slog.Logger
	title    string
	pollTick time.Duration
	onSelect func(timemap.Event)

	renderer *card.Renderer
	template card.Template

	// UI state
	theme    Theme
	painter  painter
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot state.Snapshot

	// Card state, keyed by event id so it survives refreshes.
	cards      []*card.Card
	cursor     int
	selectedID string
	expanded   map[string]bool
	// cardLines holds the first viewport line of each card.
	cardLines []int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "cardstack"
	}

	templates := card.NewTemplates(opts.Messages)
	name := ""
	if opts.AppStore != nil {
		name = opts.AppStore.CardTemplate()
	}
	tmpl, found := templates.Lookup(name)
	if !found && name != "" {
		logger.Warn("unknown card template, using basic", "template", name)
	}

	theme := defaultTheme()
	return Model{
		ctx:      ctx,
		store:    opts.Store,
		appStore: opts.AppStore,
		messages: opts.Messages,
		logger:   logger,
		title:    title,
		pollTick: pollTick,
		onSelect: opts.OnSelect,
		renderer: card.NewRenderer(opts.Messages, logger),
		template: tmpl,
		theme:    theme,
		painter:  newPainter(theme),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		expanded: make(map[string]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.viewportHeight())
		}
		m.ready = true
		m.viewport.Width = msg.Width
		m.viewport.Height = m.viewportHeight()
		m.help.Width = msg.Width
		m.refreshViewport()
		return m, nil

	case tickMsg:
		return m, m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.messages.T("card.loading")
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles().Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) styles() Styles {
	return m.painter.styles
}

// viewportHeight leaves room for the header and footer lines.
func (m Model) viewportHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfViewUp()
		return m, nil
	}

	if len(m.cards) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.cards) - 1
	case key.Matches(msg, m.keys.Select):
		m.selectCard(m.cursor)
	case key.Matches(msg, m.keys.Toggle):
		c := m.cards[m.cursor]
		if !c.HasToggle() {
			return m, nil
		}
		open := c.Toggle()
		if c.Event.ID != "" {
			m.expanded[c.Event.ID] = open
		}
	default:
		return m, nil
	}

	m.refreshViewport()
	m.scrollToCursor()
	return m, nil
}

func (m *Model) selectCard(idx int) {
	m.selectedID = m.cards[idx].Event.ID
	for i, c := range m.cards {
		c.IsSelected = i == idx
	}
	m.cards[idx].Select()
}

// applySnapshot rebuilds cards from the store, keeping cursor, selection
// and expansion by event id.
func (m *Model) applySnapshot(snap state.Snapshot) {
	unchanged := len(m.cards) > 0 && snap.LastUpdated.Equal(m.snapshot.LastUpdated)
	m.snapshot = snap
	if unchanged {
		return
	}

	cursorID := ""
	if m.cursor < len(m.cards) {
		cursorID = m.cards[m.cursor].Event.ID
	}

	useSources := m.appStore == nil || m.appStore.Features().UseSources
	cards := make([]*card.Card, 0, len(snap.Domain.Events))
	m.cursor = 0
	for i, ev := range snap.Domain.Events {
		var sources []timemap.Source
		if useSources {
			sources = snap.Domain.SourcesFor(ev)
		}
		c := card.New(ev, m.template, sources, m.renderer)
		c.OnSelect = m.onSelect
		c.IsSelected = ev.ID != "" && ev.ID == m.selectedID
		if ev.ID != "" && m.expanded[ev.ID] && c.HasToggle() {
			c.Toggle()
		}
		if ev.ID != "" && ev.ID == cursorID {
			m.cursor = i
		}
		cards = append(cards, c)
	}
	m.cards = cards
	m.refreshViewport()
}

// refreshViewport repaints every card into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	if len(m.cards) == 0 {
		m.cardLines = nil
		m.viewport.SetContent(m.styles().MutedText.Render(m.messages.T("ui.no_events")))
		return
	}

	width := m.viewport.Width - 1
	var b strings.Builder
	m.cardLines = make([]int, len(m.cards))
	line := 0
	for i, c := range m.cards {
		m.cardLines[i] = line
		out := m.painter.paintCard(c.Render(), width, i == m.cursor)
		b.WriteString(out)
		b.WriteString("\n")
		line += strings.Count(out, "\n") + 1
	}
	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
}

// scrollToCursor keeps the focused card's first line on screen.
func (m *Model) scrollToCursor() {
	if m.cursor >= len(m.cardLines) {
		return
	}
	top := m.cardLines[m.cursor]
	bottom := m.viewport.YOffset + m.viewport.Height
	end := top
	if m.cursor+1 < len(m.cardLines) {
		end = m.cardLines[m.cursor+1] - 1
	}
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case end >= bottom:
		offset := end - m.viewport.Height + 1
		if offset > top {
			offset = top
		}
		m.viewport.SetYOffset(offset)
	}
}

// handleTick fetches the latest snapshot and schedules the next tick.
func (m Model) handleTick() tea.Cmd {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
