package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/leaderboard"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

const (
	boardRows         = 100
	statsPanelWidth   = 26
	minWidthForPanel  = 84 // below this the stats go under the table
	playerMark        = "*"
	scoreboardChrome  = 10 // title, variant line, borders, help
	scoreboardMinRows = 3
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "variant")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "variant")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardView is what the scoreboard shows for one variant.
type boardView struct {
	rows     []leaderboard.Ranked
	stats    *storage.VariantStats
	minScore int
	player   string // display name of the local player
	mine     int    // rank of the player's best row, 0 if absent
	err      error
}

// ScoreboardModel shows the ranked leaderboard of one variant at a time.
type ScoreboardModel struct {
	cfg       core.RuntimeConfig
	store     *storage.Store
	variants  []registry.Variant
	cursor    int
	board     boardView
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on cfg.Variant. store may be nil.
func NewScoreboardModel(store *storage.Store, cfg core.RuntimeConfig) ScoreboardModel {
	cfg = cfg.Normalize()
	variants := registry.List()
	cursor := 0
	for i, v := range variants {
		if v.ID == cfg.Variant {
			cursor = i
		}
	}

	m := ScoreboardModel{
		cfg:      cfg,
		store:    store,
		variants: variants,
		cursor:   cursor,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) variant() registry.Variant {
	if len(m.variants) == 0 {
		return registry.Variant{ID: m.cfg.Variant, Title: m.cfg.Variant}
	}
	return m.variants[m.cursor]
}

func (m ScoreboardModel) wide() bool {
	return m.cfg.ScreenW >= minWidthForPanel
}

func (m ScoreboardModel) newTable() table.Model {
	nameWidth := 16
	if m.wide() {
		nameWidth = min(24, max(16, m.cfg.ScreenW-statsPanelWidth-48))
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: nameWidth},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(scoreboardMinRows, m.cfg.ScreenH-scoreboardChrome)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadBoard ranks the variant's rows through the leaderboard service, using
// the variant's own submission policy.
func loadBoard(store *storage.Store, cfg core.RuntimeConfig) boardView {
	var view boardView

	engine, err := newEngine(cfg)
	if err != nil {
		view.err = err
		return view
	}
	policy, err := leaderboard.NewPolicy(engine.Config().Leaderboard)
	if err != nil {
		view.err = err
		return view
	}
	view.minScore = policy.MinScore()
	if cfg.Player != "" {
		view.player = policy.DisplayName(cfg.Player)
	}

	if store == nil {
		return view
	}

	board := leaderboard.NewService(policy, store, nil)
	if view.rows, err = board.Top(cfg.Variant, boardRows); err != nil {
		view.err = err
		return view
	}
	for _, r := range view.rows {
		if view.player != "" && r.Name == view.player {
			view.mine = r.Rank
			break
		}
	}
	if view.stats, err = store.GetVariantStats(cfg.Variant); err != nil {
		view.err = err
	}
	return view
}

func (m *ScoreboardModel) reload() {
	cfg := m.cfg
	cfg.Variant = m.variant().ID
	m.board = loadBoard(m.store, cfg)

	rows := make([]table.Row, len(m.board.rows))
	for i, r := range m.board.rows {
		rank := fmt.Sprintf("#%d", r.Rank)
		if m.board.player != "" && r.Name == m.board.player {
			rank += playerMark
		}
		rows[i] = table.Row{
			rank,
			r.Name,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.variants) < 2 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.variants)) % len(m.variants)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	v := m.variant()
	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("LEADERBOARD · "+strings.ToUpper(v.Title)), m.cfg.ScreenW))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("‹ %s ›  %d/%d", v.ID, m.cursor+1, max(1, len(m.variants)))), m.cfg.ScreenW))
	b.WriteString("\n\n")

	board := panelStyle.Render(m.renderRows())
	stats := panelStyle.Width(statsPanelWidth).Render(m.renderStats())
	if m.wide() {
		b.WriteString(centerBlock(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", stats), m.cfg.ScreenW))
	} else {
		b.WriteString(centerBlock(lipgloss.JoinVertical(lipgloss.Left, board, stats), m.cfg.ScreenW))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderRows() string {
	switch {
	case m.board.err != nil:
		return badStyle.Render("Leaderboard unavailable: " + m.board.err.Error())
	case len(m.board.rows) == 0:
		return dimStyle.Italic(true).Padding(1, 2).Render(
			fmt.Sprintf("No scores recorded yet.\nRuns of %d points or more are listed.", m.board.minScore))
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	lines := []string{titleStyle.Render("Stats")}
	if s := m.board.stats; s != nil && s.RunsCount > 0 {
		lines = append(lines,
			fmt.Sprintf("Runs        %d", s.RunsCount),
			fmt.Sprintf("Best score  %d", s.HighScore),
			fmt.Sprintf("Best level  %d", s.BestLevel),
			fmt.Sprintf("Average     %.0f", s.AvgScore),
			fmt.Sprintf("Last run    %s", s.LastPlayed.Format("Jan 02")),
		)
	} else {
		lines = append(lines, dimStyle.Render("No runs yet"))
	}

	lines = append(lines, "", fmt.Sprintf("Listed from %d pts", m.board.minScore))
	if m.board.mine > 0 {
		lines = append(lines, goodStyle.Render(fmt.Sprintf("%s%s ranks #%d", m.board.player, playerMark, m.board.mine)))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen and reports whether the user
// went back rather than quitting.
func RunScoreboard(store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
