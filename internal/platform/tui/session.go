package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

type screen int

const (
	screenMenu screen = iota
	screenLevels
	screenPlay
	screenScores
)

// SessionModel manages the full session flow: menu -> levels -> play -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	logger   *log.Logger
	screen   screen
	menu     MenuModel
	levels   LevelSelectModel
	play     *PlayModel
	scores   ScoreboardModel
	errMsg   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	cfg = cfg.Normalize()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevels:
		return m.updateLevels(msg)
	case screenPlay:
		if m.play != nil {
			return m.updatePlay(msg)
		}
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	keepSize := m.config
	m.config = m.menu.Config()
	m.config.ScreenW, m.config.ScreenH = keepSize.ScreenW, keepSize.ScreenH
	m.errMsg = ""

	switch selected.Choice {
	case ChoicePlay:
		return m.startPlay(selected.Start)

	case ChoiceLevels:
		engine, err := newEngine(m.config)
		if err != nil {
			return m.backToMenu(err)
		}
		m.levels = NewLevelSelectModel(engine, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLevels
		return m, m.levels.Init()

	case ChoiceScoreboard:
		m.scores = NewScoreboardModel(m.store, m.config)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	return m.backToMenu(nil)
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.levels.Update(msg)
	if lm, ok := newModel.(LevelSelectModel); ok {
		m.levels = lm
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.WantsBack():
		return m.backToMenu(nil)
	case m.levels.Selected() != nil:
		return m.startPlay(*m.levels.Selected())
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu(nil)
	}
	return m, cmd
}

// updatePlay handles updates when in game mode.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if pm, ok := newModel.(PlayModel); ok {
		m.play = &pm
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play = nil
		return m.backToMenu(nil)
	}

	return m, cmd
}

func (m SessionModel) startPlay(start StartPoint) (tea.Model, tea.Cmd) {
	engine, err := newEngine(m.config)
	if err != nil {
		return m.backToMenu(err)
	}
	pm, err := NewPlayModel(engine, m.store, m.config, start, m.logger)
	if err != nil {
		return m.backToMenu(err)
	}
	m.play = &pm
	m.screen = screenPlay
	return m, m.play.Init()
}

// backToMenu rebuilds the menu so a saved run shows up as "Continue".
func (m SessionModel) backToMenu(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.logger.Warn("screen change failed", "err", err)
		m.errMsg = err.Error()
	}
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevels:
		return m.levels.View()
	case screenPlay:
		if m.play != nil {
			return m.play.View()
		}
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.errMsg != "" {
		view += "\n" + centerText(badStyle.Render(m.errMsg), m.config.ScreenW)
	}
	return view
}

// Shutdown stops a run still in play.
func (m SessionModel) Shutdown() {
	if m.play != nil {
		m.play.abandon()
	}
}

// RunSession runs the full menu-driven session locally.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Shutdown()
	}
	return err
}
