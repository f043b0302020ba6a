package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/leaderboard"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

type playPhase int

const (
	phasePlaying playPhase = iota
	phaseRoundOver
)

// StartPoint is the level and baseline score a run begins with.
type StartPoint struct {
	Level int
	Score int
}

// PlayModel is the Bubble Tea model for one run of the game.
type PlayModel struct {
	cfg     core.RuntimeConfig
	title   string
	engine  *mindgrid.Engine
	run     *mindgrid.Run
	runID   uint64
	events  chan mindgrid.Event
	done    chan struct{}
	stop    *sync.Once
	store   *storage.Store
	board   *leaderboard.Service
	tracker *leaderboard.Tracker
	logger  *log.Logger

	keyMapper *KeyMapper
	help      help.Model
	timer     progress.Model
	rng       *rand.Rand

	phase    playPhase
	cursor   mindgrid.Position
	snap     mindgrid.Snapshot
	result   mindgrid.RoundResult
	now      time.Time
	feedback string
	status   string

	standalone bool
	quitting   bool
	backToMenu bool
}

// newEngine builds the engine for the configured variant and preset.
func newEngine(cfg core.RuntimeConfig) (*mindgrid.Engine, error) {
	preset, err := config.ParsePreset(cfg.Difficulty)
	if err != nil {
		return nil, err
	}
	return mindgrid.NewVariantEngine(cfg.Variant, cfg.ConfigPath, preset)
}

// NewPlayModel creates the play screen and enters the start level.
// store may be nil; the game then runs without saved runs or leaderboard.
func NewPlayModel(engine *mindgrid.Engine, store *storage.Store, cfg core.RuntimeConfig, start StartPoint, logger *log.Logger) (PlayModel, error) {
	cfg = cfg.Normalize()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	events := make(chan mindgrid.Event, 16)
	done := make(chan struct{})
	handler := func(ev mindgrid.Event) {
		select {
		case events <- ev:
		case <-done:
		}
	}

	gen := mindgrid.NewGenerator(engine, cfg.Seed, mindgrid.WithLogger(logger))
	run := mindgrid.NewRun(engine, gen,
		mindgrid.WithEventHandler(handler),
		mindgrid.WithRunLogger(logger),
	)

	title := cfg.Variant
	if v, err := registry.Get(cfg.Variant); err == nil {
		title = v.Title
	}

	timer := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	timer.Width = 40

	m := PlayModel{
		cfg:       cfg,
		title:     title,
		engine:    engine,
		run:       run,
		events:    events,
		done:      done,
		stop:      &sync.Once{},
		store:     store,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		timer:     timer,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}

	if store != nil {
		policy, err := leaderboard.NewPolicy(engine.Config().Leaderboard)
		if err != nil {
			return PlayModel{}, err
		}
		m.board = leaderboard.NewService(policy, store, logger)
		m.tracker = m.board.NewTracker(cfg.Variant)
	}

	if start.Level <= 0 {
		start.Level = 1
	}
	if err := run.Resume(start.Level, start.Score); err != nil {
		return PlayModel{}, err
	}
	if tok, ok := run.Token(); ok {
		m.runID = tok.Run
	}
	m.refresh()
	return m, nil
}

// Init starts the event listener and the redraw loop.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events, m.done), tickCmd(m.cfg.FPS))
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.timer.Width = max(10, min(40, msg.Width-20))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tickCmd(m.cfg.FPS)

	case runEventMsg:
		if msg.ev.Token.Run != m.runID {
			return m, nil
		}
		m = m.handleEvent(msg.ev)
		return m, waitForEvent(m.events, m.done)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.abandon()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.abandon()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.phase == phasePlaying {
		switch {
		case action.IsMove():
			m.moveCursor(action)
		case action == core.ActionSelect:
			m.selectTile()
		}
		return m, nil
	}

	switch action {
	case core.ActionNext:
		if m.result.Outcome == mindgrid.StateCleared {
			m.nextLevel()
		}
	case core.ActionRetry:
		if m.result.Outcome == mindgrid.StateFailed {
			m.retry()
		}
	case core.ActionSelect:
		m.confirm()
	}
	return m, nil
}

func (m *PlayModel) moveCursor(a core.Action) {
	size := m.snap.Grid.Size()
	if size == 0 {
		return
	}
	dr, dc := a.Delta()
	m.cursor.Row = (m.cursor.Row + dr + size) % size
	m.cursor.Col = (m.cursor.Col + dc + size) % size
}

func (m *PlayModel) selectTile() {
	tok, ok := m.run.Token()
	if !ok {
		return
	}
	res, err := m.run.Select(tok, m.cursor)
	switch {
	case err == nil:
		m.feedback = feedbackFor(m.rng, res)
	case errors.Is(err, mindgrid.ErrInvalidSelection):
		m.feedback = "That tile is spent. Pick another."
	case errors.Is(err, mindgrid.ErrStaleTurn):
		// The timer closed the turn first.
	default:
		m.logger.Warn("select failed", "err", err)
	}
	m.refresh()
}

// confirm applies the default choice of the result panel: continue after a
// clear, retry with a credit after a failure, otherwise start over.
func (m *PlayModel) confirm() {
	switch {
	case m.result.Outcome == mindgrid.StateCleared:
		m.nextLevel()
	case m.run.Credits() > 0:
		m.retry()
	default:
		m.restart()
	}
}

func (m *PlayModel) nextLevel() {
	if err := m.run.NextLevel(); err != nil {
		m.status = err.Error()
		return
	}
	m.enterLevel()
}

func (m *PlayModel) retry() {
	err := m.run.Retry()
	if errors.Is(err, mindgrid.ErrNoRetryCredit) {
		m.status = "No retry credits left. Press enter for a new game."
		return
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.enterLevel()
}

func (m *PlayModel) restart() {
	if err := m.run.Start(); err != nil {
		m.status = err.Error()
		return
	}
	if m.board != nil {
		m.tracker = m.board.NewTracker(m.cfg.Variant)
	}
	m.enterLevel()
}

func (m *PlayModel) enterLevel() {
	m.phase = phasePlaying
	m.result = mindgrid.RoundResult{}
	m.cursor = mindgrid.Position{}
	m.feedback = ""
	m.status = ""
	m.refresh()
}

func (m PlayModel) handleEvent(ev mindgrid.Event) PlayModel {
	switch ev.Kind {
	case mindgrid.EventTurnMissed:
		m.feedback = missFeedback(m.rng)
		m.refresh()

	case mindgrid.EventRoundResolved:
		m.phase = phaseRoundOver
		m.result = ev.Result
		m.snap = ev.Snapshot
		m.persist()
	}
	return m
}

// persist updates the resume point and the run's leaderboard row.
func (m *PlayModel) persist() {
	res := m.result
	if m.store == nil {
		return
	}

	var err error
	switch res.Outcome {
	case mindgrid.StateCleared:
		err = m.store.SaveRun(storage.SavedRun{
			Player:  m.playerKey(),
			Variant: m.cfg.Variant,
			Level:   res.Level + 1,
			Score:   res.Score,
		})
	case mindgrid.StateFailed:
		err = m.store.ClearRun(m.playerKey(), m.cfg.Variant)
	}
	if err != nil {
		m.logger.Warn("saved run update failed", "err", err)
		m.status = "Auto-save failed."
	}

	m.submitScore(res.Score, res.Level)
}

func (m *PlayModel) submitScore(score, level int) {
	if m.tracker == nil {
		return
	}
	policy := m.board.Policy()
	if !policy.Eligible(score) {
		m.status = fmt.Sprintf("Reach at least %d points to appear on the leaderboard.", policy.MinScore())
		return
	}

	rec, err := m.tracker.Submit(m.cfg.Player, score, level)
	switch {
	case errors.Is(err, leaderboard.ErrNameNotAllowed):
		m.status = "That name isn't allowed on the public leaderboard."
	case err != nil:
		m.logger.Warn("leaderboard submit failed", "err", err)
		m.status = "Leaderboard save failed."
	case rec.Status != leaderboard.StatusUnchanged:
		m.status = "Auto-saved to leaderboard."
	}
}

// abandon quits the level in play and stops the run.
func (m *PlayModel) abandon() {
	if m.phase == phasePlaying {
		if _, err := m.run.Quit(); err == nil && m.store != nil {
			if err := m.store.ClearRun(m.playerKey(), m.cfg.Variant); err != nil {
				m.logger.Warn("saved run clear failed", "err", err)
			}
		}
	}
	m.stop.Do(func() {
		m.run.Close()
		close(m.done)
	})
}

func (m *PlayModel) refresh() {
	if snap, ok := m.run.Snapshot(); ok {
		m.snap = snap
	}
	if size := m.snap.Grid.Size(); size > 0 {
		m.cursor.Row = min(m.cursor.Row, size-1)
		m.cursor.Col = min(m.cursor.Col, size-1)
	}
}

func (m PlayModel) playerKey() string {
	return m.cfg.PlayerKey()
}

// maskRisk reports whether unconsumed risk values are hidden at this level.
func (m PlayModel) maskRisk() bool {
	from := m.engine.Config().Display.HideRiskFromLevel
	return from > 0 && m.snap.Level >= from
}

// remaining returns the unspent fraction of the open turn.
func (m PlayModel) remaining() (float64, time.Duration) {
	budget := m.snap.TurnBudget
	if budget <= 0 || m.phase != phasePlaying {
		return 0, 0
	}
	now := m.now
	if now.IsZero() {
		now = time.Now()
	}
	left := budget - now.Sub(m.run.TurnStarted())
	left = max(0, min(budget, left))
	return float64(left) / float64(budget), left
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	width := m.cfg.ScreenW
	s := m.snap
	bestScore, bestLevel := m.run.Best()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(fmt.Sprintf("%s  ·  Level %d", strings.ToUpper(m.title), s.Level)), width))
	b.WriteString("\n\n")

	gain := fmt.Sprintf("Gain %d / %d", s.LevelGain, s.RequiredGain)
	if s.LevelGain >= s.RequiredGain {
		gain = goodStyle.Render(gain)
	}
	hud := fmt.Sprintf("Score %d   %s   Turn %d/%d", s.Score, gain, min(s.TurnIndex+1, s.Turns), s.Turns)
	b.WriteString(centerText(hud, width))
	b.WriteString("\n")

	stats := fmt.Sprintf("Mult x%.2f   Chain %d   Missed %d   Credits %d   Best %d (L%d)",
		s.Multiplier, s.ChainStreak, s.MissedTurns, m.run.Credits(), bestScore, bestLevel)
	b.WriteString(centerText(dimStyle.Render(stats), width))
	b.WriteString("\n\n")

	frac, left := m.remaining()
	bar := fmt.Sprintf("%s %4.1fs", m.timer.ViewAs(frac), left.Seconds())
	b.WriteString(centerText(bar, width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(renderGrid(s.Grid, m.cursor, m.maskRisk()), width))
	b.WriteString("\n\n")

	if m.phase == phaseRoundOver {
		b.WriteString(centerBlock(m.renderResult(), width))
		b.WriteString("\n")
	} else if m.feedback != "" {
		b.WriteString(centerText(m.feedback, width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(centerText(dimStyle.Render(m.status), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keyMapper.Keys())), width))
	return b.String()
}

// renderResult draws the round outcome panel.
func (m PlayModel) renderResult() string {
	r := m.result
	var lines []string

	switch r.Outcome {
	case mindgrid.StateCleared:
		head := "LEVEL CLEARED"
		if r.Perfect() {
			head = "PERFECT CLEAR"
		}
		lines = append(lines, goodStyle.Bold(true).Render(head))
	default:
		lines = append(lines, badStyle.Bold(true).Render("RUN OVER"))
	}

	lines = append(lines,
		fmt.Sprintf("Gained %d of %d needed", r.LevelGain, r.RequiredGain),
		fmt.Sprintf("Speed bonus +%d   Missed turns %d", r.SpeedBonus, r.MissedTurns),
		fmt.Sprintf("Total score %d", r.Score),
		"",
	)

	switch {
	case r.Outcome == mindgrid.StateCleared:
		lines = append(lines, "enter/n: next level   esc: menu")
	case m.run.Credits() > 0:
		lines = append(lines, fmt.Sprintf("enter/r: continue run (%d credits)   esc: menu", m.run.Credits()))
	default:
		lines = append(lines, "enter: new game   esc: menu")
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay starts a standalone Bubble Tea program for one run.
func RunPlay(store *storage.Store, cfg core.RuntimeConfig, start StartPoint, logger *log.Logger) error {
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	model, err := NewPlayModel(engine, store, cfg, start, logger)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if pm, ok := final.(PlayModel); ok {
		pm.abandon()
	}
	return err
}
