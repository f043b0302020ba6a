package tui

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('j'), core.ActionDown},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey(' '), core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect},
		{runeKey('n'), core.ActionNext},
		{runeKey('r'), core.ActionRetry},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('?'), core.ActionHelp},
		{runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, km.MapKey(tt.msg))
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(runeKey('b')))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey('x')))
}

func TestTileText(t *testing.T) {
	tests := []struct {
		name   string
		tile   mindgrid.Tile
		masked bool
		want   string
	}{
		{"number", mindgrid.Tile{Kind: mindgrid.KindNumber, Value: 12}, false, "12"},
		{"risk shown", mindgrid.Tile{Kind: mindgrid.KindRisk, Value: -20}, false, "RISK -20"},
		{"risk gain shown", mindgrid.Tile{Kind: mindgrid.KindRisk, Value: 35}, false, "RISK +35"},
		{"risk masked", mindgrid.Tile{Kind: mindgrid.KindRisk, Value: 35}, true, "RISK ???"},
		{"number not masked", mindgrid.Tile{Kind: mindgrid.KindNumber, Value: 9}, true, "9"},
		{"consumed", mindgrid.Tile{Kind: mindgrid.KindRisk, Value: 5, Consumed: true}, true, "·"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tileText(tt.tile, tt.masked))
		})
	}
}

func TestRenderGridRows(t *testing.T) {
	g := mindgrid.Grid{
		{{Kind: mindgrid.KindNumber, Value: 1}, {Kind: mindgrid.KindNumber, Value: 2}},
		{{Kind: mindgrid.KindNumber, Value: 3}, {Kind: mindgrid.KindNumber, Value: 4}},
	}
	out := renderGrid(g, mindgrid.Position{}, false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Empty(t, strings.TrimSpace(lines[1]))
	assert.Contains(t, lines[2], "4")
}

func TestFeedbackFor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	rare := feedbackFor(rng, mindgrid.TurnResult{Tile: mindgrid.Tile{Kind: mindgrid.KindRare, Value: 60}, Applied: 60})
	assert.Contains(t, rare, "+60")

	loss := feedbackFor(rng, mindgrid.TurnResult{Tile: mindgrid.Tile{Kind: mindgrid.KindRisk, Value: -10}, Applied: -10})
	assert.Contains(t, loss, "-10")

	assert.NotEmpty(t, missFeedback(rng))
}

func newTestPlayModel(t *testing.T) PlayModel {
	t.Helper()
	engine, err := mindgrid.NewEngine(config.DefaultMindgrindConfig())
	require.NoError(t, err)

	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m, err := NewPlayModel(engine, nil, cfg, StartPoint{Level: 1}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { m.abandon() })
	return m
}

func TestPlayModelSelectAdvancesTurn(t *testing.T) {
	m := newTestPlayModel(t)
	assert.Equal(t, 1, m.snap.Level)
	assert.Equal(t, 0, m.snap.TurnIndex)

	next, _ := m.Update(runeKey(' '))
	m = next.(PlayModel)
	assert.Equal(t, 1, m.snap.TurnIndex)
	assert.NotEmpty(t, m.feedback)

	// The spent tile cannot be picked again.
	next, _ = m.Update(runeKey(' '))
	m = next.(PlayModel)
	assert.Equal(t, 1, m.snap.TurnIndex)
	assert.Contains(t, m.feedback, "spent")
}

func TestPlayModelCursorWraps(t *testing.T) {
	m := newTestPlayModel(t)
	size := m.snap.Grid.Size()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(PlayModel)
	assert.Equal(t, mindgrid.Position{Row: size - 1, Col: 0}, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(PlayModel)
	assert.Equal(t, mindgrid.Position{Row: size - 1, Col: size - 1}, m.cursor)
}

func TestPlayModelIgnoresForeignEvents(t *testing.T) {
	m := newTestPlayModel(t)
	ev := mindgrid.Event{
		Kind:  mindgrid.EventRoundResolved,
		Token: mindgrid.TurnToken{Run: m.runID + 1000},
	}
	next, cmd := m.Update(runEventMsg{ev: ev})
	m = next.(PlayModel)
	assert.Nil(t, cmd)
	assert.Equal(t, phasePlaying, m.phase)
}

func TestPlayModelQuit(t *testing.T) {
	m := newTestPlayModel(t)
	next, cmd := m.Update(runeKey('q'))
	m = next.(PlayModel)
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())

	_, ok := m.run.Token()
	assert.False(t, ok)
}

func TestPlayModelMaskRisk(t *testing.T) {
	m := newTestPlayModel(t)
	assert.False(t, m.maskRisk())

	m.snap.Level = m.engine.Config().Display.HideRiskFromLevel
	assert.True(t, m.maskRisk())
}

func TestSessionMenuToPlayAndBack(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	m := NewSessionModel(nil, cfg, nil)
	assert.Contains(t, m.View(), "New run")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	require.Equal(t, screenPlay, m.screen)
	require.NotNil(t, m.play)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.play)
	assert.Contains(t, m.View(), "Scoreboard")
}

func TestSessionScoreboardWithoutStore(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	require.Equal(t, screenScores, m.screen)
	assert.Contains(t, m.View(), "No scores recorded yet")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	assert.Equal(t, screenMenu, m.screen)
}

func TestMenuVariantCycling(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	start := m.Config().Variant

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	assert.NotEqual(t, start, m.Config().Variant)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	assert.Equal(t, start, m.Config().Variant)
}

func TestLevelSelectPicksLevel(t *testing.T) {
	engine, err := mindgrid.NewEngine(config.DefaultMindgrindConfig())
	require.NoError(t, err)

	m := NewLevelSelectModel(engine, 80, 24)
	for range 3 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(LevelSelectModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelSelectModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, StartPoint{Level: 4}, *m.Selected())
	assert.Contains(t, NewLevelSelectModel(engine, 80, 24).View(), "goal  100")
}

func TestScoreboardRanksThroughLeaderboard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, e := range []storage.ScoreEntry{
		{Name: "bob", Score: 900, Level: 6, Variant: "mindgrind"},
		{Name: "alice", Score: 1400, Level: 9, Variant: "mindgrind"},
		{Name: "carol", Score: 700, Level: 4, Variant: "arena"},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = 100
	cfg.Player = "bob"
	m := NewScoreboardModel(store, cfg)

	require.Len(t, m.board.rows, 2)
	assert.Equal(t, "alice", m.board.rows[0].Name)
	assert.Equal(t, 2, m.board.mine)
	require.NotNil(t, m.board.stats)
	assert.Equal(t, 9, m.board.stats.BestLevel)

	view := m.View()
	assert.Contains(t, view, "#2"+playerMark)
	assert.Contains(t, view, "Best level  9")
	assert.Contains(t, view, "bob* ranks #2")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	assert.Equal(t, "arena", m.variant().ID)
	require.Len(t, m.board.rows, 1)
	assert.Equal(t, "carol", m.board.rows[0].Name)
	assert.Zero(t, m.board.mine)
}
