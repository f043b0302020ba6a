package mindgrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mindgrid/internal/config"
)

func newTestSession(t *testing.T, e *Engine, level int, grid Grid) *Session {
	t.Helper()
	s, err := e.NewSession(level, 0, grid)
	require.NoError(t, err)
	return s
}

func TestSelectConsumesTile(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 12))

	res, err := e.Select(s, Position{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 12, res.Applied)
	assert.Equal(t, 12, res.Score)
	assert.Equal(t, 1, res.TurnIndex)
	assert.False(t, res.Exhausted)

	snap := s.Snapshot()
	tile, _ := snap.Grid.At(Position{2, 3})
	assert.True(t, tile.Consumed)
	assert.Len(t, snap.Grid.Available(), 35)
}

func TestSelectSameTileTwiceRejected(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindChain, 10))

	_, err := e.Select(s, Position{0, 0})
	require.NoError(t, err)
	before := s.Snapshot()

	_, err = e.Select(s, Position{0, 0})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, before, s.Snapshot(), "rejected selection must not mutate the session")
}

func TestSelectOutsideGrid(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 10))
	before := s.Snapshot()

	for _, p := range []Position{{-1, 0}, {0, 6}, {6, 6}} {
		_, err := e.Select(s, p)
		assert.ErrorIs(t, err, ErrInvalidSelection, "position %s", p)
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestChainScoring(t *testing.T) {
	e := newTestEngine(t)
	grid := filledGrid(6, KindChain, 10)
	grid[5][5].Kind = KindNumber
	s := newTestSession(t, e, 1, grid)

	want := []int{10, 14, 17}
	prev := 0
	for i := range 5 {
		res, err := e.Select(s, Position{0, i})
		require.NoError(t, err)
		if i < len(want) {
			assert.Equal(t, want[i], res.Applied, "chain turn %d", i)
		}
		assert.Greater(t, res.Applied, prev, "chain turn %d", i)
		assert.Equal(t, i+1, res.ChainStreak)
		prev = res.Applied
	}

	res, err := e.Select(s, Position{5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ChainStreak, "a non-chain tile resets the streak")

	res, err = e.Select(s, Position{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Applied, "streak restarts from 1.0")
}

func TestBonusRaisesMultiplierBeforeScoring(t *testing.T) {
	e := newTestEngine(t)
	grid := filledGrid(6, KindNumber, 10)
	grid[0][0] = Tile{Pos: Position{0, 0}, Kind: KindBonus, Value: 2}
	s := newTestSession(t, e, 1, grid)

	res, err := e.Select(s, Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.5, res.Multiplier)
	assert.Equal(t, 2, res.Applied, "round(1 * 1.5)")

	res, err = e.Select(s, Position{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Applied)
	assert.Equal(t, 1.5, res.Multiplier, "multiplier persists")
}

func TestNegativeRiskMultiplierFloor(t *testing.T) {
	e := newTestEngine(t)
	grid := filledGrid(6, KindRisk, -10)
	grid[0][0] = Tile{Pos: Position{0, 0}, Kind: KindBonus, Value: 4}
	s := newTestSession(t, e, 1, grid)

	res, err := e.Select(s, Position{0, 0})
	require.NoError(t, err)
	require.Equal(t, 2.0, res.Multiplier)

	res, err = e.Select(s, Position{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.5, res.Multiplier)
	assert.Equal(t, -15, res.Applied, "penalty applies before scoring")

	for col := range 6 {
		res, err = e.Select(s, Position{2, col})
		if err != nil {
			break
		}
		assert.GreaterOrEqual(t, res.Multiplier, 1.0)
	}
	assert.Equal(t, 1.0, s.Snapshot().Multiplier)
}

func TestPositiveRiskKeepsMultiplier(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindRisk, 40))

	res, err := e.Select(s, Position{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 40, res.Applied)
	assert.Equal(t, 1.0, res.Multiplier)
}

func TestMissResetsStreak(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindChain, 10))

	_, err := e.Select(s, Position{0, 0})
	require.NoError(t, err)
	require.NoError(t, e.Miss(s))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.ChainStreak)
	assert.Equal(t, 1, snap.MissedTurns)
	assert.Equal(t, 2, snap.TurnIndex)
	assert.Equal(t, 10, snap.Score)
}

func TestTurnsAreBounded(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 10))

	for i := range 8 {
		res, err := e.Select(s, Position{i / 6, i % 6})
		require.NoError(t, err)
		assert.Equal(t, i == 7, res.Exhausted)
	}

	_, err := e.Select(s, Position{5, 5})
	assert.ErrorIs(t, err, ErrRoundAlreadyResolved)
	assert.ErrorIs(t, e.Miss(s), ErrRoundAlreadyResolved)
	assert.Equal(t, 8, s.Snapshot().TurnIndex)
}

func TestResolve(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name    string
		value   int
		bank    time.Duration
		outcome State
		score   int
	}{
		{"just above goal", 13, 0, StateCleared, 104},
		{"above goal", 25, 0, StateCleared, 200},
		{"below goal", 10, 0, StateFailed, 80},
		{"speed bonus clears", 11, 8 * 6200 * time.Millisecond, StateCleared, 88 + 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, e, 1, filledGrid(6, KindNumber, tt.value))

			_, err := e.Resolve(s)
			require.ErrorIs(t, err, ErrRoundNotFinished)

			for i := range 8 {
				_, err := e.Select(s, Position{i / 6, i % 6})
				require.NoError(t, err)
			}
			s.Bank(tt.bank)

			res, err := e.Resolve(s)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, 100, res.RequiredGain)
			assert.Equal(t, tt.outcome, s.State())

			_, err = e.Resolve(s)
			assert.ErrorIs(t, err, ErrRoundAlreadyResolved, "resolution is one-shot")
		})
	}
}

func TestResolveExactGoalClears(t *testing.T) {
	cfg := numbersOnlyConfig(10)
	cfg.Goals.Bands[0] = config.GoalBand{Through: 1, Base: 80, From: 1}
	cfg.SpeedBonus.Enabled = false
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	require.Equal(t, 80, e.RequiredGain(1))

	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 10))
	for i := range 8 {
		_, err := e.Select(s, Position{i / 6, i % 6})
		require.NoError(t, err)
	}
	s.Bank(8 * 6200 * time.Millisecond)

	res, err := e.Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, 80, res.LevelGain)
	assert.Equal(t, 0, res.SpeedBonus)
	assert.Equal(t, StateCleared, res.Outcome, "gain equal to the goal clears")
}

func TestResolveUsesLevelBaseline(t *testing.T) {
	e := newTestEngine(t)
	s, err := e.NewSession(1, 5000, filledGrid(6, KindNumber, 10))
	require.NoError(t, err)

	for i := range 8 {
		_, err := e.Select(s, Position{i / 6, i % 6})
		require.NoError(t, err)
	}
	res, err := e.Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, res.Outcome, "only the gain of this level counts")
	assert.Equal(t, 5080, res.Score)
	assert.Equal(t, 80, res.LevelGain)
}

func TestResolveMissGate(t *testing.T) {
	cfg := numbersOnlyConfig(25)
	cfg.Misses.GateEnabled = true
	cfg.Misses.Allowed = 0
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 25))
	require.NoError(t, e.Miss(s))
	for i := range 7 {
		_, err := e.Select(s, Position{i / 6, i % 6})
		require.NoError(t, err)
	}

	res, err := e.Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, res.Outcome, "175 gain but one miss over the allowance")
	assert.False(t, res.Perfect())
}

func TestQuit(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 10))

	res, err := e.Quit(s)
	require.NoError(t, err)
	assert.Equal(t, StateQuit, res.Outcome)

	_, err = e.Select(s, Position{0, 0})
	assert.ErrorIs(t, err, ErrRoundAlreadyResolved)
	_, err = e.Quit(s)
	assert.ErrorIs(t, err, ErrRoundAlreadyResolved)
}

func TestNewSessionRejectsBadLevel(t *testing.T) {
	_, err := newTestEngine(t).NewSession(0, 0, filledGrid(6, KindNumber, 1))
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t)
	s := newTestSession(t, e, 1, filledGrid(6, KindNumber, 10))

	snap := s.Snapshot()
	snap.Grid[0][0].Consumed = true

	_, err := e.Select(s, Position{0, 0})
	assert.NoError(t, err, "mutating a snapshot must not affect the session")
}
