package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

func numbersEngine(t *testing.T, value int) *mindgrid.Engine {
	t.Helper()
	cfg := config.DefaultMindgrindConfig()
	cfg.Weights.Bonus = config.WeightRamp{}
	cfg.Weights.Chain = config.WeightRamp{}
	cfg.Weights.Risk = config.WeightRamp{}
	cfg.Values.Number = config.ValueRange{Min: value, Max: value}
	cfg.Rarity.Chance = config.RarityChance{}
	e, err := mindgrid.NewEngine(cfg)
	require.NoError(t, err)
	return e
}

func TestManualClockFiresInOrder(t *testing.T) {
	c := NewManualClock(time.Unix(0, 0))
	var fired []string
	c.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	c.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	stopped := c.AfterFunc(time.Second, func() { fired = append(fired, "x") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	c.Advance(500 * time.Millisecond)
	assert.Empty(t, fired)

	c.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, time.Unix(2, 500_000_000), c.Now())
}

func TestBestTilePrefersChainOverNumber(t *testing.T) {
	e, err := mindgrid.NewEngine(config.DefaultMindgrindConfig())
	require.NoError(t, err)

	snap := mindgrid.Snapshot{
		Multiplier: 1,
		Grid: mindgrid.Grid{
			{{Pos: mindgrid.Position{Row: 0, Col: 0}, Kind: mindgrid.KindNumber, Value: 10}},
			{{Pos: mindgrid.Position{Row: 1, Col: 0}, Kind: mindgrid.KindChain, Value: 12}},
		},
	}
	tile, ok := BestTile(e, snap)
	require.True(t, ok)
	assert.Equal(t, mindgrid.KindChain, tile.Kind)

	snap.Grid[1][0].Consumed = true
	tile, ok = BestTile(e, snap)
	require.True(t, ok)
	assert.Equal(t, mindgrid.KindNumber, tile.Kind)

	snap.Grid[0][0].Consumed = true
	_, ok = BestTile(e, snap)
	assert.False(t, ok)
}

func TestRunClearsEveryLevel(t *testing.T) {
	e := numbersEngine(t, 25)

	rep, err := Run(e, Options{Levels: 3, Seed: 1, Think: time.Second})
	require.NoError(t, err)
	require.Len(t, rep.Rounds, 3)
	for i, rd := range rep.Rounds {
		assert.Equal(t, mindgrid.StateCleared, rd.Result.Outcome)
		assert.Equal(t, i+1, rd.Result.Level)
		assert.Zero(t, rd.Result.MissedTurns)
		assert.Equal(t, 1, rd.Attempt)
	}
	assert.Equal(t, 3, rep.Cleared())
	assert.Equal(t, 3, rep.BestLevel)
	assert.Equal(t, rep.Rounds[2].Result.Score, rep.FinalScore)
}

func TestRunSlowBotMissesEveryTurn(t *testing.T) {
	e := numbersEngine(t, 25)

	rep, err := Run(e, Options{Levels: 5, Seed: 1, Think: time.Minute})
	require.NoError(t, err)
	require.Len(t, rep.Rounds, 1)

	res := rep.Rounds[0].Result
	assert.Equal(t, mindgrid.StateFailed, res.Outcome)
	assert.Equal(t, 8, res.MissedTurns)
	assert.Zero(t, res.LevelGain)
	assert.Zero(t, rep.RetriesUsed)
	assert.Zero(t, rep.BestLevel)
}

func TestRunSpendsRetryCredit(t *testing.T) {
	cfg := config.DefaultMindgrindConfig()
	cfg.Weights.Bonus = config.WeightRamp{}
	cfg.Weights.Chain = config.WeightRamp{}
	cfg.Weights.Risk = config.WeightRamp{}
	cfg.Values.Number = config.ValueRange{Min: 25, Max: 25}
	cfg.Rarity.Chance = config.RarityChance{}
	cfg.Credits = config.CreditsConfig{Milestones: []int{1}}
	// Level 2 asks for more than eight 25-point picks can give.
	cfg.Goals.Bands = []config.GoalBand{
		{Through: 1, Base: 100, From: 1},
		{Through: 5, Base: 400, From: 2},
	}
	cfg.Goals.Tail.After = 5
	e, err := mindgrid.NewEngine(cfg)
	require.NoError(t, err)

	rep, err := Run(e, Options{Levels: 10, Seed: 1})
	require.NoError(t, err)
	require.Len(t, rep.Rounds, 3)

	assert.Equal(t, mindgrid.StateCleared, rep.Rounds[0].Result.Outcome)
	assert.Equal(t, 1, rep.Rounds[0].Credits)

	assert.Equal(t, mindgrid.StateFailed, rep.Rounds[1].Result.Outcome)
	assert.Equal(t, 2, rep.Rounds[1].Result.Level)
	assert.Equal(t, 1, rep.Rounds[1].Attempt)

	assert.Equal(t, mindgrid.StateFailed, rep.Rounds[2].Result.Outcome)
	assert.Equal(t, 2, rep.Rounds[2].Attempt)
	assert.Equal(t, 0, rep.Rounds[2].Credits)
	assert.Equal(t, 1, rep.RetriesUsed)

	// The retry restarts from the score banked at the start of level 2.
	first := rep.Rounds[0].Result.Score
	assert.Equal(t, first+rep.Rounds[2].Result.LevelGain, rep.Rounds[2].Result.Score)
}
