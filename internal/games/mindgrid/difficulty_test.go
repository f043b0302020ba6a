package mindgrid

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mindgrid/internal/config"
)

func TestProfileMonotonic(t *testing.T) {
	e := newTestEngine(t)

	prev, err := e.Profile(1)
	require.NoError(t, err)

	for level := 2; level <= 200; level++ {
		p, err := e.Profile(level)
		require.NoError(t, err)

		assert.LessOrEqual(t, p.TurnBudget, prev.TurnBudget, "budget at level %d", level)
		assert.GreaterOrEqual(t, p.TurnBudget, 2200*time.Millisecond, "budget floor at level %d", level)
		assert.GreaterOrEqual(t, p.GridSize, prev.GridSize, "grid size at level %d", level)
		assert.GreaterOrEqual(t, p.Turns, prev.Turns, "turns at level %d", level)
		assert.Equal(t, KindNumber, p.Weights[0].Kind)
		assert.Positive(t, p.Weights[0].Weight)

		prev = p
	}
}

func TestProfileValues(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		level  int
		size   int
		turns  int
		budget time.Duration
		bonus  int
		chain  int
		risk   int
	}{
		{1, 6, 8, 6200 * time.Millisecond, 1, 1, 1},
		{7, 6, 9, 5780 * time.Millisecond, 2, 2, 2},
		{28, 7, 12, 4310 * time.Millisecond, 4, 4, 5},
		{100, 7, 12, 2200 * time.Millisecond, 4, 4, 5},
	}

	for _, tt := range tests {
		p, err := e.Profile(tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.size, p.GridSize, "level %d size", tt.level)
		assert.Equal(t, tt.turns, p.Turns, "level %d turns", tt.level)
		assert.Equal(t, tt.budget, p.TurnBudget, "level %d budget", tt.level)
		assert.Equal(t, 6, p.Weight(KindNumber))
		assert.Equal(t, tt.bonus, p.Weight(KindBonus), "level %d bonus weight", tt.level)
		assert.Equal(t, tt.chain, p.Weight(KindChain), "level %d chain weight", tt.level)
		assert.Equal(t, tt.risk, p.Weight(KindRisk), "level %d risk weight", tt.level)
	}
}

func TestProfileRejectsNonPositiveLevel(t *testing.T) {
	e := newTestEngine(t)
	for _, level := range []int{0, -3} {
		_, err := e.Profile(level)
		assert.True(t, errors.Is(err, ErrPrecondition), "level %d: %v", level, err)
	}
}

func TestRequiredGain(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 115},
		{5, 160},
		{6, 180},
		{10, 260},
		{11, 290},
		{16, 420},
		{20, 540},
		{21, 605},
		{30, 691},
		{100, 792},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.RequiredGain(tt.level), "RequiredGain(%d)", tt.level)
	}
}

func TestRequiredGainBoundedAndNonDecreasing(t *testing.T) {
	for _, preset := range []config.DifficultyPreset{config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard} {
		cfg := config.DefaultMindgrindConfig()
		config.ApplyPreset(&cfg, preset)
		e, err := NewEngine(cfg)
		require.NoError(t, err)

		prev := 0
		for level := 1; level <= 500; level++ {
			got := e.RequiredGain(level)
			assert.GreaterOrEqual(t, got, prev, "%s: level %d", preset, level)
			assert.LessOrEqual(t, got, e.TheoreticalMaxGain(level), "%s: level %d", preset, level)
			prev = got
		}
	}
}

func TestTheoreticalMaxGain(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, 650, e.TheoreticalMaxGain(1))  // 8 turns
	assert.Equal(t, 800, e.TheoreticalMaxGain(7))  // 9 turns
	assert.Equal(t, 800, e.TheoreticalMaxGain(14)) // 10 turns
	assert.Equal(t, 950, e.TheoreticalMaxGain(21)) // 11 turns
}

func TestSpeedBonus(t *testing.T) {
	e := newTestEngine(t)
	full := 8 * 6200 * time.Millisecond

	assert.Equal(t, 0, e.SpeedBonus(1, 0))
	assert.Equal(t, 25, e.SpeedBonus(1, full))
	assert.Equal(t, 25, e.SpeedBonus(1, 2*full), "capped at the max bank")
	assert.Equal(t, 13, e.SpeedBonus(1, full/2), "12.5 rounds half up")

	cfg := config.DefaultMindgrindConfig()
	cfg.SpeedBonus.Enabled = false
	off, err := NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, off.SpeedBonus(1, full))
}

func TestAwardsCredit(t *testing.T) {
	e := newTestEngine(t)

	for _, level := range []int{5, 10, 20, 30, 40, 60, 80, 100} {
		assert.True(t, e.AwardsCredit(level), "level %d", level)
	}
	for _, level := range []int{1, 4, 6, 15, 25, 41, 50, 70} {
		assert.False(t, e.AwardsCredit(level), "level %d", level)
	}
}

func TestAllowedMisses(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, -1, e.AllowedMisses(1), "gate disabled by default")

	cfg := config.DefaultMindgrindConfig()
	cfg.Misses.GateEnabled = true
	gated, err := NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, gated.AllowedMisses(1))
}

func TestNewEngineRejectsUnknownTier(t *testing.T) {
	cfg := config.DefaultMindgrindConfig()
	cfg.Rarity.Tiers = append(cfg.Rarity.Tiers, config.RarityTier{Name: "shiny", Value: 10, Weight: 1})
	_, err := NewEngine(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 14, roundHalfUp(13.5))
	assert.Equal(t, 2, roundHalfUp(1.5))
	assert.Equal(t, -15, roundHalfUp(-15))
	assert.Equal(t, -2, roundHalfUp(-2.5), "halves go toward +Inf")
	assert.Equal(t, 1.35, round2(1.3499999))
}
