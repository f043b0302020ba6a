// Package config provides YAML-based tuning for the Mindgrid engine:
// difficulty curves, tile tables, goal progression and leaderboard policy.
package config

import (
	"errors"
	"fmt"
	"math"
)

// MindgridConfig contains every tunable constant used by the engine.
// Variant difficulty tuning is a change here, never in the algorithms.
type MindgridConfig struct {
	Timing      TimingConfig      `yaml:"timing"`
	Grid        GridConfig        `yaml:"grid"`
	Turns       TurnsConfig       `yaml:"turns"`
	Weights     WeightsConfig     `yaml:"weights"`
	Values      ValuesConfig      `yaml:"values"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Goals       GoalsConfig       `yaml:"goals"`
	SpeedBonus  SpeedBonusConfig  `yaml:"speed_bonus"`
	Rarity      RarityConfig      `yaml:"rarity"`
	Fairness    FairnessConfig    `yaml:"fairness"`
	Misses      MissConfig        `yaml:"misses"`
	Credits     CreditsConfig     `yaml:"retry_credits"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Display     DisplayConfig     `yaml:"display"`
}

// TimingConfig is the clamped linear ramp for the per-turn time budget.
type TimingConfig struct {
	BaseMS  int `yaml:"base_ms"`  // Budget at level 1
	FloorMS int `yaml:"floor_ms"` // Never go below this
	StepMS  int `yaml:"step_ms"`  // Shaved off per level
}

// GridConfig defines the square grid dimension step.
type GridConfig struct {
	BaseSize       int `yaml:"base_size"`
	LargeSize      int `yaml:"large_size"`
	LargeFromLevel int `yaml:"large_from_level"`
}

// TurnsConfig defines the stepped turn count: base + min(max_extra, level/levels_per_extra).
type TurnsConfig struct {
	Base           int `yaml:"base"`
	MaxExtra       int `yaml:"max_extra"`
	LevelsPerExtra int `yaml:"levels_per_extra"`
}

// WeightsConfig holds spawn weights per tile kind.
type WeightsConfig struct {
	Number int        `yaml:"number"`
	Bonus  WeightRamp `yaml:"bonus"`
	Chain  WeightRamp `yaml:"chain"`
	Risk   WeightRamp `yaml:"risk"`
}

// WeightRamp is a stepwise weight: base + min(max_extra, level/per_levels).
type WeightRamp struct {
	Base      int `yaml:"base"`
	PerLevels int `yaml:"per_levels"`
	MaxExtra  int `yaml:"max_extra"`
}

// At returns the ramp weight for a level.
func (w WeightRamp) At(level int) int {
	if w.PerLevels <= 0 {
		return w.Base
	}
	return w.Base + min(w.MaxExtra, level/w.PerLevels)
}

// ValuesConfig holds the inclusive value ranges drawn per tile kind.
type ValuesConfig struct {
	Number ValueRange `yaml:"number"`
	Bonus  ValueRange `yaml:"bonus"` // multiplier steps
	Chain  ValueRange `yaml:"chain"`
	Risk   ValueRange `yaml:"risk"`
}

// ValueRange is an inclusive integer range.
type ValueRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ScoringConfig holds per-kind scoring steps.
type ScoringConfig struct {
	ChainStep       float64 `yaml:"chain_step"`        // Chain factor growth per streak
	BonusStep       float64 `yaml:"bonus_step"`        // Multiplier added per bonus step
	BonusBasePoints int     `yaml:"bonus_base_points"` // Points scored by a bonus tile itself
	RiskPenalty     float64 `yaml:"risk_penalty"`      // Multiplier lost on a negative risk tile
}

// GoalsConfig defines the required level gain curve.
type GoalsConfig struct {
	Bands          []GoalBand    `yaml:"bands"`
	Tail           GoalTail      `yaml:"tail"`
	Ceilings       []GoalCeiling `yaml:"ceilings"`
	DefaultCeiling int           `yaml:"default_ceiling"`
	Scale          float64       `yaml:"scale"` // Preset multiplier, 0 means 1
}

// GoalBand applies base + step*(level-from) for levels up to Through.
type GoalBand struct {
	Through int `yaml:"through"`
	Base    int `yaml:"base"`
	From    int `yaml:"from"`
	Step    int `yaml:"step"`
}

// GoalTail applies base + step*log2(1+level-after) beyond the last band.
type GoalTail struct {
	After int     `yaml:"after"`
	Base  int     `yaml:"base"`
	Step  float64 `yaml:"step"`
}

// GoalCeiling caps the goal for levels whose turn count is at most MaxTurns.
type GoalCeiling struct {
	MaxTurns int `yaml:"max_turns"`
	Gain     int `yaml:"gain"`
}

// SpeedBonusConfig controls the time bank conversion at round end.
type SpeedBonusConfig struct {
	Enabled     bool    `yaml:"enabled"`
	MaxFraction float64 `yaml:"max_fraction"` // Of the level goal
}

// RarityConfig controls the single rarity tile injection.
type RarityConfig struct {
	Chance RarityChance `yaml:"chance"`
	Tiers  []RarityTier `yaml:"tiers"`
}

// RarityChance is the level-dependent probability that a grid holds a rarity tile.
type RarityChance struct {
	Base     float64 `yaml:"base"`
	PerLevel float64 `yaml:"per_level"`
	Max      float64 `yaml:"max"`
}

// At returns the capped injection probability for a level.
func (c RarityChance) At(level int) float64 {
	p := c.Base + c.PerLevel*float64(level-1)
	return max(0, min(c.Max, p))
}

// RarityTier is one entry of the rarity table.
type RarityTier struct {
	Name     string `yaml:"name"`
	Value    int    `yaml:"value"`
	Weight   int    `yaml:"weight"`
	MinLevel int    `yaml:"min_level"`
}

// FairnessConfig bounds the grid admission loop.
type FairnessConfig struct {
	MaxAttempts   int `yaml:"max_attempts"`
	MaxSetupTurns int `yaml:"max_setup_turns"`
}

// MissConfig is the dormant miss-count gate. Misses are always counted.
type MissConfig struct {
	GateEnabled bool `yaml:"gate_enabled"`
	Allowed     int  `yaml:"allowed"`
}

// CreditsConfig defines when a cleared level awards a retry credit.
type CreditsConfig struct {
	Milestones []int `yaml:"milestones"`
	EveryFrom  int   `yaml:"every_from"`
	Every      int   `yaml:"every"`
}

// LeaderboardConfig is the submission policy applied on top of scores.
type LeaderboardConfig struct {
	MinSubmitScore int      `yaml:"min_submit_score"`
	DefaultName    string   `yaml:"default_name"`
	MaxNameLength  int      `yaml:"max_name_length"`
	BlockedWords   []string `yaml:"blocked_words"`
}

// DisplayConfig holds presentation-only switches.
type DisplayConfig struct {
	HideRiskFromLevel int `yaml:"hide_risk_from_level"` // 0 disables masking
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks invariants the engine relies on.
func (c MindgridConfig) Validate() error {
	switch {
	case c.Weights.Number <= 0:
		return fmt.Errorf("%w: number weight must be positive", ErrInvalidConfig)
	case c.Grid.BaseSize <= 0 || c.Grid.LargeSize < c.Grid.BaseSize:
		return fmt.Errorf("%w: grid sizes %d/%d", ErrInvalidConfig, c.Grid.BaseSize, c.Grid.LargeSize)
	case c.Turns.Base <= 0:
		return fmt.Errorf("%w: turn base must be positive", ErrInvalidConfig)
	case c.Timing.FloorMS <= 0 || c.Timing.BaseMS < c.Timing.FloorMS || c.Timing.StepMS < 0:
		return fmt.Errorf("%w: timing ramp %d..%d step %d", ErrInvalidConfig, c.Timing.BaseMS, c.Timing.FloorMS, c.Timing.StepMS)
	case c.Scoring.ChainStep <= 0 || c.Scoring.ChainStep >= 1:
		return fmt.Errorf("%w: chain step %v outside (0,1)", ErrInvalidConfig, c.Scoring.ChainStep)
	case c.Scoring.BonusStep <= 0 || c.Scoring.RiskPenalty < 0:
		return fmt.Errorf("%w: bonus/risk steps", ErrInvalidConfig)
	case len(c.Goals.Bands) == 0:
		return fmt.Errorf("%w: no goal bands", ErrInvalidConfig)
	case c.Goals.DefaultCeiling <= 0:
		return fmt.Errorf("%w: default ceiling must be positive", ErrInvalidConfig)
	case c.Fairness.MaxAttempts <= 0:
		return fmt.Errorf("%w: fairness attempts must be positive", ErrInvalidConfig)
	}

	ranges := map[string]ValueRange{
		"number": c.Values.Number,
		"bonus":  c.Values.Bonus,
		"chain":  c.Values.Chain,
		"risk":   c.Values.Risk,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s range %d..%d inverted", ErrInvalidConfig, name, r.Min, r.Max)
		}
	}
	if c.Values.Number.Min <= 0 || c.Values.Chain.Min <= 0 || c.Values.Bonus.Min <= 0 {
		return fmt.Errorf("%w: number, chain and bonus ranges must be positive", ErrInvalidConfig)
	}

	prev, prevGoal := 0, 0
	for i, b := range c.Goals.Bands {
		if b.Through <= prev {
			return fmt.Errorf("%w: goal bands must be ordered by level", ErrInvalidConfig)
		}
		if b.Step < 0 {
			return fmt.Errorf("%w: goal band through %d has a negative step", ErrInvalidConfig, b.Through)
		}
		if start := b.Base + b.Step*(prev+1-b.From); i > 0 && start < prevGoal {
			return fmt.Errorf("%w: goal drops to %d at level %d", ErrInvalidConfig, start, prev+1)
		}
		prevGoal = b.Base + b.Step*(b.Through-b.From)
		prev = b.Through
	}
	// The tail is evaluated from the first level past the last band.
	if c.Goals.Tail.Step < 0 || c.Goals.Tail.After > prev {
		return fmt.Errorf("%w: goal tail must start at or before level %d with a non-negative step", ErrInvalidConfig, prev)
	}
	if tail := float64(c.Goals.Tail.Base) + c.Goals.Tail.Step*math.Log2(float64(1+prev+1-c.Goals.Tail.After)); tail < float64(prevGoal) {
		return fmt.Errorf("%w: goal tail starts below %d at level %d", ErrInvalidConfig, prevGoal, prev+1)
	}

	prevTurns, prevGain := 0, 0
	for _, ceil := range c.Goals.Ceilings {
		if ceil.MaxTurns <= prevTurns || ceil.Gain < prevGain {
			return fmt.Errorf("%w: goal ceilings must grow with max_turns", ErrInvalidConfig)
		}
		prevTurns, prevGain = ceil.MaxTurns, ceil.Gain
	}
	if c.Goals.DefaultCeiling < prevGain {
		return fmt.Errorf("%w: default ceiling %d below %d", ErrInvalidConfig, c.Goals.DefaultCeiling, prevGain)
	}

	for _, t := range c.Rarity.Tiers {
		if t.Weight <= 0 || t.Value <= 0 {
			return fmt.Errorf("%w: rarity tier %q needs positive weight and value", ErrInvalidConfig, t.Name)
		}
	}
	return nil
}

// GoalScale returns the preset goal multiplier.
func (c MindgridConfig) GoalScale() float64 {
	if c.Goals.Scale <= 0 {
		return 1
	}
	return c.Goals.Scale
}
