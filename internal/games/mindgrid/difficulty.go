package mindgrid

import (
	"fmt"
	"math"
	"time"
)

// KindWeight is a spawn weight for one tile kind.
type KindWeight struct {
	Kind   Kind
	Weight int
}

// Profile describes the structure of a level.
type Profile struct {
	Level      int
	GridSize   int
	Turns      int
	TurnBudget time.Duration
	Weights    []KindWeight // Stable order, Number always first and positive
}

// TotalWeight returns the sum of all spawn weights.
func (p Profile) TotalWeight() int {
	total := 0
	for _, w := range p.Weights {
		total += w.Weight
	}
	return total
}

// Weight returns the spawn weight of a kind (0 when absent).
func (p Profile) Weight(k Kind) int {
	for _, w := range p.Weights {
		if w.Kind == k {
			return w.Weight
		}
	}
	return 0
}

// Profile returns the difficulty parameters for a level.
func (e *Engine) Profile(level int) (Profile, error) {
	if level <= 0 {
		return Profile{}, fmt.Errorf("%w: level %d must be positive", ErrPrecondition, level)
	}

	p := Profile{
		Level:      level,
		GridSize:   e.gridSize(level),
		Turns:      e.turns(level),
		TurnBudget: e.turnBudget(level),
	}

	p.Weights = append(p.Weights, KindWeight{Kind: KindNumber, Weight: e.cfg.Weights.Number})
	ramps := []struct {
		kind   Kind
		weight int
	}{
		{KindBonus, e.cfg.Weights.Bonus.At(level)},
		{KindChain, e.cfg.Weights.Chain.At(level)},
		{KindRisk, e.cfg.Weights.Risk.At(level)},
	}
	for _, r := range ramps {
		if r.weight > 0 {
			p.Weights = append(p.Weights, KindWeight{Kind: r.kind, Weight: r.weight})
		}
	}

	return p, nil
}

func (e *Engine) gridSize(level int) int {
	if e.cfg.Grid.LargeFromLevel > 0 && level >= e.cfg.Grid.LargeFromLevel {
		return e.cfg.Grid.LargeSize
	}
	return e.cfg.Grid.BaseSize
}

func (e *Engine) turns(level int) int {
	t := e.cfg.Turns
	if t.LevelsPerExtra <= 0 {
		return t.Base
	}
	return t.Base + min(t.MaxExtra, level/t.LevelsPerExtra)
}

func (e *Engine) turnBudget(level int) time.Duration {
	t := e.cfg.Timing
	ms := max(t.FloorMS, t.BaseMS-(level-1)*t.StepMS)
	return time.Duration(ms) * time.Millisecond
}

// TheoreticalMaxGain is the per-level goal ceiling, a step function of the turn count.
func (e *Engine) TheoreticalMaxGain(level int) int {
	turns := e.turns(max(1, level))
	for _, c := range e.cfg.Goals.Ceilings {
		if turns <= c.MaxTurns {
			return c.Gain
		}
	}
	return e.cfg.Goals.DefaultCeiling
}

// RequiredGain returns the points a level must gain to be cleared.
// Non-decreasing in level and never above TheoreticalMaxGain.
func (e *Engine) RequiredGain(level int) int {
	level = max(1, level)
	raw := e.rawGoal(level) * e.cfg.GoalScale()
	return min(roundHalfUp(raw), e.TheoreticalMaxGain(level))
}

// rawGoal evaluates the piecewise goal curve before scaling and capping.
func (e *Engine) rawGoal(level int) float64 {
	g := e.cfg.Goals
	for _, b := range g.Bands {
		if level <= b.Through {
			return float64(b.Base + b.Step*(level-b.From))
		}
	}
	extra := float64(level - g.Tail.After)
	return float64(g.Tail.Base) + g.Tail.Step*math.Log2(1+extra)
}

// SpeedBonus converts a time bank into end-of-level points: the goal times
// the fraction of the maximum bank saved, capped at MaxFraction of the goal.
func (e *Engine) SpeedBonus(level int, bank time.Duration) int {
	if !e.cfg.SpeedBonus.Enabled || bank <= 0 || level <= 0 {
		return 0
	}
	maxBank := time.Duration(e.turns(level)) * e.turnBudget(level)
	if maxBank <= 0 {
		return 0
	}
	saved := min(1, float64(bank)/float64(maxBank))
	return roundHalfUp(float64(e.RequiredGain(level)) * saved * e.cfg.SpeedBonus.MaxFraction)
}

// AllowedMisses returns the miss allowance for a level, or -1 when the
// miss gate is disabled.
func (e *Engine) AllowedMisses(level int) int {
	if !e.cfg.Misses.GateEnabled {
		return -1
	}
	return e.cfg.Misses.Allowed
}

// AwardsCredit reports whether clearing the level earns a retry credit.
func (e *Engine) AwardsCredit(level int) bool {
	c := e.cfg.Credits
	for _, m := range c.Milestones {
		if m == level {
			return true
		}
	}
	return c.Every > 0 && level >= c.EveryFrom && level%c.Every == 0
}

// rarityChance returns the probability that a grid for this level holds a rarity tile.
func (e *Engine) rarityChance(level int) float64 {
	return e.cfg.Rarity.Chance.At(level)
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
