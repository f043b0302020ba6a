package mindgrid

// Estimate is the per-strategy breakdown of the feasibility estimate.
type Estimate struct {
	Number     int // Best Number tile every turn
	Chain      int // Best Chain tile every turn
	BonusChain int // Best Bonus for SetupTurns, then best Chain
	SetupTurns int // Setup turns of the best BonusChain line
	Risk       int // Best positive Risk tile every turn
}

// Max returns the best strategy total.
func (e Estimate) Max() int {
	return max(e.Number, e.Chain, e.BonusChain, e.Risk)
}

// EstimateMaxGain runs the greedy single-strategy simulations over a grid.
// Each strategy reuses its best tile every turn; exhaustion is not modeled,
// so this is an admission filter, not a solver.
func (e *Engine) EstimateMaxGain(grid Grid, turns int) Estimate {
	var (
		bestNumber, bestChain, bestBonus, bestRisk int
		hasNumber, hasChain, hasBonus, hasRisk     bool
	)

	for _, row := range grid {
		for _, t := range row {
			switch t.Kind {
			case KindNumber:
				if !hasNumber || t.Value > bestNumber {
					bestNumber, hasNumber = t.Value, true
				}
			case KindChain:
				if !hasChain || t.Value > bestChain {
					bestChain, hasChain = t.Value, true
				}
			case KindBonus:
				if !hasBonus || t.Value > bestBonus {
					bestBonus, hasBonus = t.Value, true
				}
			case KindRisk:
				if t.Value > 0 && (!hasRisk || t.Value > bestRisk) {
					bestRisk, hasRisk = t.Value, true
				}
			}
		}
	}

	var est Estimate
	if hasNumber {
		est.Number = bestNumber * turns
	}
	if hasRisk {
		est.Risk = bestRisk * turns
	}
	if hasChain {
		est.Chain = e.simulate(bestChain, 0, 0, turns)
	}
	if hasChain && hasBonus {
		for setup := 1; setup <= min(e.cfg.Fairness.MaxSetupTurns, turns); setup++ {
			if total := e.simulate(bestChain, bestBonus, setup, turns); total > est.BonusChain {
				est.BonusChain = total
				est.SetupTurns = setup
			}
		}
	}
	return est
}

// simulate plays setup bonus turns followed by chain turns with the scoring rules.
func (e *Engine) simulate(chainValue, bonusValue, setup, turns int) int {
	mult := 1.0
	streak := 0
	total := 0
	for t := range turns {
		var points int
		if t < setup {
			points, mult, streak = e.score(KindBonus, bonusValue, mult, streak)
		} else {
			points, mult, streak = e.score(KindChain, chainValue, mult, streak)
		}
		total += points
	}
	return total
}

// FairReport describes one GenerateFair call.
type FairReport struct {
	Grid      Grid
	Attempts  int
	Estimate  Estimate
	Required  int
	Exhausted bool // Bound reached without an admissible grid
}

// GenerateFair regenerates until the estimate meets the level goal, up to
// the configured attempt bound. On exhaustion the last candidate is used.
func (g *Generator) GenerateFair(level int) (Grid, error) {
	report, err := g.GenerateFairReport(level)
	if err != nil {
		return nil, err
	}
	return report.Grid, nil
}

// GenerateFairReport is GenerateFair with the admission details.
func (g *Generator) GenerateFairReport(level int) (FairReport, error) {
	profile, err := g.engine.Profile(level)
	if err != nil {
		return FairReport{}, err
	}

	report := FairReport{Required: g.engine.RequiredGain(level)}
	bound := g.engine.cfg.Fairness.MaxAttempts

	for report.Attempts < bound {
		grid, err := g.Generate(level)
		if err != nil {
			return FairReport{}, err
		}
		report.Attempts++
		report.Grid = grid
		report.Estimate = g.engine.EstimateMaxGain(grid, profile.Turns)

		if report.Estimate.Max() >= report.Required {
			return report, nil
		}
	}

	report.Exhausted = true
	g.logger.Debug("fairness bound exhausted",
		"level", level,
		"attempts", report.Attempts,
		"estimate", report.Estimate.Max(),
		"required", report.Required,
	)
	return report, nil
}
