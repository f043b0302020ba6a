package mindgrid

// score applies one tile to the multiplier and chain streak and returns the
// applied points. The multiplier change of Bonus and negative Risk tiles
// takes effect before the tile's own points are multiplied.
func (e *Engine) score(kind Kind, value int, mult float64, streak int) (applied int, newMult float64, newStreak int) {
	s := e.cfg.Scoring
	base := 0

	switch kind {
	case KindChain:
		factor := 1 + float64(streak)*s.ChainStep
		base = roundHalfUp(float64(value) * factor)
		streak++

	case KindBonus:
		mult = round2(mult + float64(value)*s.BonusStep)
		base = s.BonusBasePoints

	case KindRisk:
		base = value
		if value < 0 {
			mult = max(1, round2(mult-s.RiskPenalty))
		}

	default: // Number and rarity tiers
		base = value
	}

	if kind != KindChain {
		streak = 0
	}

	return roundHalfUp(float64(base) * mult), mult, streak
}

// PreviewPoints returns the points a tile would score against a snapshot
// without touching any session.
func (e *Engine) PreviewPoints(t Tile, snap Snapshot) int {
	points, _, _ := e.score(t.Kind, t.Value, snap.Multiplier, snap.ChainStreak)
	return points
}
