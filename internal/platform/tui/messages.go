package tui

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

var hitMessages = []string{
	"Nice pick!",
	"Sharp!",
	"Locked in.",
	"Clean move.",
	"Good eye.",
}

var chainMessages = []string{
	"Chain grows!",
	"Keep it linked!",
	"Combo rising!",
}

var bonusMessages = []string{
	"Multiplier up!",
	"Powering up.",
	"Stacking bonus.",
}

var riskLossMessages = []string{
	"Ouch. That one bit back.",
	"Risky business.",
	"The gamble failed.",
}

var missMessages = []string{
	"Too slow!",
	"Time's up for that turn.",
	"Missed it.",
	"The clock wins this one.",
}

// feedbackFor picks a message for an accepted selection.
func feedbackFor(rng *rand.Rand, res mindgrid.TurnResult) string {
	t := res.Tile
	switch {
	case t.Kind.IsRarity():
		return fmt.Sprintf("%s tile! +%d", t.Kind.Label(), res.Applied)
	case t.Kind == mindgrid.KindRisk && res.Applied < 0:
		return fmt.Sprintf("%s %d", pick(rng, riskLossMessages), res.Applied)
	case t.Kind == mindgrid.KindChain && res.ChainStreak > 1:
		return fmt.Sprintf("%s x%d streak, +%d", pick(rng, chainMessages), res.ChainStreak, res.Applied)
	case t.Kind == mindgrid.KindBonus:
		return fmt.Sprintf("%s x%.2f", pick(rng, bonusMessages), res.Multiplier)
	default:
		return fmt.Sprintf("%s %+d", pick(rng, hitMessages), res.Applied)
	}
}

// missFeedback picks a message for a lapsed turn.
func missFeedback(rng *rand.Rand) string {
	return pick(rng, missMessages)
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}
