// Package mindgrid implements the Mindgrid turn-based tile scoring engine:
// difficulty profiles, weighted grid generation, fairness admission,
// and the per-level session state machine.
//
// The engine performs no I/O. Timers, rendering and persistence live in
// the platform layer, which drives a Run.
package mindgrid

import "strings"

// Kind is the closed category of a tile.
type Kind int

const (
	KindNumber Kind = iota
	KindBonus
	KindChain
	KindRisk

	// Rarity tiers. At most one per grid, scored like Number.
	KindRare
	KindEpic
	KindLegendary
	KindMythic
	KindRelic
	KindExotic
	KindCosmic
)

// BaseKinds is the stable enumeration order used by the weighted draw.
var BaseKinds = []Kind{KindNumber, KindBonus, KindChain, KindRisk}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBonus:
		return "bonus"
	case KindChain:
		return "chain"
	case KindRisk:
		return "risk"
	case KindRare:
		return "rare"
	case KindEpic:
		return "epic"
	case KindLegendary:
		return "legendary"
	case KindMythic:
		return "mythic"
	case KindRelic:
		return "relic"
	case KindExotic:
		return "exotic"
	case KindCosmic:
		return "cosmic"
	default:
		return "unknown"
	}
}

// Label returns a short uppercase tag for display.
func (k Kind) Label() string {
	switch k {
	case KindNumber:
		return "NUM"
	case KindLegendary:
		return "LEGEND"
	default:
		return strings.ToUpper(k.String())
	}
}

// IsRarity reports whether the kind is a rarity tier.
func (k Kind) IsRarity() bool {
	return k >= KindRare && k <= KindCosmic
}

// ParseRarity maps a rarity tier name to its kind.
// "legend" is accepted as an alias of "legendary".
func ParseRarity(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rare":
		return KindRare, true
	case "epic":
		return KindEpic, true
	case "legendary", "legend":
		return KindLegendary, true
	case "mythic":
		return KindMythic, true
	case "relic":
		return KindRelic, true
	case "exotic":
		return KindExotic, true
	case "cosmic":
		return KindCosmic, true
	default:
		return 0, false
	}
}
