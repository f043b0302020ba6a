package mindgrid

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/mindgrid/internal/config"
)

// rarityTier is a config tier resolved to its kind.
type rarityTier struct {
	kind     Kind
	value    int
	weight   int
	minLevel int
}

// Engine holds the tuning and exposes the pure rules: difficulty profiles,
// goal curve, scoring and session transitions. It is safe for concurrent use.
type Engine struct {
	cfg   config.MindgridConfig
	tiers []rarityTier
}

// NewEngine validates the config and builds an engine.
func NewEngine(cfg config.MindgridConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tiers := make([]rarityTier, 0, len(cfg.Rarity.Tiers))
	for _, t := range cfg.Rarity.Tiers {
		kind, ok := ParseRarity(t.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown rarity tier %q", config.ErrInvalidConfig, t.Name)
		}
		tiers = append(tiers, rarityTier{
			kind:     kind,
			value:    t.Value,
			weight:   t.Weight,
			minLevel: max(1, t.MinLevel),
		})
	}

	return &Engine{cfg: cfg, tiers: tiers}, nil
}

// Config returns a copy of the engine tuning.
func (e *Engine) Config() config.MindgridConfig {
	cfg := e.cfg
	cfg.Goals.Bands = slices.Clone(e.cfg.Goals.Bands)
	cfg.Goals.Ceilings = slices.Clone(e.cfg.Goals.Ceilings)
	cfg.Rarity.Tiers = slices.Clone(e.cfg.Rarity.Tiers)
	return cfg
}

// RarityValue returns the fixed point value of a rarity tier, or false if
// the tier is not in the table.
func (e *Engine) RarityValue(k Kind) (int, bool) {
	for _, t := range e.tiers {
		if t.kind == k {
			return t.value, true
		}
	}
	return 0, false
}
