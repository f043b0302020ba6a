package mindgrid

import (
	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/registry"
)

// Variant IDs.
const (
	VariantMindgrind = "mindgrind"
	VariantArena     = "arena"
)

func init() {
	registry.Register(registry.Variant{
		ID:      VariantMindgrind,
		Title:   "Mindgrind",
		Summary: "Current tuning: long runs, rarity tiles, masked risk late game",
	})
	registry.Register(registry.Variant{
		ID:      VariantArena,
		Title:   "Mindgrid Arena",
		Summary: "Gentler tuning: slower early timer, smaller tile values",
	})
}

// NewVariantEngine loads the variant config (customPath may be empty),
// applies the preset and builds an engine.
func NewVariantEngine(variant, customPath string, preset config.DifficultyPreset) (*Engine, error) {
	cfg, err := config.Load(variant, customPath)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	return NewEngine(cfg)
}
