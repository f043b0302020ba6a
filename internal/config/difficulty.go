package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Goals stay capped by the per-level ceiling whatever the scale.
func ApplyPreset(cfg *MindgridConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseMS += 1000
		cfg.Timing.FloorMS += 500
		cfg.Goals.Scale = 0.85
	case DifficultyHard:
		cfg.Timing.BaseMS = max(cfg.Timing.FloorMS, cfg.Timing.BaseMS-1000)
		cfg.Timing.StepMS += 10
		cfg.Goals.Scale = 1.15
	}
}
