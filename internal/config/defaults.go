package config

import (
	_ "embed"
)

//go:embed defaults/mindgrind.yaml
var defaultMindgrindYAML []byte

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultMindgrindConfig returns the current Mindgrind tuning.
func DefaultMindgrindConfig() MindgridConfig {
	return MindgridConfig{
		Timing: TimingConfig{
			BaseMS:  6200,
			FloorMS: 2200,
			StepMS:  70,
		},
		Grid: GridConfig{
			BaseSize:       6,
			LargeSize:      7,
			LargeFromLevel: 28,
		},
		Turns: TurnsConfig{
			Base:           8,
			MaxExtra:       4,
			LevelsPerExtra: 7,
		},
		Weights: WeightsConfig{
			Number: 6,
			Bonus:  WeightRamp{Base: 1, PerLevels: 4, MaxExtra: 3},
			Chain:  WeightRamp{Base: 1, PerLevels: 5, MaxExtra: 3},
			Risk:   WeightRamp{Base: 1, PerLevels: 6, MaxExtra: 4},
		},
		Values: ValuesConfig{
			Number: ValueRange{Min: 8, Max: 25},
			Bonus:  ValueRange{Min: 2, Max: 4},
			Chain:  ValueRange{Min: 7, Max: 18},
			Risk:   ValueRange{Min: -30, Max: 50},
		},
		Scoring: ScoringConfig{
			ChainStep:       0.35,
			BonusStep:       0.25,
			BonusBasePoints: 1,
			RiskPenalty:     0.5,
		},
		Goals: GoalsConfig{
			Bands: []GoalBand{
				{Through: 1, Base: 100, From: 1, Step: 0},
				{Through: 5, Base: 100, From: 1, Step: 15},
				{Through: 10, Base: 180, From: 6, Step: 20},
				{Through: 15, Base: 290, From: 11, Step: 25},
				{Through: 20, Base: 420, From: 16, Step: 30},
			},
			Tail: GoalTail{After: 20, Base: 570, Step: 35},
			Ceilings: []GoalCeiling{
				{MaxTurns: 8, Gain: 650},
				{MaxTurns: 10, Gain: 800},
			},
			DefaultCeiling: 950,
			Scale:          1,
		},
		SpeedBonus: SpeedBonusConfig{
			Enabled:     true,
			MaxFraction: 0.25,
		},
		Rarity: RarityConfig{
			Chance: RarityChance{Base: 0.04, PerLevel: 0.004, Max: 0.25},
			Tiers: []RarityTier{
				{Name: "rare", Value: 60, Weight: 40, MinLevel: 1},
				{Name: "epic", Value: 90, Weight: 25, MinLevel: 3},
				{Name: "legendary", Value: 130, Weight: 15, MinLevel: 6},
				{Name: "mythic", Value: 180, Weight: 10, MinLevel: 10},
				{Name: "relic", Value: 240, Weight: 6, MinLevel: 15},
				{Name: "exotic", Value: 320, Weight: 3, MinLevel: 20},
				{Name: "cosmic", Value: 450, Weight: 1, MinLevel: 30},
			},
		},
		Fairness: FairnessConfig{
			MaxAttempts:   30,
			MaxSetupTurns: 5,
		},
		Misses: MissConfig{
			GateEnabled: false,
			Allowed:     3,
		},
		Credits: CreditsConfig{
			Milestones: []int{5, 10, 20, 30},
			EveryFrom:  40,
			Every:      20,
		},
		Leaderboard: LeaderboardConfig{
			MinSubmitScore: 500,
			DefaultName:    "Guest",
			MaxNameLength:  24,
		},
		Display: DisplayConfig{
			HideRiskFromLevel: 55,
		},
	}
}

// DefaultArenaConfig returns the earlier, gentler Arena tuning.
// It shares the Mindgrind curves except for timing and tile values.
func DefaultArenaConfig() MindgridConfig {
	cfg := DefaultMindgrindConfig()
	cfg.Timing.BaseMS = 4200
	cfg.Values = ValuesConfig{
		Number: ValueRange{Min: 5, Max: 20},
		Bonus:  ValueRange{Min: 1, Max: 3},
		Chain:  ValueRange{Min: 5, Max: 12},
		Risk:   ValueRange{Min: -25, Max: 40},
	}
	cfg.Display.HideRiskFromLevel = 0
	return cfg
}

// DefaultConfig returns the hardcoded config for a variant ID.
func DefaultConfig(variant string) (MindgridConfig, bool) {
	switch variant {
	case "mindgrind":
		return DefaultMindgrindConfig(), true
	case "arena":
		return DefaultArenaConfig(), true
	default:
		return MindgridConfig{}, false
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case "mindgrind":
		return defaultMindgrindYAML
	case "arena":
		return defaultArenaYAML
	default:
		return nil
	}
}
