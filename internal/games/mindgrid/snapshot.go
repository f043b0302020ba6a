package mindgrid

import "time"

// Snapshot captures the complete session state for rendering and tests.
type Snapshot struct {
	Level             int
	TurnIndex         int
	Turns             int
	Score             int
	ScoreAtLevelStart int
	LevelGain         int
	RequiredGain      int
	Multiplier        float64
	ChainStreak       int
	MissedTurns       int
	LastDelta         int
	TimeBank          time.Duration
	TurnBudget        time.Duration
	SpeedBonus        int
	State             State
	Grid              Grid
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Level:             s.level,
		TurnIndex:         s.turnIndex,
		Turns:             s.turns,
		Score:             s.score,
		ScoreAtLevelStart: s.scoreAtLevelStart,
		LevelGain:         s.score - s.scoreAtLevelStart,
		RequiredGain:      s.required,
		Multiplier:        s.multiplier,
		ChainStreak:       s.chainStreak,
		MissedTurns:       s.missedTurns,
		LastDelta:         s.lastDelta,
		TimeBank:          s.timeBank,
		TurnBudget:        s.budget,
		SpeedBonus:        s.speedBonus,
		State:             s.state,
		Grid:              s.grid.Clone(),
	}
}
