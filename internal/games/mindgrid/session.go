package mindgrid

import (
	"fmt"
	"time"
)

// State is the round state of a session.
type State int

const (
	StateInProgress State = iota
	StateCleared
	StateFailed
	StateQuit
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateCleared:
		return "cleared"
	case StateFailed:
		return "failed"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Session is the mutable state of one level attempt.
// It is created at level start and replaced at every level transition.
type Session struct {
	level             int
	turns             int
	budget            time.Duration
	required          int
	turnIndex         int
	score             int
	scoreAtLevelStart int
	multiplier        float64
	chainStreak       int
	missedTurns       int
	timeBank          time.Duration
	lastDelta         int
	speedBonus        int
	state             State
	grid              Grid
}

// TurnResult describes one accepted selection.
type TurnResult struct {
	Tile        Tile
	Applied     int
	Multiplier  float64
	ChainStreak int
	Score       int
	TurnIndex   int  // Turns completed after this selection
	Exhausted   bool // No turns remain; the round must be resolved
}

// RoundResult is the outcome of a resolved or quit round.
type RoundResult struct {
	Outcome      State
	Level        int
	Score        int // Cumulative run score, speed bonus included
	LevelGain    int
	RequiredGain int
	SpeedBonus   int
	MissedTurns  int
}

// Perfect reports whether the round was cleared without a missed turn.
func (r RoundResult) Perfect() bool {
	return r.Outcome == StateCleared && r.MissedTurns == 0
}

// NewSession starts a level attempt over grid with the run's cumulative score.
func (e *Engine) NewSession(level, score int, grid Grid) (*Session, error) {
	profile, err := e.Profile(level)
	if err != nil {
		return nil, err
	}
	return &Session{
		level:             level,
		turns:             profile.Turns,
		budget:            profile.TurnBudget,
		required:          e.RequiredGain(level),
		score:             score,
		scoreAtLevelStart: score,
		multiplier:        1,
		state:             StateInProgress,
		grid:              grid,
	}, nil
}

// turnOpen checks that a turn may still be played.
func (s *Session) turnOpen() error {
	if s.state != StateInProgress || s.turnIndex >= s.turns {
		return fmt.Errorf("%w: level %d turn %d/%d (%s)", ErrRoundAlreadyResolved, s.level, s.turnIndex, s.turns, s.state)
	}
	return nil
}

// Select applies the tile at pos to the session and consumes it.
// A rejected call leaves the session untouched.
func (e *Engine) Select(s *Session, pos Position) (TurnResult, error) {
	if err := s.turnOpen(); err != nil {
		return TurnResult{}, err
	}
	tile, ok := s.grid.At(pos)
	if !ok {
		return TurnResult{}, fmt.Errorf("%w: %s is outside the %dx%d grid", ErrInvalidSelection, pos, s.grid.Size(), s.grid.Size())
	}
	if tile.Consumed {
		return TurnResult{}, fmt.Errorf("%w: tile %s already consumed", ErrInvalidSelection, pos)
	}

	applied, mult, streak := e.score(tile.Kind, tile.Value, s.multiplier, s.chainStreak)

	tile.Consumed = true
	s.multiplier = mult
	s.chainStreak = streak
	s.score += applied
	s.lastDelta = applied
	s.turnIndex++

	return TurnResult{
		Tile:        *tile,
		Applied:     applied,
		Multiplier:  s.multiplier,
		ChainStreak: s.chainStreak,
		Score:       s.score,
		TurnIndex:   s.turnIndex,
		Exhausted:   s.turnIndex >= s.turns,
	}, nil
}

// Miss records a turn that lapsed without a selection.
func (e *Engine) Miss(s *Session) error {
	if err := s.turnOpen(); err != nil {
		return err
	}
	s.turnIndex++
	s.chainStreak = 0
	s.missedTurns++
	s.lastDelta = 0
	return nil
}

// Bank adds unused turn time to the session's time bank.
func (s *Session) Bank(saved time.Duration) {
	if saved > 0 {
		s.timeBank += saved
	}
}

// Resolve decides the round once every turn is played. The speed bonus is
// added to the score before the gate check. Resolution is one-shot.
func (e *Engine) Resolve(s *Session) (RoundResult, error) {
	if s.state != StateInProgress {
		return RoundResult{}, fmt.Errorf("%w: level %d is %s", ErrRoundAlreadyResolved, s.level, s.state)
	}
	if s.turnIndex < s.turns {
		return RoundResult{}, fmt.Errorf("%w: %d of %d turns played", ErrRoundNotFinished, s.turnIndex, s.turns)
	}

	s.speedBonus = e.SpeedBonus(s.level, s.timeBank)
	s.score += s.speedBonus

	gain := s.score - s.scoreAtLevelStart
	cleared := gain >= s.required
	if allowed := e.AllowedMisses(s.level); allowed >= 0 && s.missedTurns > allowed {
		cleared = false
	}

	s.state = StateFailed
	if cleared {
		s.state = StateCleared
	}

	return s.result(), nil
}

// Quit terminates an in-progress round.
func (e *Engine) Quit(s *Session) (RoundResult, error) {
	if s.state != StateInProgress {
		return RoundResult{}, fmt.Errorf("%w: level %d is %s", ErrRoundAlreadyResolved, s.level, s.state)
	}
	s.state = StateQuit
	return s.result(), nil
}

func (s *Session) result() RoundResult {
	return RoundResult{
		Outcome:      s.state,
		Level:        s.level,
		Score:        s.score,
		LevelGain:    s.score - s.scoreAtLevelStart,
		RequiredGain: s.required,
		SpeedBonus:   s.speedBonus,
		MissedTurns:  s.missedTurns,
	}
}

// Level returns the level being attempted.
func (s *Session) Level() int { return s.level }

// State returns the round state.
func (s *Session) State() State { return s.state }

// TurnBudget returns the per-turn time budget.
func (s *Session) TurnBudget() time.Duration { return s.budget }

// Exhausted reports whether every turn has been played.
func (s *Session) Exhausted() bool { return s.turnIndex >= s.turns }
