package mindgrid

import "errors"

// Caller misuse errors. None are transient; retrying the same call fails the same way.
var (
	// ErrInvalidSelection is returned for a consumed tile or a position outside the grid.
	ErrInvalidSelection = errors.New("mindgrid: invalid selection")

	// ErrRoundAlreadyResolved is returned when a turn or resolution is applied
	// to a session that has exhausted its turns or is no longer in progress.
	ErrRoundAlreadyResolved = errors.New("mindgrid: round already resolved")

	// ErrRoundNotFinished is returned when resolution is requested with turns remaining.
	ErrRoundNotFinished = errors.New("mindgrid: round not finished")

	// ErrPrecondition is returned for a non-positive level.
	ErrPrecondition = errors.New("mindgrid: precondition violated")

	// ErrStaleTurn is returned when a selection or timeout targets a turn
	// that is no longer the open turn of the run.
	ErrStaleTurn = errors.New("mindgrid: stale turn")

	// ErrRunNotActive is returned when a run has no level in play.
	ErrRunNotActive = errors.New("mindgrid: run not active")

	// ErrNotCleared is returned when advancing past a level that was not cleared.
	ErrNotCleared = errors.New("mindgrid: level not cleared")

	// ErrNoRetryCredit is returned when retrying a failed level without credits.
	ErrNoRetryCredit = errors.New("mindgrid: no retry credit")
)
