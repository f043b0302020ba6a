// Package sim drives a Mindgrid run headlessly with a greedy bot. It is
// used to sanity-check tuning files without a terminal.
package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

// Options controls a simulation.
type Options struct {
	Levels     int           // Rounds to play, retries included
	StartLevel int           // 0 means 1
	Think      time.Duration // Time the bot spends on each pick
	Seed       int64
	Logger     *log.Logger
}

// Round is the outcome of one played round.
type Round struct {
	Attempt int
	Result  mindgrid.RoundResult
	Credits int // After resolution
}

// Report summarizes a simulation.
type Report struct {
	Rounds      []Round
	FinalScore  int
	BestLevel   int
	RetriesUsed int
}

// Cleared returns the number of cleared rounds.
func (r Report) Cleared() int {
	n := 0
	for _, rd := range r.Rounds {
		if rd.Result.Outcome == mindgrid.StateCleared {
			n++
		}
	}
	return n
}

// BestTile returns the available tile scoring the most points right now.
// Ties go to the first tile in row-major order.
func BestTile(e *mindgrid.Engine, snap mindgrid.Snapshot) (mindgrid.Tile, bool) {
	var (
		best   mindgrid.Tile
		points int
		found  bool
	)
	for _, t := range snap.Grid.Available() {
		p := e.PreviewPoints(t, snap)
		if !found || p > points {
			best, points, found = t, p, true
		}
	}
	return best, found
}

// Run plays up to opts.Levels rounds. A failed round spends a retry credit
// when one is available; otherwise the simulation stops.
func Run(engine *mindgrid.Engine, opts Options) (Report, error) {
	if opts.Levels <= 0 {
		opts.Levels = 1
	}
	if opts.StartLevel <= 0 {
		opts.StartLevel = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	clock := NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	gen := mindgrid.NewGenerator(engine, opts.Seed, mindgrid.WithLogger(opts.Logger))
	run := mindgrid.NewRun(engine, gen,
		mindgrid.WithClock(clock),
		mindgrid.WithRunLogger(opts.Logger),
	)
	defer run.Close()

	if err := run.Resume(opts.StartLevel, 0); err != nil {
		return Report{}, err
	}

	var rep Report
	attempt := 1
	for len(rep.Rounds) < opts.Levels {
		if err := playRound(run, clock, opts.Think); err != nil {
			return rep, err
		}

		res, ok := run.LastResult()
		if !ok {
			return rep, fmt.Errorf("sim: level %d ended without a result", opts.StartLevel)
		}
		rep.Rounds = append(rep.Rounds, Round{Attempt: attempt, Result: res, Credits: run.Credits()})
		rep.FinalScore = res.Score
		opts.Logger.Debug("round", "level", res.Level, "outcome", res.Outcome, "score", res.Score)

		if len(rep.Rounds) == opts.Levels {
			break
		}

		if res.Outcome == mindgrid.StateCleared {
			if err := run.NextLevel(); err != nil {
				return rep, err
			}
			attempt = 1
			continue
		}

		if err := run.Retry(); err != nil {
			if errors.Is(err, mindgrid.ErrNoRetryCredit) {
				break
			}
			return rep, err
		}
		rep.RetriesUsed++
		attempt++
	}

	_, rep.BestLevel = run.Best()
	return rep, nil
}

// playRound picks greedily until the round resolves.
func playRound(run *mindgrid.Run, clock *ManualClock, think time.Duration) error {
	engine := run.Engine()
	for {
		tok, ok := run.Token()
		if !ok {
			return nil
		}
		snap, _ := run.Snapshot()
		tile, found := BestTile(engine, snap)
		if !found {
			return fmt.Errorf("sim: no tile left on level %d turn %d", snap.Level, snap.TurnIndex)
		}

		clock.Advance(think)

		_, err := run.Select(tok, tile.Pos)
		if err != nil && !errors.Is(err, mindgrid.ErrStaleTurn) {
			return err
		}
	}
}
