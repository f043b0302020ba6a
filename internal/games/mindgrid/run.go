package mindgrid

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var runIDs atomic.Uint64

// TurnToken identifies one open turn. A selection or timeout carrying a
// token that is not the current open turn is rejected.
type TurnToken struct {
	Run     uint64
	Level   int
	Attempt int
	Turn    int
}

// EventKind is the type of a Run event.
type EventKind int

const (
	EventTurnMissed EventKind = iota
	EventRoundResolved
)

// Event is emitted by a Run after its lock is released.
type Event struct {
	Kind     EventKind
	Token    TurnToken // Turn that produced the event
	Result   RoundResult
	Snapshot Snapshot
}

// RunOption configures a Run.
type RunOption func(*Run)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) RunOption {
	return func(r *Run) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithEventHandler sets the callback receiving missed turns and resolutions.
// It is called without the run lock held, possibly from a timer goroutine.
func WithEventHandler(fn func(Event)) RunOption {
	return func(r *Run) { r.onEvent = fn }
}

// WithRunLogger sets the run logger.
func WithRunLogger(l *log.Logger) RunOption {
	return func(r *Run) {
		if l != nil {
			r.logger = l
		}
	}
}

// Run drives consecutive sessions of one play-through: it arms the turn
// timer, banks unused time, resolves rounds and handles level transitions,
// retry credits and resume. All methods are safe for concurrent use.
type Run struct {
	mu sync.Mutex

	engine  *Engine
	gen     *Generator
	clock   Clock
	onEvent func(Event)
	logger  *log.Logger

	id        uint64
	attempt   int
	session   *Session
	timer     Timer
	turnStart time.Time
	last      *RoundResult
	credits   int
	bestScore int
	bestLevel int
	closed    bool
}

// NewRun creates an idle run. Call Start or Resume to enter a level.
func NewRun(engine *Engine, gen *Generator, opts ...RunOption) *Run {
	r := &Run{
		engine: engine,
		gen:    gen,
		clock:  realClock{},
		logger: log.New(io.Discard),
		id:     runIDs.Add(1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins a fresh play-through at level 1 with zero score.
func (r *Run) Start() error {
	return r.Resume(1, 0)
}

// Resume begins at level with score as the level baseline.
func (r *Run) Resume(level, score int) error {
	if level <= 0 {
		return fmt.Errorf("%w: level %d must be positive", ErrPrecondition, level)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunNotActive
	}
	return r.enterLocked(level, max(0, score))
}

// NextLevel enters the level after a cleared round.
func (r *Run) NextLevel() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.last == nil {
		return ErrRunNotActive
	}
	if r.last.Outcome != StateCleared {
		return fmt.Errorf("%w: level %d is %s", ErrNotCleared, r.last.Level, r.last.Outcome)
	}
	return r.enterLocked(r.last.Level+1, r.last.Score)
}

// Retry spends a credit to replay a failed level from its starting score.
func (r *Run) Retry() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.last == nil || r.last.Outcome != StateFailed {
		return ErrRunNotActive
	}
	if r.credits <= 0 {
		return ErrNoRetryCredit
	}
	r.credits--
	r.logger.Info("retry credit spent", "level", r.last.Level, "credits", r.credits)
	return r.enterLocked(r.last.Level, r.last.Score-r.last.LevelGain)
}

// enterLocked generates a fair grid, opens a session and arms the first turn.
func (r *Run) enterLocked(level, score int) error {
	r.stopTimerLocked()

	grid, err := r.gen.GenerateFair(level)
	if err != nil {
		return err
	}
	s, err := r.engine.NewSession(level, score, grid)
	if err != nil {
		return err
	}

	r.session = s
	r.last = nil
	r.attempt++
	r.armLocked()
	r.logger.Debug("level started", "level", level, "score", score, "attempt", r.attempt)
	return nil
}

// Select plays the tile at pos for the turn identified by tok.
func (r *Run) Select(tok TurnToken, pos Position) (TurnResult, error) {
	r.mu.Lock()
	if err := r.checkTokenLocked(tok); err != nil {
		r.mu.Unlock()
		return TurnResult{}, err
	}

	res, err := r.engine.Select(r.session, pos)
	if err != nil {
		r.mu.Unlock()
		return TurnResult{}, err
	}

	r.stopTimerLocked()
	elapsed := r.clock.Now().Sub(r.turnStart)
	r.session.Bank(r.session.TurnBudget() - elapsed)

	var events []Event
	if res.Exhausted {
		events = r.resolveLocked(tok)
	} else {
		r.armLocked()
	}
	r.mu.Unlock()

	r.dispatch(events)
	return res, nil
}

// Timeout records a missed turn. It is called by the armed timer and is
// rejected with ErrStaleTurn when the turn has already closed.
func (r *Run) Timeout(tok TurnToken) error {
	r.mu.Lock()
	if err := r.checkTokenLocked(tok); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := r.engine.Miss(r.session); err != nil {
		r.mu.Unlock()
		return err
	}
	r.timer = nil

	events := []Event{{Kind: EventTurnMissed, Token: tok, Snapshot: r.session.Snapshot()}}
	if r.session.Exhausted() {
		events = append(events, r.resolveLocked(tok)...)
	} else {
		r.armLocked()
	}
	r.mu.Unlock()

	r.dispatch(events)
	return nil
}

// Quit abandons the level in play.
func (r *Run) Quit() (RoundResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil || r.session.State() != StateInProgress {
		return RoundResult{}, ErrRunNotActive
	}
	r.stopTimerLocked()
	res, err := r.engine.Quit(r.session)
	if err != nil {
		return RoundResult{}, err
	}
	r.recordLocked(res)
	return res, nil
}

// Close stops the timer. The run cannot be restarted afterwards.
func (r *Run) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimerLocked()
	r.closed = true
}

func (r *Run) resolveLocked(tok TurnToken) []Event {
	res, err := r.engine.Resolve(r.session)
	if err != nil {
		r.logger.Error("resolve failed", "level", r.session.Level(), "err", err)
		return nil
	}
	r.recordLocked(res)
	if res.Outcome == StateCleared && r.engine.AwardsCredit(res.Level) {
		r.credits++
		r.logger.Info("retry credit earned", "level", res.Level, "credits", r.credits)
	}
	r.logger.Debug("round resolved",
		"level", res.Level,
		"outcome", res.Outcome,
		"gain", res.LevelGain,
		"required", res.RequiredGain,
		"speed_bonus", res.SpeedBonus,
	)
	return []Event{{Kind: EventRoundResolved, Token: tok, Result: res, Snapshot: r.session.Snapshot()}}
}

func (r *Run) recordLocked(res RoundResult) {
	r.last = &res
	r.bestScore = max(r.bestScore, res.Score)
	if res.Outcome == StateCleared {
		r.bestLevel = max(r.bestLevel, res.Level)
	}
}

func (r *Run) checkTokenLocked(tok TurnToken) error {
	if r.closed || r.session == nil {
		return ErrRunNotActive
	}
	cur, ok := r.tokenLocked()
	if !ok || cur != tok {
		return fmt.Errorf("%w: %+v", ErrStaleTurn, tok)
	}
	return nil
}

func (r *Run) tokenLocked() (TurnToken, bool) {
	if r.session == nil || r.session.State() != StateInProgress || r.session.Exhausted() {
		return TurnToken{}, false
	}
	return TurnToken{
		Run:     r.id,
		Level:   r.session.Level(),
		Attempt: r.attempt,
		Turn:    r.session.turnIndex,
	}, true
}

// armLocked opens the current turn: start instant plus one timer.
func (r *Run) armLocked() {
	tok, ok := r.tokenLocked()
	if !ok {
		return
	}
	r.turnStart = r.clock.Now()
	r.timer = r.clock.AfterFunc(r.session.TurnBudget(), func() {
		_ = r.Timeout(tok)
	})
}

func (r *Run) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Run) dispatch(events []Event) {
	if r.onEvent == nil {
		return
	}
	for _, ev := range events {
		r.onEvent(ev)
	}
}

// Token returns the open turn, or false when no turn is open.
func (r *Run) Token() (TurnToken, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokenLocked()
}

// Snapshot returns the state of the current session.
func (r *Run) Snapshot() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return Snapshot{}, false
	}
	return r.session.Snapshot(), true
}

// TurnStarted returns when the open turn was armed.
func (r *Run) TurnStarted() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turnStart
}

// LastResult returns the most recent round outcome.
func (r *Run) LastResult() (RoundResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return RoundResult{}, false
	}
	return *r.last, true
}

// Credits returns the number of unspent retry credits.
func (r *Run) Credits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.credits
}

// Best returns the best score and highest cleared level of this run.
func (r *Run) Best() (score, level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bestScore, r.bestLevel
}

// Engine returns the rules engine.
func (r *Run) Engine() *Engine { return r.engine }
