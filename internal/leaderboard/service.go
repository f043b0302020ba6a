package leaderboard

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mindgrid/internal/storage"
)

// Store is the persistence the leaderboard needs.
type Store interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
	UpdateScore(id int64, score, level int) (bool, error)
	TopScores(variant string, limit int) ([]storage.ScoreEntry, error)
}

// Status describes what a submission did.
type Status int

const (
	StatusInserted Status = iota
	StatusUpdated
	StatusUnchanged
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInserted:
		return "inserted"
	case StatusUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Submission is one score report. RowID is zero for the first report of a run.
type Submission struct {
	RowID   int64
	Name    string
	Score   int
	Level   int
	Variant string
}

// Receipt is the result of a submission.
type Receipt struct {
	ID     int64
	Name   string
	Status Status
}

// Ranked is a leaderboard row with its 1-based rank.
type Ranked struct {
	Rank      int       `json:"rank"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// Service combines the policy with a store.
type Service struct {
	policy *Policy
	store  Store
	logger *log.Logger
}

// NewService creates a leaderboard service. A nil logger discards output.
func NewService(policy *Policy, store Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{policy: policy, store: store, logger: logger}
}

// Policy returns the submission policy.
func (s *Service) Policy() *Policy { return s.policy }

// Submit inserts the first row of a run, or raises the run's existing row.
func (s *Service) Submit(sub Submission) (Receipt, error) {
	name, err := s.policy.Check(sub.Name, sub.Score)
	if err != nil {
		return Receipt{}, err
	}

	if sub.RowID > 0 {
		updated, err := s.store.UpdateScore(sub.RowID, sub.Score, sub.Level)
		if err != nil {
			return Receipt{}, err
		}
		status := StatusUnchanged
		if updated {
			status = StatusUpdated
		}
		s.logger.Debug("score submitted", "id", sub.RowID, "score", sub.Score, "status", status)
		return Receipt{ID: sub.RowID, Name: name, Status: status}, nil
	}

	id, err := s.store.SaveScore(storage.ScoreEntry{
		Name:    name,
		Score:   sub.Score,
		Level:   sub.Level,
		Variant: sub.Variant,
	})
	if err != nil {
		return Receipt{}, err
	}
	s.logger.Info("leaderboard entry", "id", id, "name", name, "score", sub.Score, "level", sub.Level, "variant", sub.Variant)
	return Receipt{ID: id, Name: name, Status: StatusInserted}, nil
}

// Top returns the ranked top rows for a variant.
func (s *Service) Top(variant string, limit int) ([]Ranked, error) {
	rows, err := s.store.TopScores(variant, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Ranked, len(rows))
	for i, r := range rows {
		out[i] = Ranked{
			Rank:      i + 1,
			Name:      r.Name,
			Score:     r.Score,
			Level:     r.Level,
			CreatedAt: r.CreatedAt,
		}
	}
	return out, nil
}

// Tracker remembers the leaderboard row of one run so that the run is
// stored once and only re-submitted when its score strictly grows.
type Tracker struct {
	mu      sync.Mutex
	service *Service
	variant string
	rowID   int64
	saved   int
}

// NewTracker creates a tracker for a new run.
func (s *Service) NewTracker(variant string) *Tracker {
	return &Tracker{service: s, variant: variant}
}

// Submit reports the run's current score. Scores not above the last
// accepted one return StatusUnchanged without touching the store.
func (t *Tracker) Submit(name string, score, level int) (Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rowID > 0 && score <= t.saved {
		return Receipt{ID: t.rowID, Status: StatusUnchanged}, nil
	}

	rec, err := t.service.Submit(Submission{
		RowID:   t.rowID,
		Name:    name,
		Score:   score,
		Level:   level,
		Variant: t.variant,
	})
	if err != nil {
		return Receipt{}, err
	}
	t.rowID = rec.ID
	t.saved = score
	return rec, nil
}

// RowID returns the run's row, zero before the first accepted submission.
func (t *Tracker) RowID() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rowID
}
