package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SavedRun is the resume point of a player's run: the next level to play
// and the cumulative score carried into it.
type SavedRun struct {
	Player    string
	Variant   string
	Level     int
	Score     int
	UpdatedAt time.Time
}

// SaveRun stores or replaces the resume point for a player and variant.
func (s *Store) SaveRun(r SavedRun) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_runs (player, variant, level, score, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player, variant) DO UPDATE SET
		   level = excluded.level,
		   score = excluded.score,
		   updated_at = excluded.updated_at`,
		r.Player, r.Variant, r.Level, r.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// LoadRun returns the resume point, or nil if the player has none.
func (s *Store) LoadRun(player, variant string) (*SavedRun, error) {
	r := SavedRun{Player: player, Variant: variant}
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT level, score, updated_at FROM saved_runs WHERE player = ? AND variant = ?`,
		player, variant,
	).Scan(&r.Level, &r.Score, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load run: %w", err)
	}
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

// ClearRun removes the resume point. Clearing a missing run is not an error.
func (s *Store) ClearRun(player, variant string) error {
	_, err := s.db.Exec(
		"DELETE FROM saved_runs WHERE player = ? AND variant = ?",
		player, variant,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear run: %w", err)
	}
	return nil
}
