package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one leaderboard row. A run owns a single row that is
// updated in place as its score grows.
type ScoreEntry struct {
	ID        int64
	Name      string
	Score     int
	Level     int
	Variant   string
	CreatedAt time.Time
}

// SaveScore inserts a leaderboard row and returns its ID.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (name, score, level, variant) VALUES (?, ?, ?, ?)",
		e.Name, e.Score, e.Level, e.Variant,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// UpdateScore raises the score and level of an existing row. It reports
// false when the row does not exist or already holds a score at least as high.
func (s *Store) UpdateScore(id int64, score, level int) (bool, error) {
	result, err := s.db.Exec(
		"UPDATE scores SET score = ?, level = ? WHERE id = ? AND score < ?",
		score, level, id, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// ScoreByID returns a single row, or nil if it does not exist.
func (s *Store) ScoreByID(id int64) (*ScoreEntry, error) {
	var e ScoreEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, name, score, level, variant, created_at FROM scores WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Name, &e.Score, &e.Level, &e.Variant, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query score: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// TopScores retrieves the top N rows for a variant, best first.
// Ties go to the earlier row.
func (s *Store) TopScores(variant string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, level, variant, created_at
		 FROM scores
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Level, &e.Variant, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a variant, or 0 if none exist.
func (s *Store) HighScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE variant = ?",
		variant,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all rows for a variant.
func (s *Store) ClearScores(variant string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant    string
	RunsCount  int
	HighScore  int
	BestLevel  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetVariantStats retrieves aggregated statistics for one variant.
func (s *Store) GetVariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE variant = ?`,
		variant,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.BestLevel, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllVariantsStats retrieves statistics for every variant with rows.
func (s *Store) GetAllVariantsStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(score), MAX(level), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variants stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.RunsCount, &vs.HighScore, &vs.BestLevel, &vs.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
