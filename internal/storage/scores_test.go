package storage

import (
	"testing"
)

func TestSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{Name: "ada", Score: 700, Level: 5, Variant: "mindgrind"},
		{Name: "bob", Score: 1200, Level: 8, Variant: "mindgrind"},
		{Name: "cy", Score: 700, Level: 6, Variant: "mindgrind"},
		{Name: "dee", Score: 5000, Level: 20, Variant: "arena"},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("mindgrind", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, want 3", len(scores))
	}

	wantNames := []string{"bob", "ada", "cy"}
	for i, name := range wantNames {
		if scores[i].Name != name {
			t.Errorf("scores[%d].Name = %q, want %q", i, scores[i].Name, name)
		}
		if scores[i].Variant != "mindgrind" {
			t.Errorf("scores[%d].Variant = %q, want mindgrind", i, scores[i].Variant)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt not parsed", i)
		}
	}
	if scores[0].Level != 8 {
		t.Errorf("scores[0].Level = %d, want 8", scores[0].Level)
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveScore(ScoreEntry{Name: "p", Score: 500 + i, Level: 1, Variant: "arena"}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{5, 5},
		{0, 10},
		{50, 15},
	}
	for _, tt := range tests {
		scores, err := store.TopScores("arena", tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tt.limit, err)
		}
		if len(scores) != tt.want {
			t.Errorf("TopScores(%d) returned %d rows, want %d", tt.limit, len(scores), tt.want)
		}
	}
}

func TestUpdateScore(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreEntry{Name: "ada", Score: 600, Level: 3, Variant: "mindgrind"})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	tests := []struct {
		name    string
		id      int64
		score   int
		level   int
		updated bool
		want    int
	}{
		{"higher score", id, 900, 5, true, 900},
		{"equal score", id, 900, 6, false, 900},
		{"lower score", id, 400, 7, false, 900},
		{"missing row", id + 100, 5000, 9, false, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := store.UpdateScore(tt.id, tt.score, tt.level)
			if err != nil {
				t.Fatalf("UpdateScore() failed: %v", err)
			}
			if updated != tt.updated {
				t.Errorf("UpdateScore() = %v, want %v", updated, tt.updated)
			}

			row, err := store.ScoreByID(id)
			if err != nil || row == nil {
				t.Fatalf("ScoreByID() = %v, %v", row, err)
			}
			if row.Score != tt.want {
				t.Errorf("Score = %d, want %d", row.Score, tt.want)
			}
		})
	}

	row, _ := store.ScoreByID(id)
	if row.Level != 5 {
		t.Errorf("Level = %d, want 5 from the only accepted update", row.Level)
	}
}

func TestScoreByIDMissing(t *testing.T) {
	store := openTestStore(t)

	row, err := store.ScoreByID(42)
	if err != nil {
		t.Fatalf("ScoreByID() failed: %v", err)
	}
	if row != nil {
		t.Errorf("ScoreByID() = %+v, want nil", row)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("mindgrind")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty table = %d, want 0", high)
	}

	for _, s := range []int{800, 2500, 1100} {
		if _, err := store.SaveScore(ScoreEntry{Name: "x", Score: s, Level: 2, Variant: "mindgrind"}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	high, err = store.HighScore("mindgrind")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 2500 {
		t.Errorf("HighScore() = %d, want 2500", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Name: "a", Score: 600, Level: 1, Variant: "mindgrind"})
	store.SaveScore(ScoreEntry{Name: "b", Score: 700, Level: 1, Variant: "arena"})

	if err := store.ClearScores("mindgrind"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("mindgrind", 10)
	if len(scores) != 0 {
		t.Errorf("mindgrind rows after clear = %d, want 0", len(scores))
	}
	scores, _ = store.TopScores("arena", 10)
	if len(scores) != 1 {
		t.Errorf("arena rows after clear = %d, want 1", len(scores))
	}
}

func TestVariantStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetVariantStats("arena")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore(ScoreEntry{Name: "a", Score: 600, Level: 4, Variant: "mindgrind"})
	store.SaveScore(ScoreEntry{Name: "b", Score: 1000, Level: 9, Variant: "mindgrind"})
	store.SaveScore(ScoreEntry{Name: "c", Score: 550, Level: 3, Variant: "arena"})

	stats, err := store.GetVariantStats("mindgrind")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("RunsCount = %d, want 2", stats.RunsCount)
	}
	if stats.HighScore != 1000 {
		t.Errorf("HighScore = %d, want 1000", stats.HighScore)
	}
	if stats.BestLevel != 9 {
		t.Errorf("BestLevel = %d, want 9", stats.BestLevel)
	}
	if stats.AvgScore != 800 {
		t.Errorf("AvgScore = %v, want 800", stats.AvgScore)
	}

	all, err := store.GetAllVariantsStats()
	if err != nil {
		t.Fatalf("GetAllVariantsStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}
	if all["arena"].HighScore != 550 {
		t.Errorf("arena HighScore = %d, want 550", all["arena"].HighScore)
	}
}
