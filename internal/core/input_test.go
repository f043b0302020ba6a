package core

import "testing"

func TestActionDelta(t *testing.T) {
	tests := []struct {
		action Action
		dRow   int
		dCol   int
		isMove bool
	}{
		{ActionUp, -1, 0, true},
		{ActionDown, 1, 0, true},
		{ActionLeft, 0, -1, true},
		{ActionRight, 0, 1, true},
		{ActionSelect, 0, 0, false},
		{ActionNone, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			dr, dc := tt.action.Delta()
			if dr != tt.dRow || dc != tt.dCol {
				t.Errorf("Delta() = (%d, %d), want (%d, %d)", dr, dc, tt.dRow, tt.dCol)
			}
			if got := tt.action.IsMove(); got != tt.isMove {
				t.Errorf("IsMove() = %v, want %v", got, tt.isMove)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := RuntimeConfig{ScreenW: 120, Seed: 7}.Normalize()

	if cfg.ScreenW != 120 {
		t.Errorf("ScreenW = %d, want 120", cfg.ScreenW)
	}
	if cfg.ScreenH != 24 {
		t.Errorf("ScreenH = %d, want 24", cfg.ScreenH)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.Variant != "mindgrind" {
		t.Errorf("Variant = %q, want mindgrind", cfg.Variant)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
}
