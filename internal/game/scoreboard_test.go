package game

import (
	"errors"
	"testing"
)

func TestScoreboardRows(t *testing.T) {
	reg := NewRegistry()
	a := reg.Join("Ana")
	b := reg.Join("Bea")
	c := reg.Join("Cal")

	board := NewScoreboard()
	for _, p := range []*Player{a, b, c} {
		board.Ensure(p.ID)
	}
	board.apply(map[PlayerID]int{b.ID: 3, c.ID: 3})

	rows := board.Rows(reg)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Points descending, join order breaking the tie
	if rows[0].Player != b.ID || rows[1].Player != c.ID || rows[2].Player != a.ID {
		t.Errorf("unexpected standings order: %v", rows)
	}
	if rows[2].Points != 0 {
		t.Errorf("expected a zero row for Ana, got %d", rows[2].Points)
	}
}

func TestScoreboardApplyDelta(t *testing.T) {
	reg := NewRegistry()
	a := reg.Join("Ana")

	board := NewScoreboard()
	board.Ensure(a.ID)

	if err := board.ApplyDelta(a.ID, 2); err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if got := board.Total(a.ID); got != 2 {
		t.Errorf("expected 2 points, got %d", got)
	}

	// Host awards to unknown ids surface instead of minting rows
	if err := board.ApplyDelta("ghost", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScoreboardApplyCreatesRows(t *testing.T) {
	board := NewScoreboard()
	board.apply(map[PlayerID]int{"late": 5})
	if got := board.Total("late"); got != 5 {
		t.Errorf("reveal deltas should create missing rows, got %d", got)
	}
}
