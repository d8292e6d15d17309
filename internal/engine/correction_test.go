package engine

import (
	"testing"

	"github.com/corvidchess/chessplay/internal/board"
)

// TestCorrectionHistoryGravityUpdate verifies the gravity update nudges a
// bucket toward repeated search-vs-eval disagreements, is per-side-to-move,
// and decays under Age/Clear.
func TestCorrectionHistoryGravityUpdate(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()

	if got := ch.Get(pos); got != 0 {
		t.Fatalf("fresh table: Get = %d, want 0", got)
	}

	for i := 0; i < 200; i++ {
		ch.Update(pos, 300, 0, 8)
	}
	got := ch.Get(pos)
	if got <= 0 {
		t.Fatalf("after repeated positive search-eval gap, Get = %d, want > 0", got)
	}

	pos.SideToMove = board.Black
	if gotOther := ch.Get(pos); gotOther != 0 {
		t.Fatalf("Black's bucket should be independent of White's, got %d", gotOther)
	}
	pos.SideToMove = board.White

	ch.Age()
	aged := ch.Get(pos)
	if aged >= got {
		t.Fatalf("Age() should shrink the correction: before=%d after=%d", got, aged)
	}

	ch.Clear()
	if clearedVal := ch.Get(pos); clearedVal != 0 {
		t.Fatalf("Clear() left a nonzero correction: %d", clearedVal)
	}
}

// TestCorrectionHistoryIgnoresShallowDepth checks depth < 1 updates are
// skipped, matching quiescence-node calls that shouldn't pollute the table.
func TestCorrectionHistoryIgnoresShallowDepth(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()

	ch.Update(pos, 500, 0, 0)
	if got := ch.Get(pos); got != 0 {
		t.Fatalf("depth-0 update should be a no-op, got %d", got)
	}
}
