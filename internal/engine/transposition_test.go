package engine

import (
	"testing"

	"github.com/corvidchess/chessplay/internal/board"
)

func TestTranspositionStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	pos := board.NewPosition()
	moves := pos.GenerateLegalMoves()
	move := moves.Get(0)

	tt.Store(pos.Hash, 6, 123, TTExact, move, true)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected entry to be found after store")
	}
	if entry.BestMove != move {
		t.Errorf("BestMove = %s, want %s", entry.BestMove, move)
	}
	if entry.Score != 123 {
		t.Errorf("Score = %d, want 123", entry.Score)
	}
	if entry.Depth != 6 {
		t.Errorf("Depth = %d, want 6", entry.Depth)
	}
	if entry.Flag != TTExact {
		t.Errorf("Flag = %v, want TTExact", entry.Flag)
	}
	if !entry.IsPV {
		t.Error("IsPV = false, want true")
	}
}

func TestTranspositionProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	if _, found := tt.Probe(0xdeadbeefcafebabe); found {
		t.Error("expected miss on empty table")
	}
}

func TestTranspositionNegativeScore(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x1234, 10, -MateScore+5, TTUpperBound, board.NoMove, false)

	entry, found := tt.Probe(0x1234)
	if !found {
		t.Fatal("expected entry to be found")
	}
	if int(entry.Score) != -MateScore+5 {
		t.Errorf("Score = %d, want %d", entry.Score, -MateScore+5)
	}
}

func TestTranspositionDepthClamped(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x5678, 200, 0, TTExact, board.NoMove, false)

	entry, found := tt.Probe(0x5678)
	if !found {
		t.Fatal("expected entry to be found")
	}
	if entry.Depth != ttMaxDepth {
		t.Errorf("Depth = %d, want clamp to %d", entry.Depth, ttMaxDepth)
	}
}

func TestTranspositionGenerationReplacement(t *testing.T) {
	tt := NewTranspositionTable(1)

	// Fill one bucket with distinct keys that all map to the same slot group.
	var keys []uint64
	for i := uint64(0); i < ttBucketSize; i++ {
		k := (i << 20) | 0x01
		keys = append(keys, k)
		tt.Store(k, 4, 0, TTExact, board.NoMove, false)
	}

	tt.NewSearch()

	// A new key landing in the same bucket should be able to evict a
	// stale (previous-generation) entry rather than growing the table.
	newKey := (uint64(ttBucketSize) << 20) | 0x01
	tt.Store(newKey, 4, 99, TTExact, board.NoMove, false)

	entry, found := tt.Probe(newKey)
	if !found {
		t.Fatal("expected new-generation entry to be stored")
	}
	if entry.Score != 99 {
		t.Errorf("Score = %d, want 99", entry.Score)
	}
}

func TestTranspositionClearResetsGeneration(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0xabcd, 4, 1, TTExact, board.NoMove, false)
	tt.NewSearch()
	tt.Clear()

	if _, found := tt.Probe(0xabcd); found {
		t.Error("expected table to be empty after Clear")
	}
	if tt.generation != 0 {
		t.Errorf("generation = %d, want 0 after Clear", tt.generation)
	}
}

func TestAdjustScoreToFromTTRoundTrip(t *testing.T) {
	cases := []struct {
		score, ply int
	}{
		{MateScore - 3, 2},
		{-MateScore + 3, 2},
		{150, 10},
		{0, 0},
	}
	for _, c := range cases {
		stored := AdjustScoreToTT(c.score, c.ply)
		restored := AdjustScoreFromTT(stored, c.ply)
		if restored != c.score {
			t.Errorf("AdjustScore round trip: got %d, want %d (stored=%d)", restored, c.score, stored)
		}
	}
}
