package board

import "testing"

// TestCuckooTableRoundTrip verifies every reversible move inserted at
// init time can still be recovered by lookup.
func TestCuckooTableRoundTrip(t *testing.T) {
	checked := 0
	for c := White; c <= Black; c++ {
		for pt := Knight; pt <= King; pt++ {
			for s1 := A1; s1 <= H8; s1++ {
				for s2 := s1 + 1; s2 <= H8; s2++ {
					if !pieceReaches(pt, s1, s2) {
						continue
					}
					key := ZobristPiece(c, pt, s1) ^ ZobristPiece(c, pt, s2) ^ ZobristSideToMove()
					move, ok := CuckooLookup(key)
					if !ok {
						t.Fatalf("lookup miss for %s %s-%s", pt, s1, s2)
					}
					if move.Piece() != pt {
						t.Errorf("move piece = %v, want %v", move.Piece(), pt)
					}
					// The table folds both directions of a move into one
					// slot, so only the square pair needs to match.
					if !((move.From() == s1 && move.To() == s2) || (move.From() == s2 && move.To() == s1)) {
						t.Errorf("move squares %s-%s don't match %s-%s", move.From(), move.To(), s1, s2)
					}
					checked++
				}
			}
		}
	}
	if checked == 0 {
		t.Fatal("no reversible moves were checked")
	}
}

// TestHasUpcomingRepetitionDetectsReversibleCycle plays a king shuffle
// (Ke1-e2-e1) which recreates the starting position's hash and verifies
// the detector spots the cycle one move before it closes.
func TestHasUpcomingRepetitionDetectsReversibleCycle(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var history []uint64

	play := func(from, to Square) {
		history = append(history, pos.Hash)
		m := NewMove(from, to, King)
		if piece := pos.PieceAt(from); piece.Type() != King {
			t.Fatalf("expected king at %s", from)
		}
		pos.MakeMove(m)
	}

	// Clear the king's path: shuffle kings back and forth, a fully
	// reversible sequence with no captures or pawn moves.
	play(E1, E2) // 1. Ke2
	play(E8, E7) // 1... Ke7
	play(E2, E1) // 2. Ke1 (white king back home)

	// Now if black plays Ke7-e8, the position repeats the start. The
	// detector should see this one reversible move away.
	if !pos.HasUpcomingRepetition(history, len(history), 2) {
		t.Error("expected HasUpcomingRepetition to detect the closing move")
	}
}

func TestHasUpcomingRepetitionNoFalsePositive(t *testing.T) {
	pos := NewPosition()
	var history []uint64
	history = append(history, pos.Hash)
	m, err := ParseMove("e2e4", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	pos.MakeMove(m)

	if pos.HasUpcomingRepetition(history, len(history), 1) {
		t.Error("expected no upcoming repetition after a single irreversible pawn move")
	}
}
