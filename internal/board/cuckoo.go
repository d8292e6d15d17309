package board

// The cuckoo table lets search detect that some move still to be played
// would recreate a position already reached earlier in the game, without
// replaying the whole history. It relies on a property of XOR: the
// Zobrist delta produced by moving a non-pawn piece from s1 to s2 is
// identical to the delta for moving it back from s2 to s1. So if the
// XOR of the current hash and some earlier hash in the line matches the
// delta of a reversible move, and that move is currently playable, then
// playing it (or its mirror) returns to the earlier position.
//
// Built once at package init from every king/knight/bishop/rook/queen
// move reachable on an empty board, for both colors, and stored in a
// 2-way cuckoo hash table indexed by the low and high halves of the key.

const cuckooTableSize = 8192 // must be a power of two

var (
	cuckooKeys  [cuckooTableSize]uint64
	cuckooMoves [cuckooTableSize]Move
)

func cuckooH1(key uint64) uint64 {
	return key & (cuckooTableSize - 1)
}

func cuckooH2(key uint64) uint64 {
	return (key >> 16) & (cuckooTableSize - 1)
}

func init() {
	// Package init functions run in file-name order, so zobrist.go's init
	// has not run yet. The keys come from a fixed seed, so filling them in
	// here first gives the same values that init later rewrites.
	initZobrist()
	initCuckoo()
}

func initCuckoo() {
	for c := White; c <= Black; c++ {
		for pt := Knight; pt <= King; pt++ {
			for s1 := A1; s1 <= H8; s1++ {
				for s2 := s1 + 1; s2 <= H8; s2++ {
					if !pieceReaches(pt, s1, s2) {
						continue
					}
					move := NewMove(s1, s2, pt)
					key := ZobristPiece(c, pt, s1) ^ ZobristPiece(c, pt, s2) ^ ZobristSideToMove()
					cuckooInsert(key, move)
				}
			}
		}
	}
}

// pieceReaches reports whether a piece of type pt standing alone on an
// otherwise empty board could move directly between s1 and s2.
func pieceReaches(pt PieceType, s1, s2 Square) bool {
	switch pt {
	case Knight:
		return KnightAttacks(s1).IsSet(s2)
	case Bishop:
		return BishopAttacks(s1, 0).IsSet(s2)
	case Rook:
		return RookAttacks(s1, 0).IsSet(s2)
	case Queen:
		return QueenAttacks(s1, 0).IsSet(s2)
	case King:
		return KingAttacks(s1).IsSet(s2)
	}
	return false
}

// cuckooInsert adds (key, move) to the table, displacing an existing
// entry to its alternate slot if necessary.
func cuckooInsert(key uint64, move Move) {
	i := cuckooH1(key)
	for iter := 0; iter < cuckooTableSize; iter++ {
		cuckooKeys[i], key = key, cuckooKeys[i]
		cuckooMoves[i], move = move, cuckooMoves[i]

		if move == NoMove {
			return
		}

		// Displaced entry moves to its other slot.
		if i == cuckooH1(key) {
			i = cuckooH2(key)
		} else {
			i = cuckooH1(key)
		}
	}
}

// CuckooLookup reports whether key matches a reversible move's Zobrist
// delta, returning that move if so.
func CuckooLookup(key uint64) (Move, bool) {
	i := cuckooH1(key)
	if cuckooKeys[i] == key {
		return cuckooMoves[i], true
	}
	i = cuckooH2(key)
	if cuckooKeys[i] == key {
		return cuckooMoves[i], true
	}
	return NoMove, false
}

// HasUpcomingRepetition reports whether a move is available right now
// that would recreate a position from earlier in the game. history holds
// the position hashes played so far (oldest first, not including the
// current position); lookback bounds how far back to search, normally
// the side's reversible-move count (half-move clock). ply is the current
// search ply from the search root; a match strictly inside the search
// tree (ply > distance into history) is reported as a cycle, since the
// opponent gets the chance to repeat before the search bottoms out.
func (p *Position) HasUpcomingRepetition(history []uint64, lookback, ply int) bool {
	end := lookback
	if n := len(history); n < end {
		end = n
	}
	if end < 3 {
		return false
	}

	occupied := p.AllOccupied
	currentKey := p.Hash

	for i := 3; i <= end; i += 2 {
		olderKey := history[len(history)-i]
		moveKey := currentKey ^ olderKey

		move, ok := CuckooLookup(moveKey)
		if !ok {
			continue
		}

		s1, s2 := move.From(), move.To()
		if Between(s1, s2)&occupied != 0 {
			continue
		}

		if ply > i {
			return true
		}

		// Repetitions at or before the root need the occupied square to
		// belong to the side on move, since the cuckoo table folds both
		// directions of the same reversible move into one slot.
		occupant := s1
		if !occupied.IsSet(s1) {
			occupant = s2
		}
		if p.PieceAt(occupant) == NoPiece {
			continue
		}
		if p.PieceAt(occupant).Color() != p.SideToMove {
			continue
		}
		return true
	}

	return false
}
