package engine

import (
	"github.com/corvidchess/chessplay/internal/board"
)

// correctionGrain is the internal storage scale; Get divides it back out so
// the int16 entries keep fractional precision across many small gravity
// updates instead of rounding to zero after a couple of corrections.
const correctionGrain = 256

const (
	correctionBuckets  = 1 << 14
	correctionMask     = correctionBuckets - 1
	correctionClamp    = 1024 * correctionGrain
	correctionMaxBonus = 256 * correctionGrain / 4
)

// CorrectionHistory adjusts static evaluation based on search results, keyed
// per side to move by a feature hash of pawn structure and non-pawn material
// rather than the full position hash. Two positions with the same pawn
// skeleton and material balance tend to carry the same eval bias, so folding
// them into one bucket lets a correction generalize instead of only ever
// firing again on an exact repeat.
type CorrectionHistory struct {
	table [2][correctionBuckets]int16
}

func NewCorrectionHistory() *CorrectionHistory {
	return &CorrectionHistory{}
}

// Get returns the correction value for a position, already descaled; add it
// to the static evaluation.
func (ch *CorrectionHistory) Get(pos *board.Position) int {
	idx := pos.FeatureHash() & correctionMask
	return int(ch.table[pos.SideToMove][idx]) / correctionGrain
}

// Update records a correction based on the difference between the static
// evaluation and the search result, via a gravity update toward the scaled
// target: new = old + (target-old)/16.
func (ch *CorrectionHistory) Update(pos *board.Position, searchScore, staticEval, depth int) {
	if depth < 1 {
		return
	}

	diff := searchScore - staticEval
	bonus := diff * correctionGrain * depth / 8
	if bonus > correctionMaxBonus {
		bonus = correctionMaxBonus
	} else if bonus < -correctionMaxBonus {
		bonus = -correctionMaxBonus
	}

	idx := pos.FeatureHash() & correctionMask
	old := int(ch.table[pos.SideToMove][idx])
	newVal := old + (bonus-old)/16
	if newVal > correctionClamp {
		newVal = correctionClamp
	} else if newVal < -correctionClamp {
		newVal = -correctionClamp
	}
	ch.table[pos.SideToMove][idx] = int16(newVal)
}

// Clear resets all correction values.
func (ch *CorrectionHistory) Clear() {
	for s := range ch.table {
		for i := range ch.table[s] {
			ch.table[s][i] = 0
		}
	}
}

// Age scales down all correction values (called between games/positions).
func (ch *CorrectionHistory) Age() {
	for s := range ch.table {
		for i := range ch.table[s] {
			ch.table[s][i] /= 2
		}
	}
}
