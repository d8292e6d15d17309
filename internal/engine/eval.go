// Package engine implements the chess AI search engine.
package engine

import "github.com/corvidchess/chessplay/internal/board"

// Evaluate returns the static evaluation of the position from the side to
// move's perspective. It is the classical (non-NNUE) evaluator, used as a
// fallback when NNUE weights aren't loaded and by the legacy single-worker
// searcher kept for MultiPV analysis.
func Evaluate(pos *board.Position) int {
	return evaluateTapered(pos, nil)
}

// EvaluateWithPawnTable is like Evaluate but probes/fills pawnTable instead
// of recomputing pawn-structure penalties from scratch every call.
func EvaluateWithPawnTable(pos *board.Position, pawnTable *PawnTable) int {
	return evaluateTapered(pos, pawnTable)
}

// evaluateTapered sums material, PST, and every positional term across
// both sides into separate middlegame/endgame accumulators, then blends
// them by game phase. pawnTable may be nil, in which case pawn structure
// is recomputed directly instead of cached.
func evaluateTapered(pos *board.Position, pawnTable *PawnTable) int {
	var mgScore, egScore, phase int

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		for pt := board.Pawn; pt <= board.King; pt++ {
			for bb := pos.Pieces[c][pt]; bb != 0; {
				sq := bb.PopLSB()

				mgScore += sign * pieceValues[pt]
				egScore += sign * pieceValues[pt]

				mg, eg := pstScore(pt, c, sq)
				mgScore += sign * mg
				egScore += sign * eg

				phase += phaseValue(pt)
			}
		}
	}

	ppMg, ppEg := evaluatePassedPawns(pos)
	mgScore += ppMg
	egScore += ppEg

	mobMg, mobEg := evaluateMobility(pos)
	mgScore += mobMg
	egScore += mobEg

	mgScore += evaluateKingSafety(pos)

	bpMg, bpEg := evaluateBishopPair(pos)
	mgScore += bpMg
	egScore += bpEg

	rfMg, rfEg := evaluateRooksOnFiles(pos)
	mgScore += rfMg
	egScore += rfEg

	var psMg, psEg int
	if pawnTable != nil {
		psMg, psEg = evaluatePawnStructureWithCache(pos, pawnTable)
	} else {
		psMg, psEg = evaluatePawnStructure(pos)
	}
	mgScore += psMg
	egScore += psEg

	opMg, opEg := evaluateOutposts(pos)
	mgScore += opMg
	egScore += opEg

	thrMg, thrEg := evaluateThreats(pos)
	mgScore += thrMg
	egScore += thrEg

	// Tropism and piece coordination are only evaluated in the full
	// (non-cached) path; they're comparatively expensive and the pawn-table
	// path is the hot one used inside search, where speed matters more
	// than the extra few centipawns of positional nuance.
	if pawnTable == nil {
		mgScore += evaluateKingTropism(pos)

		coordMg, coordEg := evaluatePieceCoordination(pos)
		mgScore += coordMg
		egScore += coordEg

		mgScore += evaluateSpace(pos)

		tpMg, tpEg := evaluateTrappedPieces(pos)
		mgScore += tpMg
		egScore += tpEg
	}

	if phase > maxPhase {
		phase = maxPhase
	}

	score := (mgScore*phase + egScore*(maxPhase-phase)) / maxPhase
	score += tempoBonus

	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}
