package engine

import "github.com/corvidchess/chessplay/internal/board"

// King safety weights per attacker type (Pawn, Knight, Bishop, Rook, Queen, King).
var attackerWeight = [6]int{0, 20, 20, 40, 80, 0}

const (
	pawnShieldBonus      = 10  // Bonus per pawn in front of king
	pawnShieldMissing    = -15 // Penalty per missing shield pawn
	openFileNearKing     = -20 // Penalty for open file near king
	semiOpenFileNearKing = -10 // Penalty for semi-open file
)

// King tropism weights per piece type (bonus for proximity to enemy king).
var tropismWeight = [6]int{0, 3, 2, 2, 5, 0}

// evaluateKingSafety scores attacker pressure on the king zone against
// pawn-shield coverage, from each side's perspective (middlegame only:
// an exposed king matters far less once queens and rooks are off).
func evaluateKingSafety(pos *board.Position) int {
	var score int
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		kingSq := pos.KingSquare[color]
		kingFile := kingSq.File()

		kingZone := board.KingAttacks(kingSq) | board.SquareBB(kingSq)
		if color == board.White {
			kingZone |= kingZone.North()
		} else {
			kingZone |= kingZone.South()
		}

		enemy := color.Other()

		attackerCount := 0
		attackWeight := 0

		addAttackers := func(pt board.PieceType, attacks board.Bitboard) {
			if attacks&kingZone != 0 {
				attackerCount++
				attackWeight += attackerWeight[pt]
			}
		}

		for sq := pos.Pieces[enemy][board.Knight]; sq != 0; {
			s := sq.PopLSB()
			addAttackers(board.Knight, board.KnightAttacks(s))
		}
		for sq := pos.Pieces[enemy][board.Bishop]; sq != 0; {
			s := sq.PopLSB()
			addAttackers(board.Bishop, board.BishopAttacks(s, occupied))
		}
		for sq := pos.Pieces[enemy][board.Rook]; sq != 0; {
			s := sq.PopLSB()
			addAttackers(board.Rook, board.RookAttacks(s, occupied))
		}
		for sq := pos.Pieces[enemy][board.Queen]; sq != 0; {
			s := sq.PopLSB()
			addAttackers(board.Queen, board.QueenAttacks(s, occupied))
		}

		// More attackers compound worse than the sum of their weights.
		if attackerCount >= 2 {
			attackWeight = attackWeight * attackerCount / 2
		}
		score -= sign * attackWeight

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyFilePawns := pos.Pieces[enemy][board.Pawn]

		for f := kingFile - 1; f <= kingFile+1; f++ {
			if f < 0 || f > 7 {
				continue
			}

			filePawns := ownPawns & board.FileMask[f]
			enemyOnFile := enemyFilePawns & board.FileMask[f]

			shieldRank := 1 // rank 2
			if color == board.Black {
				shieldRank = 6 // rank 7
			}
			shieldMask := board.FileMask[f] & board.RankMask[shieldRank]
			if ownPawns&shieldMask != 0 {
				score += sign * pawnShieldBonus
			} else if filePawns == 0 {
				score += sign * pawnShieldMissing
			}

			if filePawns == 0 && enemyOnFile == 0 {
				score += sign * openFileNearKing
			} else if filePawns == 0 {
				score += sign * semiOpenFileNearKing
			}
		}
	}

	return score
}

// evaluateKingTropism scores each minor/major piece by inverse Chebyshev
// distance to the enemy king: closer pieces carry more attacking weight.
// Middlegame only, matching evaluateKingSafety's scope.
func evaluateKingTropism(pos *board.Position) int {
	var score int

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemyKingSq := pos.KingSquare[color.Other()]

		for pt := board.Knight; pt <= board.Queen; pt++ {
			for pieces := pos.Pieces[color][pt]; pieces != 0; {
				sq := pieces.PopLSB()
				dist := chebyshevDistance(sq, enemyKingSq)
				if dist < 7 {
					score += sign * tropismWeight[pt] * (7 - dist)
				}
			}
		}
	}

	return score
}
