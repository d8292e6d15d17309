package engine

import "github.com/corvidchess/chessplay/internal/board"

// Passed pawn bonuses by relative rank (index 0 = rank 1, index 7 = rank 8).
var passedPawnBonus = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

const (
	passedPawnConnectedBonus   = 20
	passedPawnProtectedBonus   = 15
	passedPawnFreePathBonus    = 30
	passedPawnUnstoppableBonus = 200 // pawn cannot be caught by the enemy king
)

// Passed pawn king-distance bonus table, indexed by Chebyshev distance.
var kingDistanceBonus = [8]int{0, 0, 10, 20, 30, 40, 50, 60}

// Pawn structure penalties.
const (
	doubledPawnMgPenalty  = -15
	doubledPawnEgPenalty  = -20
	isolatedPawnMgPenalty = -20
	isolatedPawnEgPenalty = -25
	backwardPawnMgPenalty = -15
	backwardPawnEgPenalty = -10
)

// Outpost bonuses.
const (
	knightOutpostMg          = 25
	knightOutpostEg          = 15
	knightOutpostProtectedMg = 15
	knightOutpostProtectedEg = 10
	bishopOutpostMg          = 15
	bishopOutpostEg          = 10
)

// chebyshevDistance is max(|file_diff|, |rank_diff|) between two squares,
// the number of king moves needed to go from one to the other.
func chebyshevDistance(sq1, sq2 board.Square) int {
	fileDiff := sq1.File() - sq2.File()
	if fileDiff < 0 {
		fileDiff = -fileDiff
	}
	rankDiff := sq1.Rank() - sq2.Rank()
	if rankDiff < 0 {
		rankDiff = -rankDiff
	}
	if fileDiff > rankDiff {
		return fileDiff
	}
	return rankDiff
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// isPassedPawn reports whether the pawn at sq has no enemy pawn on its own
// or adjacent files anywhere between it and the promotion rank.
func isPassedPawn(pos *board.Position, sq board.Square, color board.Color) bool {
	file := sq.File()
	enemyPawns := pos.Pieces[color.Other()][board.Pawn]

	fileMask := board.FileMask[file]
	if file > 0 {
		fileMask |= board.FileMask[file-1]
	}
	if file < 7 {
		fileMask |= board.FileMask[file+1]
	}

	var frontMask board.Bitboard
	if color == board.White {
		frontMask = board.SquareBB(sq).NorthFill() &^ board.SquareBB(sq)
	} else {
		frontMask = board.SquareBB(sq).SouthFill() &^ board.SquareBB(sq)
	}

	blockingZone := fileMask & frontMask
	return (enemyPawns & blockingZone) == 0
}

// evaluatePassedPawns scores passed pawns by rank, king proximity to the
// pawn and to its promotion square, whether it's protected or connected
// to another passer, whether its path is clear, and whether it's flatly
// unstoppable by the enemy king.
func evaluatePassedPawns(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		pawns := pos.Pieces[color][board.Pawn]
		friendlyPawns := pawns
		enemy := color.Other()

		friendlyKingSq := pos.KingSquare[color]
		enemyKingSq := pos.KingSquare[enemy]

		for pawns != 0 {
			sq := pawns.PopLSB()

			if !isPassedPawn(pos, sq, color) {
				continue
			}

			relRank := sq.RelativeRank(color)
			file := sq.File()

			bonus := passedPawnBonus[relRank]
			egBonusExtra := 0

			var promoSq board.Square
			if color == board.White {
				promoSq = board.NewSquare(file, 7)
			} else {
				promoSq = board.NewSquare(file, 0)
			}

			friendlyKingDist := chebyshevDistance(friendlyKingSq, sq)
			egBonusExtra += kingDistanceBonus[7-minInt(friendlyKingDist, 7)]

			enemyKingDistToPromo := chebyshevDistance(enemyKingSq, promoSq)
			egBonusExtra += kingDistanceBonus[minInt(enemyKingDistToPromo, 7)]

			if board.PawnAttacks(sq, color.Other())&friendlyPawns != 0 {
				bonus += passedPawnProtectedBonus
			}

			var adjacentFiles board.Bitboard
			if file > 0 {
				adjacentFiles |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacentFiles |= board.FileMask[file+1]
			}
			for temp := friendlyPawns & adjacentFiles; temp != 0; {
				connSq := temp.PopLSB()
				if isPassedPawn(pos, connSq, color) {
					bonus += passedPawnConnectedBonus
					break
				}
			}

			var frontSquares board.Bitboard
			if color == board.White {
				frontSquares = board.SquareBB(sq).NorthFill() &^ board.SquareBB(sq)
			} else {
				frontSquares = board.SquareBB(sq).SouthFill() &^ board.SquareBB(sq)
			}
			frontSquares &= board.FileMask[file]
			pathClear := (frontSquares & pos.AllOccupied) == 0
			if pathClear {
				bonus += passedPawnFreePathBonus
			}

			if pathClear && relRank >= 4 {
				squaresToPromo := 7 - relRank
				enemyKingDistToPawn := chebyshevDistance(enemyKingSq, sq)

				tempo := 0
				if pos.SideToMove == color {
					tempo = 1
				}

				if enemyKingDistToPawn > squaresToPromo+1-tempo {
					egBonusExtra += passedPawnUnstoppableBonus
				}
			}

			mgBonus += sign * bonus
			egBonus += sign * (bonus*3/2 + egBonusExtra)
		}
	}

	return mgBonus, egBonus
}

// evaluatePawnStructure penalizes doubled, isolated, and backward pawns.
func evaluatePawnStructure(pos *board.Position) (mgPenalty, egPenalty int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		pawns := pos.Pieces[color][board.Pawn]
		allPawns := pawns

		for pawns != 0 {
			sq := pawns.PopLSB()
			file := sq.File()
			fileMask := board.FileMask[file]

			pawnsOnFile := allPawns & fileMask
			if pawnsOnFile.PopCount() > 1 {
				var forwardPawn board.Square
				if color == board.White {
					forwardPawn = pawnsOnFile.MSB()
				} else {
					forwardPawn = pawnsOnFile.LSB()
				}
				if sq == forwardPawn {
					mgPenalty += sign * doubledPawnMgPenalty
					egPenalty += sign * doubledPawnEgPenalty
				}
			}

			var adjacentFiles board.Bitboard
			if file > 0 {
				adjacentFiles |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacentFiles |= board.FileMask[file+1]
			}
			if (allPawns & adjacentFiles) == 0 {
				mgPenalty += sign * isolatedPawnMgPenalty
				egPenalty += sign * isolatedPawnEgPenalty
				continue // isolated pawns can't also be backward
			}

			relRank := sq.RelativeRank(color)
			if relRank > 1 {
				var behindMask board.Bitboard
				if color == board.White {
					for r := 0; r < sq.Rank(); r++ {
						behindMask |= board.RankMask[r]
					}
				} else {
					for r := sq.Rank() + 1; r < 8; r++ {
						behindMask |= board.RankMask[r]
					}
				}

				adjacentPawns := allPawns & adjacentFiles
				if adjacentPawns != 0 && (adjacentPawns&behindMask) == adjacentPawns {
					continue // all adjacent pawns are already behind us
				}

				var stopSq board.Square
				if color == board.White {
					stopSq = sq + 8
				} else {
					stopSq = sq - 8
				}
				if stopSq.IsValid() {
					enemyPawnAttacks := board.PawnAttacks(stopSq, color)
					enemyPawns := pos.Pieces[color.Other()][board.Pawn]
					if (enemyPawns & enemyPawnAttacks) != 0 {
						mgPenalty += sign * backwardPawnMgPenalty
						egPenalty += sign * backwardPawnEgPenalty
					}
				}
			}
		}
	}
	return mgPenalty, egPenalty
}

// evaluatePawnStructureWithCache memoizes evaluatePawnStructure on the
// pawn-only Zobrist key, since pawn structure changes far less often than
// the rest of the position during search.
func evaluatePawnStructureWithCache(pos *board.Position, pt *PawnTable) (mgScore, egScore int) {
	if pt == nil {
		return evaluatePawnStructure(pos)
	}

	if mg, eg, found := pt.Probe(pos.PawnKey); found {
		return mg, eg
	}

	mg, eg := evaluatePawnStructure(pos)
	pt.Store(pos.PawnKey, mg, eg)
	return mg, eg
}

// evaluateOutposts scores knights and bishops sitting on squares no enemy
// pawn can ever attack (an outpost), with an extra bonus for knights that
// are themselves pawn-protected there.
func evaluateOutposts(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]

		var outpostRanks board.Bitboard
		if color == board.White {
			outpostRanks = board.RankMask[3] | board.RankMask[4] | board.RankMask[5]
		} else {
			outpostRanks = board.RankMask[2] | board.RankMask[3] | board.RankMask[4]
		}

		isOutpost := func(sq board.Square) bool {
			file := sq.File()

			var adjacentFiles board.Bitboard
			if file > 0 {
				adjacentFiles |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacentFiles |= board.FileMask[file+1]
			}

			var potentialAttackers board.Bitboard
			if color == board.White {
				for r := 0; r <= sq.Rank(); r++ {
					potentialAttackers |= board.RankMask[r]
				}
			} else {
				for r := sq.Rank(); r < 8; r++ {
					potentialAttackers |= board.RankMask[r]
				}
			}

			return (enemyPawns & adjacentFiles & potentialAttackers) == 0
		}

		for knights := pos.Pieces[color][board.Knight] & outpostRanks; knights != 0; {
			sq := knights.PopLSB()
			if !isOutpost(sq) {
				continue
			}
			mgBonus += sign * knightOutpostMg
			egBonus += sign * knightOutpostEg

			if board.PawnAttacks(sq, color.Other())&ownPawns != 0 {
				mgBonus += sign * knightOutpostProtectedMg
				egBonus += sign * knightOutpostProtectedEg
			}
		}

		for bishops := pos.Pieces[color][board.Bishop] & outpostRanks; bishops != 0; {
			sq := bishops.PopLSB()
			if !isOutpost(sq) {
				continue
			}
			mgBonus += sign * bishopOutpostMg
			egBonus += sign * bishopOutpostEg
		}
	}
	return mgBonus, egBonus
}
