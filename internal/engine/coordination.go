package engine

import "github.com/corvidchess/chessplay/internal/board"

const (
	bishopPairMgBonus = 25
	bishopPairEgBonus = 50
)

const (
	rookOpenFileMg     = 20
	rookOpenFileEg     = 25
	rookSemiOpenFileMg = 10
	rookSemiOpenFileEg = 15
)

// Piece coordination constants.
const (
	rookOn7thMg          = 30
	rookOn7thEg          = 40
	rookOn7thWithPawnsMg = 15 // extra if the enemy still has pawns on their 2nd rank
	rookOn7thWithPawnsEg = 20
	doubleRooksOn7thMg   = 50 // both rooks on the 7th ("pig rooks")
	doubleRooksOn7thEg   = 60

	connectedRooksMg = 10
	connectedRooksEg = 15

	doubledRooksOnFileMg = 20
	doubledRooksOnFileEg = 25
)

// Space evaluation constants.
const (
	spaceSquareBonus     = 2 // per safe square controlled in the space zone
	spaceBehindPawnBonus = 3 // extra if also behind our own pawn chain
	spaceMinPieces       = 3 // minimum minor/major pieces to bother scoring space
)

// Space zones: central files, ranks 2-5 for White and 4-7 for Black.
var (
	whiteSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
		(board.Rank2 | board.Rank3 | board.Rank4 | board.Rank5)
	blackSpaceZone = (board.FileC | board.FileD | board.FileE | board.FileF) &
		(board.Rank4 | board.Rank5 | board.Rank6 | board.Rank7)
)

// Trapped-piece penalties.
const (
	badBishopPenaltyMg = -5 // per own pawn blocking the bishop's own-color squares
	badBishopPenaltyEg = -10

	trappedBishopPenaltyMg = -80 // cornered on a6/h6/a3/h3 behind a pawn fence
	trappedBishopPenaltyEg = -50

	trappedRookPenaltyMg = -50 // boxed into a corner behind an uncastled king
	trappedRookPenaltyEg = -25

	knightRimPenaltyMg    = -15 // on the rim with 3 or fewer safe squares
	knightRimPenaltyEg    = -10
	knightCornerPenaltyMg = -30 // on a literal corner square
	knightCornerPenaltyEg = -20
)

var (
	lightSquares board.Bitboard
	darkSquares  board.Bitboard
)

var (
	rimSquares    = board.FileA | board.FileH | board.Rank1 | board.Rank8
	cornerSquares = board.SquareBB(board.A1) | board.SquareBB(board.H1) |
		board.SquareBB(board.A8) | board.SquareBB(board.H8)
)

func init() {
	for sq := board.A1; sq <= board.H8; sq++ {
		if (sq.File()+sq.Rank())%2 == 1 {
			lightSquares |= board.SquareBB(sq)
		} else {
			darkSquares |= board.SquareBB(sq)
		}
	}
}

// evaluateBishopPair scores a side holding both bishops, who between them
// cover both square colors a lone bishop can't.
func evaluateBishopPair(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}
		if pos.Pieces[color][board.Bishop].PopCount() >= 2 {
			mgBonus += sign * bishopPairMgBonus
			egBonus += sign * bishopPairEgBonus
		}
	}
	return mgBonus, egBonus
}

// evaluateRooksOnFiles scores rooks on open or semi-open files.
func evaluateRooksOnFiles(pos *board.Position) (mgBonus, egBonus int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[color.Other()][board.Pawn]

		for rooks := pos.Pieces[color][board.Rook]; rooks != 0; {
			sq := rooks.PopLSB()
			fileMask := board.FileMask[sq.File()]

			hasOwnPawn := (ownPawns & fileMask) != 0
			hasEnemyPawn := (enemyPawns & fileMask) != 0

			if !hasOwnPawn {
				if !hasEnemyPawn {
					mgBonus += sign * rookOpenFileMg
					egBonus += sign * rookOpenFileEg
				} else {
					mgBonus += sign * rookSemiOpenFileMg
					egBonus += sign * rookSemiOpenFileEg
				}
			}
		}
	}
	return mgBonus, egBonus
}

// evaluatePieceCoordination scores rooks on the 7th rank (doubled "pig
// rooks" especially) and rooks that defend each other along a rank or file.
func evaluatePieceCoordination(pos *board.Position) (mgBonus, egBonus int) {
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemy := color.Other()
		rooks := pos.Pieces[color][board.Rook]

		var rank7th, enemyPawnRank board.Bitboard
		if color == board.White {
			rank7th, enemyPawnRank = board.Rank7, board.Rank2
		} else {
			rank7th, enemyPawnRank = board.Rank2, board.Rank7
		}

		rooksOn7th := rooks & rank7th
		rooksOn7thCount := rooksOn7th.PopCount()

		if rooksOn7thCount > 0 {
			mgBonus += sign * rookOn7thMg * rooksOn7thCount
			egBonus += sign * rookOn7thEg * rooksOn7thCount

			if pos.Pieces[enemy][board.Pawn]&enemyPawnRank != 0 {
				mgBonus += sign * rookOn7thWithPawnsMg * rooksOn7thCount
				egBonus += sign * rookOn7thWithPawnsEg * rooksOn7thCount
			}

			if rooksOn7thCount >= 2 {
				mgBonus += sign * doubleRooksOn7thMg
				egBonus += sign * doubleRooksOn7thEg
			}
		}

		if rooks.PopCount() >= 2 {
			var rookSquares [2]board.Square
			idx := 0
			for temp := rooks; temp != 0 && idx < 2; idx++ {
				rookSquares[idx] = temp.PopLSB()
			}

			if idx == 2 {
				sq1, sq2 := rookSquares[0], rookSquares[1]
				if board.RookAttacks(sq1, occupied).IsSet(sq2) {
					mgBonus += sign * connectedRooksMg
					egBonus += sign * connectedRooksEg

					if sq1.File() == sq2.File() {
						mgBonus += sign * doubledRooksOnFileMg
						egBonus += sign * doubledRooksOnFileEg
					}
				}
			}
		}
	}

	return mgBonus, egBonus
}

// evaluateSpace scores safe squares controlled within each side's central
// space zone, with an extra bonus for squares behind the side's own pawn
// chain. Skipped entirely once both sides have traded down past
// spaceMinPieces, where space stops mattering.
func evaluateSpace(pos *board.Position) int {
	var score int

	pieceCount := func(c board.Color) int {
		return pos.Pieces[c][board.Knight].PopCount() +
			pos.Pieces[c][board.Bishop].PopCount() +
			pos.Pieces[c][board.Rook].PopCount() +
			pos.Pieces[c][board.Queen].PopCount()
	}
	whitePieceCount, blackPieceCount := pieceCount(board.White), pieceCount(board.Black)

	if whitePieceCount < spaceMinPieces && blackPieceCount < spaceMinPieces {
		return 0
	}

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		count := whitePieceCount
		if color == board.Black {
			count = blackPieceCount
		}
		if count < spaceMinPieces {
			continue
		}

		enemy := color.Other()
		ownPawns := pos.Pieces[color][board.Pawn]
		enemyPawns := pos.Pieces[enemy][board.Pawn]

		spaceZone := whiteSpaceZone
		if color == board.Black {
			spaceZone = blackSpaceZone
		}

		var pawnControl, enemyPawnAttacks, behindPawns board.Bitboard
		if color == board.White {
			pawnControl = ownPawns.NorthEast() | ownPawns.NorthWest()
			enemyPawnAttacks = enemyPawns.SouthEast() | enemyPawns.SouthWest()
			behindPawns = ownPawns.SouthFill()
		} else {
			pawnControl = ownPawns.SouthEast() | ownPawns.SouthWest()
			enemyPawnAttacks = enemyPawns.NorthEast() | enemyPawns.NorthWest()
			behindPawns = ownPawns.NorthFill()
		}

		safeSpace := spaceZone &^ enemyPawnAttacks
		controlledSpace := (pawnControl | behindPawns) & safeSpace
		behindChainSpace := controlledSpace & behindPawns

		bonus := controlledSpace.PopCount()*spaceSquareBonus + behindChainSpace.PopCount()*spaceBehindPawnBonus
		score += sign * bonus
	}

	return score
}

// evaluateTrappedPieces penalizes bad/trapped bishops, rooks boxed in by an
// uncastled king, and knights stuck on the rim or in a corner.
func evaluateTrappedPieces(pos *board.Position) (mgPenalty, egPenalty int) {
	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemy := color.Other()
		enemyPawns := pos.Pieces[enemy][board.Pawn]
		ownPawns := pos.Pieces[color][board.Pawn]

		for bishops := pos.Pieces[color][board.Bishop]; bishops != 0; {
			sq := bishops.PopLSB()

			bishopColorSquares := darkSquares
			if lightSquares.IsSet(sq) {
				bishopColorSquares = lightSquares
			}

			blockingPawns := (ownPawns & bishopColorSquares).PopCount()
			if blockingPawns >= 3 {
				mgPenalty += sign * badBishopPenaltyMg * blockingPawns
				egPenalty += sign * badBishopPenaltyEg * blockingPawns
			}

			trapped := func(a, b board.Square) bool {
				return enemyPawns.IsSet(a) && enemyPawns.IsSet(b)
			}
			var isTrapped bool
			if color == board.White {
				isTrapped = (sq == board.A6 && trapped(board.B7, board.B5)) ||
					(sq == board.H6 && trapped(board.G7, board.G5))
			} else {
				isTrapped = (sq == board.A3 && trapped(board.B2, board.B4)) ||
					(sq == board.H3 && trapped(board.G2, board.G4))
			}
			if isTrapped {
				mgPenalty += sign * trappedBishopPenaltyMg
				egPenalty += sign * trappedBishopPenaltyEg
			}
		}

		kingSquare := pos.KingSquare[color]
		rooks := pos.Pieces[color][board.Rook]

		var kingSideKingSqs, kingSideRookMask, queenSideKingSqs, queenSideRookMask board.Bitboard
		var kingSideRight, queenSideRight board.CastlingRights
		if color == board.White {
			kingSideKingSqs = board.SquareBB(board.F1) | board.SquareBB(board.G1)
			kingSideRookMask = board.SquareBB(board.G1) | board.SquareBB(board.H1)
			kingSideRight = board.WhiteKingSideCastle
			queenSideKingSqs = board.SquareBB(board.B1) | board.SquareBB(board.C1) | board.SquareBB(board.D1)
			queenSideRookMask = board.SquareBB(board.A1) | board.SquareBB(board.B1)
			queenSideRight = board.WhiteQueenSideCastle
		} else {
			kingSideKingSqs = board.SquareBB(board.F8) | board.SquareBB(board.G8)
			kingSideRookMask = board.SquareBB(board.G8) | board.SquareBB(board.H8)
			kingSideRight = board.BlackKingSideCastle
			queenSideKingSqs = board.SquareBB(board.B8) | board.SquareBB(board.C8) | board.SquareBB(board.D8)
			queenSideRookMask = board.SquareBB(board.A8) | board.SquareBB(board.B8)
			queenSideRight = board.BlackQueenSideCastle
		}

		if kingSideKingSqs.IsSet(kingSquare) && rooks&kingSideRookMask != 0 && pos.CastlingRights&kingSideRight == 0 {
			mgPenalty += sign * trappedRookPenaltyMg
			egPenalty += sign * trappedRookPenaltyEg
		}
		if queenSideKingSqs.IsSet(kingSquare) && rooks&queenSideRookMask != 0 && pos.CastlingRights&queenSideRight == 0 {
			mgPenalty += sign * trappedRookPenaltyMg
			egPenalty += sign * trappedRookPenaltyEg
		}

		for rimKnights := pos.Pieces[color][board.Knight] & rimSquares; rimKnights != 0; {
			sq := rimKnights.PopLSB()

			if cornerSquares.IsSet(sq) {
				mgPenalty += sign * knightCornerPenaltyMg
				egPenalty += sign * knightCornerPenaltyEg
				continue
			}

			mobility := (board.KnightAttacks(sq) &^ pos.Occupied[color]).PopCount()
			if mobility <= 3 {
				mgPenalty += sign * knightRimPenaltyMg
				egPenalty += sign * knightRimPenaltyEg
			}
		}
	}

	return mgPenalty, egPenalty
}
