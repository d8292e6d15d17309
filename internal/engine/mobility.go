package engine

import "github.com/corvidchess/chessplay/internal/board"

// Mobility weights per piece type (Pawn, Knight, Bishop, Rook, Queen, King).
var mobilityMgWeight = [6]int{0, 4, 5, 2, 1, 0}
var mobilityEgWeight = [6]int{0, 3, 4, 4, 2, 0}

// evaluateMobility scores each side by the count of safe squares (not
// occupied by a friendly piece, not attacked by an enemy pawn) its knights,
// bishops, rooks and queens attack.
func evaluateMobility(pos *board.Position) (mgBonus, egBonus int) {
	occupied := pos.AllOccupied

	for color := board.White; color <= board.Black; color++ {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		enemyPawns := pos.Pieces[color.Other()][board.Pawn]
		var unsafeSquares board.Bitboard
		if color == board.White {
			unsafeSquares = enemyPawns.SouthEast() | enemyPawns.SouthWest()
		} else {
			unsafeSquares = enemyPawns.NorthEast() | enemyPawns.NorthWest()
		}

		blockedSquares := unsafeSquares | pos.Occupied[color]

		score := func(pt board.PieceType, attacks board.Bitboard) {
			count := (attacks &^ blockedSquares).PopCount()
			mgBonus += sign * mobilityMgWeight[pt] * count
			egBonus += sign * mobilityEgWeight[pt] * count
		}

		for knights := pos.Pieces[color][board.Knight]; knights != 0; {
			sq := knights.PopLSB()
			score(board.Knight, board.KnightAttacks(sq))
		}
		for bishops := pos.Pieces[color][board.Bishop]; bishops != 0; {
			sq := bishops.PopLSB()
			score(board.Bishop, board.BishopAttacks(sq, occupied))
		}
		for rooks := pos.Pieces[color][board.Rook]; rooks != 0; {
			sq := rooks.PopLSB()
			score(board.Rook, board.RookAttacks(sq, occupied))
		}
		for queens := pos.Pieces[color][board.Queen]; queens != 0; {
			sq := queens.PopLSB()
			score(board.Queen, board.QueenAttacks(sq, occupied))
		}
	}

	return mgBonus, egBonus
}
