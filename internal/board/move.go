package board

import "fmt"

// Move encodes a chess move in 32 bits so that capture/en-passant/promotion
// facts travel with the move itself instead of requiring a Position lookup
// to reconstruct them:
//
//	bits 0-5:   from square (0-63)
//	bits 6-11:  to square (0-63)
//	bits 12-14: moved piece type
//	bit 15:     is_capture
//	bit 16:     is_enpassant
//	bits 17-19: captured piece type (meaningful only if is_capture)
//	bits 20-25: enpassant_sq (the square of the pawn actually removed;
//	            meaningful only if is_enpassant, since it differs from `to`)
//	bits 26-28: promotion piece type minus Knight (NoPieceType when not a promotion)
//	bit 29:     is_castle_oo
//	bit 30:     is_castle_ooo
type Move uint32

const (
	moveShiftFrom        = 0
	moveShiftTo          = 6
	moveShiftPiece       = 12
	moveShiftIsCapture   = 15
	moveShiftIsEnPassant = 16
	moveShiftCaptured    = 17
	moveShiftEnPassantSq = 20
	moveShiftPromotion   = 26
	moveShiftCastleOO    = 29
	moveShiftCastleOOO   = 30

	moveMask6 = 0x3F
	moveMask3 = 0x7
)

// NoMove represents an invalid or null move. Its all-zero payload decodes
// as a pawn from a1 to a1, but it is never dispatched; callers compare
// against NoMove directly.
const NoMove Move = 0

func packPromo(pt PieceType) Move {
	if pt == NoPieceType {
		return Move(NoPieceType) << moveShiftPromotion
	}
	return Move(pt-Knight) << moveShiftPromotion
}

func unpackPromo(raw Move) PieceType {
	v := PieceType((raw >> moveShiftPromotion) & moveMask3)
	if v >= 4 {
		return NoPieceType
	}
	return v + Knight
}

// NewMove creates a quiet (non-capture, non-promotion) move.
func NewMove(from, to Square, piece PieceType) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(piece)<<moveShiftPiece |
		packPromo(NoPieceType)
}

// NewCapture creates a capturing move.
func NewCapture(from, to Square, piece, captured PieceType) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(piece)<<moveShiftPiece |
		1<<moveShiftIsCapture | Move(captured)<<moveShiftCaptured | packPromo(NoPieceType)
}

// NewEnPassant creates an en passant capture move. capturedSq is the square
// of the pawn being removed (one rank behind `to`).
func NewEnPassant(from, to, capturedSq Square) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(Pawn)<<moveShiftPiece |
		1<<moveShiftIsCapture | 1<<moveShiftIsEnPassant | Move(Pawn)<<moveShiftCaptured |
		Move(capturedSq)<<moveShiftEnPassantSq | packPromo(NoPieceType)
}

// NewPromotion creates a non-capturing promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(Pawn)<<moveShiftPiece |
		packPromo(promo)
}

// NewPromotionCapture creates a capturing promotion move.
func NewPromotionCapture(from, to Square, promo, captured PieceType) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(Pawn)<<moveShiftPiece |
		1<<moveShiftIsCapture | Move(captured)<<moveShiftCaptured | packPromo(promo)
}

// NewCastlingOO creates a kingside castling move (king's own movement).
func NewCastlingOO(from, to Square) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(King)<<moveShiftPiece |
		1<<moveShiftCastleOO | packPromo(NoPieceType)
}

// NewCastlingOOO creates a queenside castling move (king's own movement).
func NewCastlingOOO(from, to Square) Move {
	return Move(from)<<moveShiftFrom | Move(to)<<moveShiftTo | Move(King)<<moveShiftPiece |
		1<<moveShiftCastleOOO | packPromo(NoPieceType)
}

// NewCastling creates a castling move, inferring side from the destination
// file relative to the origin. Kept for call sites that don't yet know
// which side they're generating.
func NewCastling(from, to Square) Move {
	if to > from {
		return NewCastlingOO(from, to)
	}
	return NewCastlingOOO(from, to)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m >> moveShiftFrom) & moveMask6)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveShiftTo) & moveMask6)
}

// Piece returns the type of the piece being moved.
func (m Move) Piece() PieceType {
	return PieceType((m >> moveShiftPiece) & moveMask3)
}

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return (m>>moveShiftIsCapture)&1 != 0
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return (m>>moveShiftIsEnPassant)&1 != 0
}

// Captured returns the type of the captured piece. Only meaningful if
// IsCapture() is true.
func (m Move) Captured() PieceType {
	return PieceType((m >> moveShiftCaptured) & moveMask3)
}

// EnPassantSquare returns the square of the pawn removed by an en passant
// capture. Only meaningful if IsEnPassant() is true.
func (m Move) EnPassantSquare() Square {
	return Square((m >> moveShiftEnPassantSq) & moveMask6)
}

// Promotion returns the promotion piece type. Only meaningful if
// IsPromotion() is true.
func (m Move) Promotion() PieceType {
	return unpackPromo(m)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return unpackPromo(m) != NoPieceType
}

// IsCastleOO returns true if this is kingside castling.
func (m Move) IsCastleOO() bool {
	return (m>>moveShiftCastleOO)&1 != 0
}

// IsCastleOOO returns true if this is queenside castling.
func (m Move) IsCastleOOO() bool {
	return (m>>moveShiftCastleOOO)&1 != 0
}

// IsCastling returns true if this move castles in either direction.
func (m Move) IsCastling() bool {
	return m.IsCastleOO() || m.IsCastleOOO()
}

// IsPawnDouble returns true if this is a two-square pawn push.
func (m Move) IsPawnDouble() bool {
	if m.Piece() != Pawn {
		return false
	}
	diff := int(m.To()) - int(m.From())
	return diff == 16 || diff == -16
}

// IsQuiet returns true if the move is neither a capture nor a queen
// promotion. Non-capturing under-promotions are quiet by historical
// convention; under-promotion captures are captures and therefore noisy.
// This affects move ordering and move-count pruning.
func (m Move) IsQuiet() bool {
	if m.IsCapture() {
		return false
	}
	promo := unpackPromo(m)
	return promo != Queen
}

// IsNoisy is the complement of IsQuiet.
func (m Move) IsNoisy() bool {
	return !m.IsQuiet()
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}

	return s
}

// ParseMove parses a UCI format move string against the given position.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	capturedPiece := pos.PieceAt(to)
	captured := NoPieceType
	isCapture := capturedPiece != NoPiece
	if isCapture {
		captured = capturedPiece.Type()
	}

	// Promotion
	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		if isCapture {
			return NewPromotionCapture(from, to, promo, captured), nil
		}
		return NewPromotion(from, to, promo), nil
	}

	// Castling: king moving two files
	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}

	// En passant
	if pt == Pawn && to == pos.EnPassant && !isCapture {
		var capSq Square
		if pos.SideToMove == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		return NewEnPassant(from, to, capSq), nil
	}

	if isCapture {
		return NewCapture(from, to, pt, captured), nil
	}
	return NewMove(from, to, pt), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [192]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores information needed to undo a move.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	KingSquare     [2]Square      // King positions before move
	Pieces         [2][6]Bitboard // Full piece bitboards for reliable restoration
	Occupied       [2]Bitboard    // Occupancy bitboards
	AllOccupied    Bitboard       // All pieces
	Valid          bool           // True if move was actually applied
}
