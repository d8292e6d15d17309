package board

// GenMode is a bitmask selecting which disjoint move categories a
// generator call should emit. Replaces the donor's template-boolean
// generation pattern (separate {noisy,check,quiet} generator functions)
// with a single mode parameter.
type GenMode uint8

const (
	GenNoisy GenMode = 1 << iota // captures and queen promotions
	GenCheck                     // quiet evasions while in check
	GenQuiet                     // ordinary quiet moves
	GenAll   = GenNoisy | GenCheck | GenQuiet
)

// GenerateMoves generates the pseudo-legal moves selected by mode and
// returns only the legal subset. noisy ∪ check ∪ quiet == all legal moves;
// "check" here means quiet king-in-check evasions, which are otherwise
// indistinguishable from GenQuiet moves once filtered for legality, so
// GenCheck is honored by falling back to GenQuiet whenever the side to
// move is in check (its quiets are exactly the check-evasion quiets) and
// ignored otherwise.
func (p *Position) GenerateMoves(mode GenMode) *MoveList {
	ml := NewMoveList()
	if mode&GenNoisy != 0 {
		p.generateCaptures(ml)
	}
	if mode&GenQuiet != 0 || (mode&GenCheck != 0 && p.InCheck()) {
		p.generateQuiets(ml)
	}
	return p.filterLegalMoves(ml)
}

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return p.filterLegalMoves(ml)
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king in check).
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml)
	return ml
}

// GenerateCaptures generates all capture and queen-promotion moves.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateCaptures(ml)
	return p.filterLegalMoves(ml)
}

// generateAllMoves generates all pseudo-legal moves.
func (p *Position) generateAllMoves(ml *MoveList) {
	p.generateCaptures(ml)
	p.generateQuiets(ml)
}

// addSliderOrLeaperMoves emits moves for a non-pawn piece given its full
// attack set (captures and quiets both), splitting each destination into
// a capture or quiet move as appropriate.
func (p *Position) addSliderOrLeaperMoves(ml *MoveList, pt PieceType, from Square, attacks, enemies Bitboard) {
	for attacks != 0 {
		to := attacks.PopLSB()
		if enemies.IsSet(to) {
			ml.Add(NewCapture(from, to, pt, p.PieceAt(to).Type()))
		} else {
			ml.Add(NewMove(from, to, pt))
		}
	}
}

// generateQuiets generates non-capture, non-queen-promotion moves
// (including under-promotions, which are quiet by convention).
func (p *Position) generateQuiets(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	empty := ^occupied

	pawns := p.Pieces[us][Pawn]
	var push1, push2 Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromo := push1 & ^promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewMove(from, to, Pawn))
	}

	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewMove(from, to, Pawn))
	}

	// Under-promotions (push only; capture under-promotions are emitted
	// in generateCaptures's promotion path alongside queen promotions,
	// and Move.IsQuiet treats them as noisy because they capture)
	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewPromotion(from, to, Rook))
		ml.Add(NewPromotion(from, to, Bishop))
		ml.Add(NewPromotion(from, to, Knight))
	}

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & empty
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Knight))
		}
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & empty
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Bishop))
		}
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & empty
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Rook))
		}
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & empty
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(from, to, Queen))
		}
	}

	from := p.KingSquare[us]
	attacks := KingAttacks(from) & empty
	for attacks != 0 {
		to := attacks.PopLSB()
		ml.Add(NewMove(from, to, King))
	}

	p.generateCastlingMoves(ml, us)
}

// generateCastlingMoves generates castling moves.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.AllOccupied&((1<<F1)|(1<<G1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewCastlingOO(E1, G1))
				}
			}
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.AllOccupied&((1<<B1)|(1<<C1)|(1<<D1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewCastlingOOO(E1, C1))
				}
			}
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.AllOccupied&((1<<F8)|(1<<G8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewCastlingOO(E8, G8))
				}
			}
		}
		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.AllOccupied&((1<<B8)|(1<<C8)|(1<<D8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewCastlingOOO(E8, C8))
				}
			}
		}
	}
}

// generateCaptures generates capture moves and queen promotions (noisy moves).
func (p *Position) generateCaptures(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()
	enemies := p.Occupied[them]
	occupied := p.AllOccupied

	pawns := p.Pieces[us][Pawn]
	var attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	nonPromoL := attackL & ^promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewCapture(from, to, Pawn, p.PieceAt(to).Type()))
	}

	nonPromoR := attackR & ^promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewCapture(from, to, Pawn, p.PieceAt(to).Type()))
	}

	// Promotion captures: all four promotion pieces are emitted here, and
	// all of them are noisy because they capture.
	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		captured := p.PieceAt(to).Type()
		ml.Add(NewPromotionCapture(from, to, Queen, captured))
		ml.Add(NewPromotionCapture(from, to, Rook, captured))
		ml.Add(NewPromotionCapture(from, to, Bishop, captured))
		ml.Add(NewPromotionCapture(from, to, Knight, captured))
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		captured := p.PieceAt(to).Type()
		ml.Add(NewPromotionCapture(from, to, Queen, captured))
		ml.Add(NewPromotionCapture(from, to, Rook, captured))
		ml.Add(NewPromotionCapture(from, to, Bishop, captured))
		ml.Add(NewPromotionCapture(from, to, Knight, captured))
	}

	// Pawn push promotions (not captures, but noisy since queen promotion is)
	empty := ^occupied
	var push1 Bitboard
	if us == White {
		push1 = pawns.North() & empty & Rank8
	} else {
		push1 = pawns.South() & empty & Rank1
	}
	for push1 != 0 {
		to := push1.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewPromotion(from, to, Queen))
	}

	// En passant
	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		var capSq Square
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
			capSq = p.EnPassant - 8
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
			capSq = p.EnPassant + 8
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(from, p.EnPassant, capSq))
		}
	}

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		p.addSliderOrLeaperMoves(ml, Knight, from, KnightAttacks(from)&enemies, enemies)
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		p.addSliderOrLeaperMoves(ml, Bishop, from, BishopAttacks(from, occupied)&enemies, enemies)
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		p.addSliderOrLeaperMoves(ml, Rook, from, RookAttacks(from, occupied)&enemies, enemies)
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		p.addSliderOrLeaperMoves(ml, Queen, from, QueenAttacks(from, occupied)&enemies, enemies)
	}

	from := p.KingSquare[us]
	p.addSliderOrLeaperMoves(ml, King, from, KingAttacks(from)&enemies, enemies)
}

// filterLegalMoves filters out illegal moves (those that leave king in check).
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}

	return result
}

// PseudoLegal reports whether m is consistent with the current position
// (the moved piece, captured piece, en passant target, and promotion
// fields embedded in m all match what GenerateMoves would itself produce)
// without yet checking for king safety. Used to revalidate a move pulled
// from an untrusted source such as the transposition table before it is
// ever played.
func (p *Position) PseudoLegal(m Move) bool {
	if m == NoMove {
		return false
	}
	from, to := m.From(), m.To()
	if from >= NoSquare || to >= NoSquare || from == to {
		return false
	}

	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != p.SideToMove || piece.Type() != m.Piece() {
		return false
	}

	if m.IsEnPassant() {
		return to == p.EnPassant && piece.Type() == Pawn
	}

	target := p.PieceAt(to)
	if m.IsCapture() {
		if m.IsCastling() {
			return false
		}
		if target == NoPiece || target.Color() == p.SideToMove || target.Type() != m.Captured() {
			return false
		}
	} else if target != NoPiece && !m.IsCastling() {
		return false
	}

	ml := p.GeneratePseudoLegalMoves()
	return ml.Contains(m)
}

// IsLegal returns true if the move is legal (doesn't leave king in check).
// Non-king moves are checked against a VBoard rather than a real
// MakeMove/UnmakeMove pair: legality doesn't need the hash, castling
// rights, or halfmove clock that a full make/unmake would maintain.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	ksq := p.KingSquare[us]

	// For king moves, check if destination is attacked
	if from == ksq {
		if m.IsCastling() {
			return true // Already validated in generation
		}
		// King moves: temporarily remove king and check destination
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(m.To(), them, occ) == 0
	}

	vb := NewVBoard(p)
	vb.ApplyMove(m, us)
	return !vb.IsKingAttacked(ksq, them)
}

// MakeMove applies a move to the position and returns undo information.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
		Checkers:       p.Checkers,
		Valid:          false,
	}

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)

	// Safety check - if no piece at from square, return without modifying position
	if piece == NoPiece {
		return undo
	}

	undo.Valid = true
	pt := piece.Type()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		capturedSq := m.EnPassantSquare()
		undo.CapturedPiece = p.removePiece(capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
	} else if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.removePiece(to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.movePiece(from, to)
	p.Hash ^= zobristPiece[us][pt][from]
	p.Hash ^= zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
		p.Hash ^= zobristPiece[us][Pawn][to]
		p.Hash ^= zobristPiece[us][promoPt][to]
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom]
		p.Hash ^= zobristPiece[us][Rook][rookTo]
	}

	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}

	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}

	p.Hash ^= zobristCastling[p.CastlingRights]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.Hash ^= zobristEnPassant[epSquare.File()]
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()

	return undo
}

// UnmakeMove undoes a move using the stored undo information.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Other()
	from := m.From()
	to := m.To()

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers
	p.SideToMove = us

	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.movePiece(to, from)

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookTo, rookFrom)
	}

	if undo.CapturedPiece != NoPiece {
		if m.IsEnPassant() {
			p.setPiece(undo.CapturedPiece, m.EnPassantSquare())
		} else {
			p.setPiece(undo.CapturedPiece, to)
		}
	}
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw returns true if the position is a draw (stalemate, 50-move, insufficient material).
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}

	wKnights := p.Pieces[White][Knight].PopCount()
	wBishops := p.Pieces[White][Bishop].PopCount()
	bKnights := p.Pieces[Black][Knight].PopCount()
	bBishops := p.Pieces[Black][Bishop].PopCount()

	if wKnights+wBishops+bKnights+bBishops == 0 {
		return true
	}
	if wKnights+wBishops <= 1 && bKnights+bBishops == 0 {
		return true
	}
	if bKnights+bBishops <= 1 && wKnights+wBishops == 0 {
		return true
	}

	return false
}
