package engine

import (
	"github.com/corvidchess/chessplay/internal/board"
)

// Move ordering priorities
const (
	TTMoveScore     = 10000000 // TT move gets highest priority
	GoodCaptureBase = 1000000  // Base score for good captures
	KillerScore1    = 900000   // First killer move
	KillerScore2    = 800000   // Second killer move
	BadCaptureBase  = -100000  // Losing captures
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
// Score = 10 * (victim index + 1) + 5 - attacker rank (knight and bishop
// share a rank)
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11}, // Pawn victim
	/* N */ {25, 24, 24, 23, 22, 21}, // Knight victim
	/* B */ {35, 34, 34, 33, 32, 31}, // Bishop victim
	/* R */ {45, 44, 44, 43, 42, 41}, // Rook victim
	/* Q */ {55, 54, 54, 53, 52, 51}, // Queen victim
	/* K */ {0, 0, 0, 0, 0, 0},       // King can't be captured
}

// historyLimit bounds every history table entry; gravityBonus turns a
// depth into the signed "gain" used by the gravity update below.
const historyLimit = 16384

// evalFeatureBuckets/pawnHashBuckets size the two signature-keyed tables.
const (
	evalFeatureBuckets = 512
	pawnHashBuckets    = 512
)

func gravityBonus(depth int, isGood bool) int {
	bonus := depth * depth
	if bonus > 400 {
		bonus = 400
	}
	if !isGood {
		bonus = -bonus
	}
	return bonus
}

// applyGravity updates *cur toward gain with a damping term proportional
// to the current magnitude, so a table entry saturates instead of growing
// without bound: delta = gain*32 - clamp(cur, limit)*|gain|/512.
func applyGravity(cur *int, gain int) {
	clamped := *cur
	if clamped > historyLimit {
		clamped = historyLimit
	} else if clamped < -historyLimit {
		clamped = -historyLimit
	}
	absGain := gain
	if absGain < 0 {
		absGain = -absGain
	}
	delta := gain*32 - clamped*absGain/512
	*cur += delta
	if *cur > historyLimit {
		*cur = historyLimit
	} else if *cur < -historyLimit {
		*cur = -historyLimit
	}
}

// evalFeatureBucket hashes a coarse evaluation signature (material balance
// clamped to a small range, plus non-pawn piece count) into a bucket, so
// the eval-feature table keys on "what kind of position is this" rather
// than the exact position.
func evalFeatureBucket(pos *board.Position) uint32 {
	material := EvaluateMaterial(pos)
	if material > 2000 {
		material = 2000
	} else if material < -2000 {
		material = -2000
	}
	nonPawn := pos.Pieces[board.White][board.Knight].PopCount() +
		pos.Pieces[board.White][board.Bishop].PopCount() +
		pos.Pieces[board.White][board.Rook].PopCount() +
		pos.Pieces[board.White][board.Queen].PopCount() +
		pos.Pieces[board.Black][board.Knight].PopCount() +
		pos.Pieces[board.Black][board.Bishop].PopCount() +
		pos.Pieces[board.Black][board.Rook].PopCount() +
		pos.Pieces[board.Black][board.Queen].PopCount()
	sig := uint32(material+2000)*16 + uint32(nonPawn)
	return sig % evalFeatureBuckets
}

// pawnHashBucket folds a pawn structure key down to a small bucket.
func pawnHashBucket(pawnKey uint64) uint32 {
	return uint32((pawnKey>>32)^pawnKey) % pawnHashBuckets
}

// MoveOrderer holds the history tables used to stage and sort moves.
// Quiet moves are scored by the sum of several tables, each capturing a
// different kind of context: is the moved piece under attack (threat),
// what did the opponent just play (counter), what did we play two plies
// ago (follow), what kind of pawn structure is this (pawnHash), and what
// kind of position is this more broadly (evalFeature). Captures are
// scored separately by MVV-LVA plus the capture table.
type MoveOrderer struct {
	// Killer moves (quiet moves that caused beta cutoffs), per ply.
	killers [MaxPly][2]board.Move

	// threat: [threat-state][from][to]; threat-state is whether the
	// moving piece was attacked in the position before the move.
	threat [2][64][64]int

	// counter: [prevPiece][prevTo][piece][to], keyed by the opponent's
	// immediately preceding move.
	counter [12][64][12][64]int

	// follow: same shape as counter, keyed by our own move two plies ago.
	follow [12][64][12][64]int

	// capture: [attackerPiece][toSquare][capturedPieceType].
	capture [12][64][6]int

	// evalFeature: [bucket][piece][to], keyed by a hash of the current
	// evaluation signature.
	evalFeature [evalFeatureBuckets][12][64]int

	// pawnHash: [bucket][piece][to], keyed by the pawn structure hash.
	pawnHash [pawnHashBuckets][12][64]int

	// Counter move heuristic (indexed by [piece][to])
	counterMoves [12][64]board.Move
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets the move orderer for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}

	for i := range mo.threat {
		for j := range mo.threat[i] {
			for k := range mo.threat[i][j] {
				mo.threat[i][j][k] /= 2
			}
		}
	}

	for i := range mo.counterMoves {
		for j := range mo.counterMoves[i] {
			mo.counterMoves[i][j] = board.NoMove
		}
	}

	for i := range mo.capture {
		for j := range mo.capture[i] {
			for k := range mo.capture[i][j] {
				mo.capture[i][j][k] /= 2
			}
		}
	}

	for i := range mo.counter {
		for j := range mo.counter[i] {
			for k := range mo.counter[i][j] {
				for l := range mo.counter[i][j][k] {
					mo.counter[i][j][k][l] /= 2
				}
			}
		}
	}

	for i := range mo.follow {
		for j := range mo.follow[i] {
			for k := range mo.follow[i][j] {
				for l := range mo.follow[i][j][k] {
					mo.follow[i][j][k][l] /= 2
				}
			}
		}
	}

	for i := range mo.evalFeature {
		for j := range mo.evalFeature[i] {
			for k := range mo.evalFeature[i][j] {
				mo.evalFeature[i][j][k] /= 2
			}
		}
	}

	for i := range mo.pawnHash {
		for j := range mo.pawnHash[i] {
			for k := range mo.pawnHash[i][j] {
				mo.pawnHash[i][j][k] /= 2
			}
		}
	}
}

// ScoreMoves assigns scores to moves for ordering, without counter/follow
// context (used where no previous-move history is tracked, e.g. qsearch).
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		scores[i] = mo.scoreMove(pos, move, ply, ttMove)
	}

	return scores
}

// ScoreMovesWithCounter assigns scores including counter-move, counter-history,
// and follow-history (two plies back) bonuses.
func (mo *MoveOrderer) ScoreMovesWithCounter(pos *board.Position, moves *board.MoveList, ply int, ttMove, prevMove, prevPrevMove board.Move, prevPrevPiece board.Piece) []int {
	scores := make([]int, moves.Len())
	counterMove := mo.GetCounterMove(prevMove, pos)

	var prevPiece board.Piece = board.NoPiece
	if prevMove != board.NoMove {
		prevPiece = pos.PieceAt(prevMove.To())
	}

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		scores[i] = mo.scoreMove(pos, move, ply, ttMove)

		// Counter-move bonus (after killers, before history)
		if move == counterMove && scores[i] < KillerScore2 {
			scores[i] = KillerScore2 - 10000 // Just below second killer
		}

		if !move.IsCapture() && !move.IsPromotion() && move != ttMove {
			movePiece := pos.PieceAt(move.From())
			to := move.To()
			if prevMove != board.NoMove && prevPiece != board.NoPiece {
				scores[i] += mo.counter[prevPiece][prevMove.To()][movePiece][to] / 2
			}
			if prevPrevMove != board.NoMove && prevPrevPiece != board.NoPiece {
				scores[i] += mo.follow[prevPrevPiece][prevPrevMove.To()][movePiece][to] / 2
			}
		}
	}

	return scores
}

// quietValue returns the threat + pawn-hash + eval-feature contribution for
// a quiet move, the part of the combined history value that needs no
// previous-move context.
func (mo *MoveOrderer) quietValue(pos *board.Position, m board.Move) int {
	from, to := m.From(), m.To()
	threatState := 0
	if pos.IsSquareAttacked(from, pos.SideToMove.Other()) {
		threatState = 1
	}
	value := mo.threat[threatState][from][to]

	piece := pos.PieceAt(from)
	if piece != board.NoPiece {
		value += mo.pawnHash[pawnHashBucket(pos.PawnKey)][piece][to]
		value += mo.evalFeature[evalFeatureBucket(pos)][piece][to]
	}
	return value
}

// HistoryValue returns the full combined history score spec'd for
// context-dependent pruning: threat + counter + follow + pawn + eval-feature
// for quiets, or the capture table for captures.
func (mo *MoveOrderer) HistoryValue(pos *board.Position, m, prevMove, prevPrevMove board.Move, prevPrevPiece board.Piece) int {
	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == board.NoPiece {
		return 0
	}

	if m.IsCapture() {
		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else if capturedPiece := pos.PieceAt(to); capturedPiece != board.NoPiece {
			victim = capturedPiece.Type()
		} else {
			return 0
		}
		return mo.GetCaptureHistoryScore(piece, to, victim)
	}

	value := mo.quietValue(pos, m)

	if prevMove != board.NoMove {
		prevPiece := pos.PieceAt(prevMove.To())
		if prevPiece != board.NoPiece {
			value += mo.counter[prevPiece][prevMove.To()][piece][to]
		}
	}
	if prevPrevMove != board.NoMove && prevPrevPiece != board.NoPiece {
		value += mo.follow[prevPrevPiece][prevPrevMove.To()][piece][to]
	}

	return value
}

// scoreMove returns the ordering score for a single move.
func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move) int {
	// TT move gets highest priority
	if m == ttMove {
		return TTMoveScore
	}

	// Captures: MVV-LVA
	if m.IsCapture() {
		attackerPiece := pos.PieceAt(m.From())
		if attackerPiece == board.NoPiece {
			return GoodCaptureBase // Safety check
		}
		attacker := attackerPiece.Type()

		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			capturedPiece := pos.PieceAt(m.To())
			if capturedPiece == board.NoPiece {
				// Safety check - shouldn't happen but prevents panic
				return GoodCaptureBase
			}
			victim = capturedPiece.Type()
		}

		// Bounds check for safety (victim should be < King for captures)
		if victim >= board.King || attacker > board.King {
			return GoodCaptureBase
		}

		// Check if it's a winning capture using MVV-LVA
		score := GoodCaptureBase + mvvLva[victim][attacker]*1000

		// Add capture history bonus
		captureHistScore := mo.GetCaptureHistoryScore(attackerPiece, m.To(), victim)
		score += captureHistScore / 4 // Scale appropriately

		// Bonus for capturing with a less valuable piece
		if pieceValues[attacker] < pieceValues[victim] {
			score += 10000 // Clearly winning capture
		}

		return score
	}

	// Promotions (non-capture)
	if m.IsPromotion() {
		return GoodCaptureBase - 1000 + int(m.Promotion())*100
	}

	// Killer moves
	if m == mo.killers[ply][0] {
		return KillerScore1
	}
	if m == mo.killers[ply][1] {
		return KillerScore2
	}

	// Combined history for quiet moves: threat + pawn-hash + eval-feature.
	// Counter/follow are layered on top by ScoreMovesWithCounter, which has
	// the previous-move context this function doesn't.
	return mo.quietValue(pos, m)
}

// SortMoves sorts moves by their scores (descending).
func SortMoves(moves *board.MoveList, scores []int) {
	// Simple selection sort (sufficient for ~40 moves)
	n := moves.Len()
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			// Swap moves
			moves.Swap(i, best)
			// Swap scores
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// PickMove selects the best remaining move and moves it to position index.
// This allows lazy move sorting (only sort as much as needed).
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers adds a killer move at the given ply.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	// Ignore plies past the end of the killer table
	if ply >= MaxPly {
		return
	}

	// Don't store if it's already the first killer
	if mo.killers[ply][0] == m {
		return
	}

	// Shift killers
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateThreatHistory updates the threat-keyed quiet history table, applying
// the gravity formula so the table saturates instead of needing a periodic
// halving pass.
func (mo *MoveOrderer) UpdateThreatHistory(pos *board.Position, m board.Move, depth int, isGood bool) {
	from := m.From()
	threatState := 0
	if pos.IsSquareAttacked(from, pos.SideToMove.Other()) {
		threatState = 1
	}
	applyGravity(&mo.threat[threatState][from][m.To()], gravityBonus(depth, isGood))
}

// UpdatePawnHistory updates the pawn-structure-keyed quiet history table.
func (mo *MoveOrderer) UpdatePawnHistory(pos *board.Position, piece board.Piece, to board.Square, depth int, isGood bool) {
	if piece == board.NoPiece {
		return
	}
	applyGravity(&mo.pawnHash[pawnHashBucket(pos.PawnKey)][piece][to], gravityBonus(depth, isGood))
}

// UpdateEvalFeatureHistory updates the eval-feature-keyed quiet history table.
func (mo *MoveOrderer) UpdateEvalFeatureHistory(pos *board.Position, piece board.Piece, to board.Square, depth int, isGood bool) {
	if piece == board.NoPiece {
		return
	}
	applyGravity(&mo.evalFeature[evalFeatureBucket(pos)][piece][to], gravityBonus(depth, isGood))
}

// UpdateCounterMove updates the counter move table.
func (mo *MoveOrderer) UpdateCounterMove(prevMove, counterMove board.Move, pos *board.Position) {
	if prevMove == board.NoMove {
		return
	}

	piece := pos.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return
	}

	mo.counterMoves[piece][prevMove.To()] = counterMove
}

// GetCounterMove returns the counter move for a previous move.
func (mo *MoveOrderer) GetCounterMove(prevMove board.Move, pos *board.Position) board.Move {
	if prevMove == board.NoMove {
		return board.NoMove
	}

	piece := pos.PieceAt(prevMove.To())
	if piece == board.NoPiece {
		return board.NoMove
	}

	return mo.counterMoves[piece][prevMove.To()]
}

// GetThreatHistoryScore returns the threat-table score for a move.
// Used for history pruning in search.
func (mo *MoveOrderer) GetThreatHistoryScore(pos *board.Position, m board.Move) int {
	threatState := 0
	if pos.IsSquareAttacked(m.From(), pos.SideToMove.Other()) {
		threatState = 1
	}
	return mo.threat[threatState][m.From()][m.To()]
}

// UpdateCaptureHistory updates the capture history for a move.
func (mo *MoveOrderer) UpdateCaptureHistory(attackerPiece board.Piece, toSq board.Square, capturedType board.PieceType, depth int, isGood bool) {
	if attackerPiece == board.NoPiece || capturedType >= board.King {
		return
	}

	applyGravity(&mo.capture[attackerPiece][toSq][capturedType], gravityBonus(depth, isGood))
}

// GetCaptureHistoryScore returns the capture history score for a capture move.
func (mo *MoveOrderer) GetCaptureHistoryScore(attackerPiece board.Piece, toSq board.Square, capturedType board.PieceType) int {
	if attackerPiece == board.NoPiece || capturedType >= board.King {
		return 0
	}
	return mo.capture[attackerPiece][toSq][capturedType]
}

// UpdateCounterHistory updates the counter history for a quiet move, keyed
// by the opponent's immediately preceding move.
func (mo *MoveOrderer) UpdateCounterHistory(prevMove, goodMove board.Move, prevPiece, movePiece board.Piece, depth int, isGood bool) {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return
	}

	prevTo := prevMove.To()
	moveTo := goodMove.To()
	applyGravity(&mo.counter[prevPiece][prevTo][movePiece][moveTo], gravityBonus(depth, isGood))
}

// GetCounterHistoryScore returns the counter-history score for a move given
// the previous move.
func (mo *MoveOrderer) GetCounterHistoryScore(prevMove board.Move, prevPiece, movePiece board.Piece, moveTo board.Square) int {
	if prevMove == board.NoMove || prevPiece == board.NoPiece || movePiece == board.NoPiece {
		return 0
	}
	return mo.counter[prevPiece][prevMove.To()][movePiece][moveTo]
}

// UpdateFollowHistory updates the follow history for a quiet move, keyed by
// our own move two plies ago.
func (mo *MoveOrderer) UpdateFollowHistory(twoAgoMove, goodMove board.Move, twoAgoPiece, movePiece board.Piece, depth int, isGood bool) {
	if twoAgoMove == board.NoMove || twoAgoPiece == board.NoPiece || movePiece == board.NoPiece {
		return
	}

	twoAgoTo := twoAgoMove.To()
	moveTo := goodMove.To()
	applyGravity(&mo.follow[twoAgoPiece][twoAgoTo][movePiece][moveTo], gravityBonus(depth, isGood))
}

// GetFollowHistoryScore returns the follow-history score for a move given
// our move two plies ago.
func (mo *MoveOrderer) GetFollowHistoryScore(twoAgoMove board.Move, twoAgoPiece, movePiece board.Piece, moveTo board.Square) int {
	if twoAgoMove == board.NoMove || twoAgoPiece == board.NoPiece || movePiece == board.NoPiece {
		return 0
	}
	return mo.follow[twoAgoPiece][twoAgoMove.To()][movePiece][moveTo]
}
