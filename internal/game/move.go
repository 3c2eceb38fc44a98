package game

// MaxMoves bounds the legal moves from any position. For example, a
// lion plus two roosters give at most 8 + 6 + 6 = 20 piece moves, and
// with both giraffes and both elephants in hand, drops add one move
// per kind on each of the 8 squares left empty: 36 in all.
const MaxMoves = 40

// MaxUnmoves bounds the legal unmoves from any position. Sized for
// the densest retrograde case, several attackers each with a full
// complement of uncapture choices.
const MaxUnmoves = 77

// NoSlot is the sentinel "no piece" slot used by Unmove.Capture when
// the move being undone was not a capture.
const NoSlot Slot = NumSlots

// Move is (piece-slot, destination-square); the owner is inferred
// from whichever side is to move. Drops (placing a piece held in
// hand) are moves whose implicit source is InHand.
type Move struct {
	Piece Slot
	To    Square
}

// Unmove is the inverse of a Move: enough information to reconstruct
// the position it was applied to. Two promotion bits travel with it,
// because capture always demotes the captured piece to a plain chick
// before it returns to hand — that erases whether it was a rooster,
// information only the unmove record can restore:
//   - Promote: the moving piece (Piece) promoted as part of this move.
//   - CapturePromoted: the captured piece (Capture) was a rooster the
//     instant before it was captured. Meaningless when Capture is
//     NoSlot or not a chick slot.
type Unmove struct {
	Piece           Slot
	From            Square
	Capture         Slot // NoSlot if the move did not capture
	Promote         bool
	CapturePromoted bool
}

// MoveList is a fixed-capacity move buffer; adding a move never
// allocates.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add appends a move. Callers are trusted not to exceed MaxMoves —
// GenerateMoves never does.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently held.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Slice returns the moves collected so far.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.count] }

// UnmoveList is the unmove analogue of MoveList, sized for MaxUnmoves.
type UnmoveList struct {
	unmoves [MaxUnmoves]Unmove
	count   int
}

// Add appends an unmove.
func (ul *UnmoveList) Add(u Unmove) {
	ul.unmoves[ul.count] = u
	ul.count++
}

// Len returns the number of unmoves currently held.
func (ul *UnmoveList) Len() int { return ul.count }

// Get returns the unmove at index i.
func (ul *UnmoveList) Get(i int) Unmove { return ul.unmoves[i] }

// Slice returns the unmoves collected so far.
func (ul *UnmoveList) Slice() []Unmove { return ul.unmoves[:ul.count] }
