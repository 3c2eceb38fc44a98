package game

import "fmt"

// PieceLoc is where a piece slot currently sits: a square (or InHand)
// and its current owner. For the two lion slots Owner never changes;
// for the other six it changes on capture.
type PieceLoc struct {
	Square Square
	Owner  Owner
}

// Position is the complete state of a Dōbutsu Shōgi position: the
// eight piece locations, the chick promotion bits, the side to move,
// and a redundant occupancy bitmap kept in sync with the piece array.
//
// Positions are value objects. PlayMove, UndoMove, NullMove and
// TurnPosition all mutate in place — copy first if the prior state is
// still needed.
type Position struct {
	Pieces     [NumSlots]PieceLoc
	Promoted   [2]bool // indexed by ChickS/ChickG
	GoteToMove bool

	// Occ[owner] has bit s set iff owner has a piece on board square
	// s. The hand is not represented here. Derived from Pieces; kept
	// in sync by every mutator, never computed on the fly by readers.
	Occ [NumOwners]uint16
}

// Turn returns the side to move.
func (p *Position) Turn() Owner {
	if p.GoteToMove {
		return Gote
	}
	return Sente
}

// InitialPosition returns the Dōbutsu Shōgi starting position.
func InitialPosition() *Position {
	p := &Position{}
	p.Pieces[ChickS] = PieceLoc{NewSquare(1, 2), Sente}
	p.Pieces[ChickG] = PieceLoc{NewSquare(1, 1), Gote}
	p.Pieces[GiraffeS] = PieceLoc{NewSquare(2, 3), Sente}
	p.Pieces[GiraffeG] = PieceLoc{NewSquare(0, 0), Gote}
	p.Pieces[ElephantS] = PieceLoc{NewSquare(0, 3), Sente}
	p.Pieces[ElephantG] = PieceLoc{NewSquare(2, 0), Gote}
	p.Pieces[LionS] = PieceLoc{NewSquare(1, 3), Sente}
	p.Pieces[LionG] = PieceLoc{NewSquare(1, 0), Gote}
	p.RecomputeOcc()
	return p
}

// Copy returns an independent copy of p.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// RecomputeOcc rebuilds Occ from Pieces. Every mutator calls this
// rather than patching individual bits, trading a few cycles for the
// certainty that Occ can never drift from Pieces.
func (p *Position) RecomputeOcc() {
	p.Occ[Sente] = 0
	p.Occ[Gote] = 0
	for _, loc := range p.Pieces {
		if loc.Square.OnBoard() {
			p.Occ[loc.Owner] |= 1 << uint(loc.Square)
		}
	}
}

// nonLionOccupant returns the non-lion slot occupying sq, or NoSlot.
// Move application only ever needs to find capturable pieces, and
// lions are never capturable in a position that satisfies Valid.
func (p *Position) nonLionOccupant(sq Square) Slot {
	for s := Slot(0); s < LionS; s++ {
		if p.Pieces[s].Square == sq {
			return s
		}
	}
	return NoSlot
}

// IsPromoted reports whether slot (which must be ChickS or ChickG) is
// currently a promoted rooster.
func (p *Position) IsPromoted(slot Slot) bool {
	return slot < 2 && p.Promoted[slot]
}

// lionSquare returns the board square of owner's lion (lions are
// never in hand, per invariant 1).
func (p *Position) lionSquare(owner Owner) Square {
	if owner == Sente {
		return p.Pieces[LionS].Square
	}
	return p.Pieces[LionG].Square
}

func forwardDir(owner Owner) int {
	if owner == Sente {
		return -1
	}
	return 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// attacks reports whether the piece in slot, sitting at its current
// board location, attacks square to. A piece in hand attacks nothing.
func (p *Position) attacks(slot Slot, to Square) bool {
	loc := p.Pieces[slot]
	return reaches(slot.KindOf(), loc.Owner, p.IsPromoted(slot), loc.Square, to)
}

// occupant returns the slot occupying sq (lion or not), or NoSlot if
// sq is empty. Move generation uses this to reject moving onto a
// square already held by one of the mover's own pieces.
func (p *Position) occupant(sq Square) Slot {
	for s, loc := range p.Pieces {
		if loc.Square == sq {
			return Slot(s)
		}
	}
	return NoSlot
}

// InCheck reports whether owner's lion is currently attacked by any
// of the opponent's on-board pieces.
func (p *Position) InCheck(owner Owner) bool {
	lionSq := p.lionSquare(owner)
	opp := owner.Other()
	for s := Slot(0); s < NumSlots; s++ {
		if p.Pieces[s].Owner == opp && p.attacks(s, lionSq) {
			return true
		}
	}
	return false
}

// Terminal reports whether the position already represents a won
// game (invariant 6): a lion sitting on the opponent's home row
// walked there and was not captured, which ends the game at once.
// winner is meaningful only when ok is true.
func (p *Position) Terminal() (winner Owner, ok bool) {
	if sq := p.Pieces[LionS].Square; sq.OnBoard() && FarRowFor(Sente, sq.Row()) {
		return Sente, true
	}
	if sq := p.Pieces[LionG].Square; sq.OnBoard() && FarRowFor(Gote, sq.Row()) {
		return Gote, true
	}
	return Sente, false
}

// Valid checks invariants 1–5: the lions occupy distinct board
// squares, no two pieces share a board square, every chick held in
// hand has its promotion bit clear, Occ agrees with Pieces, and the
// side not to move is not currently in check (an unanswered check is
// not a legal position to be sitting in — it is the mover's turn to
// resolve it).
func (p *Position) Valid() bool {
	lionS, lionG := p.Pieces[LionS].Square, p.Pieces[LionG].Square
	if !lionS.OnBoard() || !lionG.OnBoard() || lionS == lionG {
		return false
	}

	var check [NumOwners]uint16
	seen := make(map[Square]bool)
	for _, loc := range p.Pieces {
		if loc.Square.OnBoard() {
			if seen[loc.Square] {
				return false
			}
			seen[loc.Square] = true
			check[loc.Owner] |= 1 << uint(loc.Square)
		}
	}
	if check != p.Occ {
		return false
	}

	if !p.Pieces[ChickS].Square.OnBoard() && p.Promoted[ChickS] {
		return false
	}
	if !p.Pieces[ChickG].Square.OnBoard() && p.Promoted[ChickG] {
		return false
	}

	return !p.InCheck(p.Turn().Other())
}

// Equal compares the non-redundant fields of two positions. Occ is
// derived from Pieces by construction, so comparing it too would only
// duplicate the Pieces comparison.
func (p *Position) Equal(o *Position) bool {
	return p.Pieces == o.Pieces && p.Promoted == o.Promoted && p.GoteToMove == o.GoteToMove
}

// NullMove flips whose turn it is without moving a piece. For
// analysis only (e.g. probing whether a side's lion is currently
// attacked) — never produced by real play.
func (p *Position) NullMove() {
	p.GoteToMove = !p.GoteToMove
}

func mirrorRow(sq Square) Square {
	if !sq.OnBoard() {
		return sq
	}
	return NewSquare(sq.Col(), NumRows-1-sq.Row())
}

// TurnPosition reflects the board across its horizontal mid-line (row
// r becomes NumRows-1-r; columns are unchanged) and relabels every
// piece as belonging to the other side. Combined with flipping the
// turn bit, a Gote-to-move position becomes the equivalent
// Sente-to-move position with identical game value. This is an
// involution.
//
// The six fluid-ownership slots just get their Owner field flipped in
// place, since slot identity there is a label, not a claim about
// ownership. The two lion slots have fixed ownership (LionS is always
// Sente's, LionG always Gote's, per the PieceLoc doc comment),
// so relabeling them means swapping which slot holds which mirrored
// square rather than flipping Owner in place — otherwise LionS would
// end up holding a Gote-owned piece, which the canonicalizer and
// the position coder both assume can never happen.
func (p *Position) TurnPosition() {
	for s := ChickS; s <= ElephantG; s++ {
		loc := &p.Pieces[s]
		loc.Square = mirrorRow(loc.Square)
		loc.Owner = loc.Owner.Other()
	}

	lionS, lionG := p.Pieces[LionS], p.Pieces[LionG]
	p.Pieces[LionS] = PieceLoc{Square: mirrorRow(lionG.Square), Owner: Sente}
	p.Pieces[LionG] = PieceLoc{Square: mirrorRow(lionS.Square), Owner: Gote}

	p.GoteToMove = !p.GoteToMove
	p.RecomputeOcc()
}

func (p *Position) String() string {
	s, err := FormatPosition(p)
	if err != nil {
		return fmt.Sprintf("<invalid position: %v>", err)
	}
	return s
}
