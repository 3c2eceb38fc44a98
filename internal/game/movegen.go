package game

import "fmt"

// GenerateMoves enumerates every legal forward move for the side to
// move: board moves (including automatic promotion on arrival at the
// far row) and drops from hand, filtered to those that do not leave
// the mover's own lion in check. Bounded by MaxMoves.
func (p *Position) GenerateMoves() *MoveList {
	mover := p.Turn()
	pseudo := p.pseudoMoves()
	result := &MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		u, err := p.PlayMove(m)
		if err != nil {
			continue
		}
		if !p.InCheck(mover) {
			result.Add(m)
		}
		p.UndoMove(u)
	}
	return result
}

// pseudoMoves enumerates moves without filtering for self-check: every
// board move reachable per the piece's pattern onto a square not held
// by one of the mover's own pieces, plus every legal drop.
func (p *Position) pseudoMoves() *MoveList {
	mover := p.Turn()
	ml := &MoveList{}
	for slot := Slot(0); slot < NumSlots; slot++ {
		loc := p.Pieces[slot]
		if loc.Owner != mover {
			continue
		}
		if loc.Square.OnBoard() {
			for to := Square(0); to < NumSquares; to++ {
				if !p.attacks(slot, to) {
					continue
				}
				if occ := p.occupant(to); occ != NoSlot && p.Pieces[occ].Owner == mover {
					continue
				}
				ml.Add(Move{Piece: slot, To: to})
			}
			continue
		}
		if slot.IsLion() {
			continue // invariant 1: lions are never in hand
		}
		if twin := slot ^ 1; twin < slot && !p.Pieces[twin].Square.OnBoard() && p.Pieces[twin].Owner == mover {
			continue // both of the pair in hand: identical drops, emit once
		}
		for to := Square(0); to < NumSquares; to++ {
			if p.occupant(to) != NoSlot {
				continue
			}
			if slot.KindOf() == Chick && FarRowFor(mover, to.Row()) {
				continue // a chick may not drop already "promoted"
			}
			ml.Add(Move{Piece: slot, To: to})
		}
	}
	return ml
}

// MoveValid reports whether m is a legal move in p — equivalent to
// checking membership in GenerateMoves(p) but without allocating a
// full move list, for callers (such as the probe tool) validating a
// single parsed move.
func (p *Position) MoveValid(m Move) bool {
	cp := p.Copy()
	if _, err := cp.PlayMove(m); err != nil {
		return false
	}
	return !cp.InCheck(p.Turn())
}

// PlayMove applies m to p in place and returns the unmove record
// needed to reverse it. It rejects structurally illegal moves (wrong
// mover, unreachable destination, landing on one's own piece,
// dropping a lion, dropping a chick on the far row) but does not
// check whether the move leaves the mover's lion in check — callers
// that need legality use GenerateMoves or MoveValid.
func (p *Position) PlayMove(m Move) (Unmove, error) {
	if m.Piece >= NumSlots {
		return Unmove{}, fmt.Errorf("game: slot %v out of range", m.Piece)
	}
	mover := p.Turn()
	loc := p.Pieces[m.Piece]
	if loc.Owner != mover {
		return Unmove{}, fmt.Errorf("game: slot %v does not belong to %v", m.Piece, mover)
	}
	if !m.To.OnBoard() {
		return Unmove{}, fmt.Errorf("game: move destination must be on board")
	}
	if occ := p.occupant(m.To); occ != NoSlot {
		if p.Pieces[occ].Owner == mover {
			return Unmove{}, fmt.Errorf("game: %v already holds %v's own piece", m.To, mover)
		}
		if occ.IsLion() {
			// Capturing a lion ends the game; positions where it is
			// possible are resolved before any move is played.
			return Unmove{}, fmt.Errorf("game: %v holds a lion", m.To)
		}
	}

	from := loc.Square
	if from.OnBoard() {
		if !p.attacks(m.Piece, m.To) {
			return Unmove{}, fmt.Errorf("game: %v cannot reach %v from %v", m.Piece, m.To, from)
		}
	} else {
		if m.Piece.IsLion() {
			return Unmove{}, fmt.Errorf("game: lion cannot be dropped")
		}
		if m.Piece.KindOf() == Chick && FarRowFor(mover, m.To.Row()) {
			return Unmove{}, fmt.Errorf("game: chick cannot drop on the far row")
		}
	}

	capture := p.nonLionOccupant(m.To)
	capturePromoted := false
	if capture != NoSlot {
		capturePromoted = p.IsPromoted(capture)
		p.Pieces[capture] = PieceLoc{InHand, mover}
		if capture < 2 {
			p.Promoted[capture] = false
		}
	}

	p.Pieces[m.Piece] = PieceLoc{m.To, mover}
	promote := false
	if m.Piece.KindOf() == Chick && !p.IsPromoted(m.Piece) && FarRowFor(mover, m.To.Row()) {
		p.Promoted[m.Piece] = true
		promote = true
	}

	p.GoteToMove = !p.GoteToMove
	p.RecomputeOcc()

	return Unmove{
		Piece:           m.Piece,
		From:            from,
		Capture:         capture,
		Promote:         promote,
		CapturePromoted: capturePromoted,
	}, nil
}

// UndoMove reverses a move previously applied by PlayMove. u must be
// the unmove this exact PlayMove call returned; UndoMove does not
// re-validate the move; matched play/undo pairs are trusted.
func (p *Position) UndoMove(u Unmove) {
	p.GoteToMove = !p.GoteToMove
	mover := p.Turn()

	to := p.Pieces[u.Piece].Square
	p.Pieces[u.Piece] = PieceLoc{u.From, mover}
	if u.Promote {
		p.Promoted[u.Piece] = false
	}

	if u.Capture != NoSlot {
		p.Pieces[u.Capture] = PieceLoc{to, mover.Other()}
		if u.Capture < 2 {
			p.Promoted[u.Capture] = u.CapturePromoted
		}
	}

	p.RecomputeOcc()
}

// GenerateUnmoves enumerates every predecessor position of p under
// the move the side not to move in p just made, bounded by
// MaxUnmoves. Used by retrograde analysis to walk backward from
// positions of known value. Each returned unmove, applied via
// UndoMove, yields a live position that independently satisfies
// Valid.
func (p *Position) GenerateUnmoves() *UnmoveList {
	prevMover := p.Turn().Other()
	result := &UnmoveList{}

	for slot := Slot(0); slot < NumSlots; slot++ {
		loc := p.Pieces[slot]
		if loc.Owner != prevMover || !loc.Square.OnBoard() {
			continue
		}
		to := loc.Square
		kind := slot.KindOf()

		for _, cand := range sourceCandidates(kind, prevMover, p.IsPromoted(slot), to) {
			for _, capture := range captureCandidates(p, prevMover) {
				if cand.from == InHand && capture != NoSlot {
					continue // a drop lands on an empty square, it cannot capture
				}
				for _, capPromoted := range capturePromotionChoices(capture) {
					u := Unmove{
						Piece:           slot,
						From:            cand.from,
						Capture:         capture,
						Promote:         cand.promote,
						CapturePromoted: capPromoted,
					}
					pred := p.Copy()
					if !pred.applyUnmoveUnchecked(u) || !pred.Valid() {
						continue
					}
					if _, over := pred.Terminal(); over {
						continue // the game was already over, no move was made from here
					}
					result.Add(u)
				}
			}
		}
	}
	return result
}

type sourceCandidate struct {
	from    Square
	promote bool
}

// sourceCandidates lists the (source, promotion-toggle) pairs
// consistent with a piece of kind/owner/currently-promoted having
// just moved to "to". A rooster may have arrived either as a rooster
// moving normally, or as a chick promoting on arrival; a drop is a
// candidate whenever the piece could legally have been dropped (never
// promoted, never a lion).
func sourceCandidates(kind Kind, owner Owner, promoted bool, to Square) []sourceCandidate {
	var out []sourceCandidate
	for from := Square(0); from < NumSquares; from++ {
		if reaches(kind, owner, promoted, from, to) {
			out = append(out, sourceCandidate{from, false})
		}
	}
	if kind == Chick && promoted && FarRowFor(owner, to.Row()) {
		for from := Square(0); from < NumSquares; from++ {
			if reaches(kind, owner, false, from, to) {
				out = append(out, sourceCandidate{from, true})
			}
		}
	}
	if kind != Lion && !promoted && !(kind == Chick && FarRowFor(owner, to.Row())) {
		out = append(out, sourceCandidate{InHand, false})
	}
	return out
}

// captureCandidates lists the slots that could have just been
// captured by prevMover's move: none, or any piece currently sitting
// in prevMover's hand (a captured piece is reassigned to its
// capturer's hand the instant it is taken). Two same-kind pieces both
// in that hand are indistinguishable, so only one of the pair is
// offered.
func captureCandidates(p *Position, prevMover Owner) []Slot {
	out := []Slot{NoSlot}
	for s := Slot(0); s < LionS; s++ {
		if p.Pieces[s].Owner != prevMover || p.Pieces[s].Square != InHand {
			continue
		}
		if twin := s ^ 1; twin < s && p.Pieces[twin].Owner == prevMover && p.Pieces[twin].Square == InHand {
			continue
		}
		out = append(out, s)
	}
	return out
}

// capturePromotionChoices enumerates whether the captured slot (if
// any, and if it is a chick) might have been a rooster the instant
// before capture — unrecoverable from the current position alone,
// since capture always demotes.
func capturePromotionChoices(capture Slot) []bool {
	if capture != NoSlot && capture < 2 {
		return []bool{false, true}
	}
	return []bool{false}
}

// applyUnmoveUnchecked reverses u against p without validating
// reachability — GenerateUnmoves has already enumerated only
// structurally consistent candidates, and validity is checked
// afterward via Valid. Reports false if u.Piece is out of range.
func (p *Position) applyUnmoveUnchecked(u Unmove) bool {
	if u.Piece >= NumSlots {
		return false
	}
	p.UndoMove(u)
	return true
}
