package game

import "fmt"

// FormatMove renders m, about to be played in pos, in the move string
// form "<Piece><from><×/-><to>[+]": the piece letter uses the mover's
// case, '*' stands in for "from" on a drop, '×' separates a capture
// from a quiet move, and a trailing '+' marks automatic promotion.
func FormatMove(pos *Position, m Move) (string, error) {
	if m.Piece >= NumSlots {
		return "", fmt.Errorf("%w: slot %v out of range", ErrMalformedString, m.Piece)
	}
	mover := pos.Turn()
	loc := pos.Pieces[m.Piece]
	if loc.Owner != mover {
		return "", fmt.Errorf("%w: slot %v is not %v's to move", ErrMalformedString, m.Piece, mover)
	}

	letter := kindLetter(m.Piece.KindOf(), mover, pos.IsPromoted(m.Piece))
	sep := "-"
	if occ := pos.nonLionOccupant(m.To); occ != NoSlot && pos.Pieces[occ].Owner != mover {
		sep = "×"
	}

	promote := m.Piece.KindOf() == Chick && !pos.IsPromoted(m.Piece) && FarRowFor(mover, m.To.Row())

	s := string(letter) + loc.Square.String() + sep + m.To.String()
	if promote {
		s += "+"
	}
	return s, nil
}

// ParseMove parses the move string form against pos, resolving the
// piece letter and source square to the exact slot currently sitting
// there. Slot identity among indistinguishable pieces is otherwise
// unobservable from the string alone.
func ParseMove(pos *Position, s string) (Move, error) {
	r := []rune(s)
	if len(r) < 4 {
		return Move{}, fmt.Errorf("%w: move string %q too short", ErrMalformedString, s)
	}
	if r[0] > 0xFF {
		return Move{}, fmt.Errorf("%w: bad piece letter %q", ErrMalformedString, r[0])
	}
	kind, owner, promoted, ok := pieceFromChar(byte(r[0]))
	if !ok {
		return Move{}, fmt.Errorf("%w: bad piece letter %q", ErrMalformedString, r[0])
	}
	mover := pos.Turn()
	if owner != mover {
		return Move{}, fmt.Errorf("%w: it is %v's move", ErrMalformedString, mover)
	}

	rest := r[1:]
	var from Square
	var err error
	if rest[0] == '*' {
		from = InHand
		rest = rest[1:]
	} else {
		if len(rest) < 2 {
			return Move{}, fmt.Errorf("%w: missing source square", ErrMalformedString)
		}
		from, err = ParseSquare(string(rest[:2]))
		if err != nil {
			return Move{}, err
		}
		rest = rest[2:]
	}

	if len(rest) < 1 || (rest[0] != '-' && rest[0] != '×') {
		return Move{}, fmt.Errorf("%w: missing capture separator", ErrMalformedString)
	}
	rest = rest[1:]

	if len(rest) < 2 {
		return Move{}, fmt.Errorf("%w: missing destination square", ErrMalformedString)
	}
	to, err := ParseSquare(string(rest[:2]))
	if err != nil {
		return Move{}, err
	}

	slot := NoSlot
	for cand := Slot(0); cand < NumSlots; cand++ {
		loc := pos.Pieces[cand]
		if loc.Owner != owner || cand.KindOf() != kind {
			continue
		}
		if loc.Square != from {
			continue
		}
		if kind == Chick && pos.IsPromoted(cand) != promoted {
			continue
		}
		slot = cand
		break
	}
	if slot == NoSlot {
		return Move{}, fmt.Errorf("%w: no matching %v at %v", ErrMalformedString, kind, from)
	}

	return Move{Piece: slot, To: to}, nil
}
