package game

import "testing"

func parsePos(t *testing.T, s string) *Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", s, err)
	}
	return p
}

func TestGenerateMovesBounds(t *testing.T) {
	for _, s := range []string{
		"S/gle/-c-/-C-/ELG/-",
		"S/L--/--l/---/---/ccggee",
		"S/l--/---/---/--L/CcGgEe",
	} {
		p := parsePos(t, s)
		ml := p.GenerateMoves()
		if ml.Len() > MaxMoves {
			t.Errorf("GenerateMoves(%q) produced %d moves, exceeds MaxMoves=%d", s, ml.Len(), MaxMoves)
		}
		if ml.Len() == 0 {
			t.Errorf("GenerateMoves(%q) produced no moves", s)
		}
	}
}

func TestGenerateMovesNoDuplicates(t *testing.T) {
	// With both giraffes and both elephants in Sente's hand, naive
	// per-slot drop enumeration would emit every drop twice.
	p := parsePos(t, "S/l--/---/---/--L/GGEEcc")
	ml := p.GenerateMoves()
	seen := make(map[Move]bool)
	dests := make(map[Square]map[Kind]bool)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if seen[m] {
			t.Errorf("move %v generated twice", m)
		}
		seen[m] = true
		if p.Pieces[m.Piece].Square == InHand {
			byKind := dests[m.To]
			if byKind == nil {
				byKind = make(map[Kind]bool)
				dests[m.To] = byKind
			}
			if byKind[m.Piece.KindOf()] {
				t.Errorf("two indistinguishable %v drops on %v", m.Piece.KindOf(), m.To)
			}
			byKind[m.Piece.KindOf()] = true
		}
	}
}

func TestGenerateUnmovesBounds(t *testing.T) {
	for _, s := range []string{
		"S/gle/-c-/-C-/ELG/-",
		"S/---/gel/---/-rL/cge",
	} {
		p := parsePos(t, s)
		ul := p.GenerateUnmoves()
		if ul.Len() > MaxUnmoves {
			t.Errorf("GenerateUnmoves(%q) produced %d unmoves, exceeds MaxUnmoves=%d", s, ul.Len(), MaxUnmoves)
		}
		if ul.Len() == 0 {
			t.Errorf("GenerateUnmoves(%q) produced no unmoves", s)
		}
	}
}

// TestGenerateUnmovesReversibility checks the core retrograde
// contract: undoing any generated unmove yields a valid predecessor
// from which replaying the implied move reproduces the position
// exactly, unmove record included.
func TestGenerateUnmovesReversibility(t *testing.T) {
	for _, s := range []string{
		"S/gle/-c-/-C-/ELG/-",
		"S/---/gel/---/-rL/cge",
		"G/gl-/-e-/-C-/ELG/c",
	} {
		p := parsePos(t, s)
		ul := p.GenerateUnmoves()
		for i := 0; i < ul.Len(); i++ {
			u := ul.Get(i)
			pred := p.Copy()
			pred.UndoMove(u)
			if !pred.Valid() {
				t.Errorf("%q: unmove %+v leads to an invalid predecessor", s, u)
				continue
			}
			if _, over := pred.Terminal(); over {
				t.Errorf("%q: unmove %+v leads to a finished game", s, u)
				continue
			}
			m := Move{Piece: u.Piece, To: p.Pieces[u.Piece].Square}
			replayed, err := pred.PlayMove(m)
			if err != nil {
				t.Errorf("%q: replaying %v after unmove %+v: %v", s, m, u, err)
				continue
			}
			if !pred.Equal(p) {
				t.Errorf("%q: replaying %v after unmove %+v does not reproduce the position", s, m, u)
			}
			if replayed != u {
				t.Errorf("%q: replaying %v produced unmove %+v, want %+v", s, m, replayed, u)
			}
		}
	}
}

func TestGenerateUnmovesIncludesDropUndo(t *testing.T) {
	// Gote just moved; a lone Gote giraffe in the middle of an
	// otherwise empty board could have been dropped there.
	p := parsePos(t, "S/l--/-g-/---/--L/CcGEe")
	ul := p.GenerateUnmoves()
	found := false
	for i := 0; i < ul.Len(); i++ {
		u := ul.Get(i)
		if u.From == InHand && u.Piece.KindOf() == Giraffe {
			found = true
			if u.Capture != NoSlot {
				t.Errorf("drop undo %+v should not carry a capture", u)
			}
		}
	}
	if !found {
		t.Error("expected an unmove returning the Gote giraffe to hand")
	}
}

func TestGenerateUnmovesUncapturesFromPreviousMoversHand(t *testing.T) {
	// Gote holds a captured chick: some unmove must put a Sente chick
	// back on the board under a Gote piece that just took it.
	p := parsePos(t, "G/gl-/-e-/-C-/ELG/c")
	// Gote to move means Sente moved last; flip perspective so the
	// previous mover is Gote, who holds the chick.
	p.NullMove()
	ul := p.GenerateUnmoves()
	found := false
	for i := 0; i < ul.Len(); i++ {
		if u := ul.Get(i); u.Capture != NoSlot {
			found = true
			if u.From == InHand {
				t.Errorf("unmove %+v combines a drop with a capture", u)
			}
		}
	}
	if !found {
		t.Error("expected at least one uncapturing unmove with a chick in the previous mover's hand")
	}
}

func TestPlayUndoRoundTrip(t *testing.T) {
	p := InitialPosition()
	orig := p.Copy()
	ml := p.GenerateMoves()
	if ml.Len() == 0 {
		t.Fatal("initial position must have legal moves")
	}
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		u, err := p.PlayMove(m)
		if err != nil {
			t.Fatalf("PlayMove(%v): %v", m, err)
		}
		if !p.Valid() {
			t.Errorf("position after playing %v is not valid", m)
		}
		p.UndoMove(u)
		if !p.Equal(orig) {
			t.Errorf("UndoMove did not restore the original position after move %v", m)
		}
	}
}

func TestPlayMoveAutoPromotes(t *testing.T) {
	p := parsePos(t, "S/l--/-C-/---/--L/cgGeE")
	m := Move{Piece: ChickS, To: NewSquare(1, 0)}
	if !p.attacks(ChickS, m.To) {
		t.Fatal("test setup: chick should reach row 0")
	}
	u, err := p.PlayMove(m)
	if err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if !p.IsPromoted(ChickS) {
		t.Error("chick arriving at the far row should auto-promote")
	}
	if !u.Promote {
		t.Error("the unmove record should carry the promotion")
	}
}

func TestPlayMoveRejectsLionCapture(t *testing.T) {
	p := parsePos(t, "S/---/-l-/-L-/---/ccggee")
	if _, err := p.PlayMove(Move{Piece: LionS, To: NewSquare(1, 1)}); err == nil {
		t.Error("moving onto the opposing lion should be rejected, the game is decided before it")
	}
}

func TestDropCannotLandOnFarRow(t *testing.T) {
	p := parsePos(t, "S/-l-/---/---/-L-/CgGeEc")
	_, err := p.PlayMove(Move{Piece: ChickS, To: NewSquare(0, 0)})
	if err == nil {
		t.Error("dropping a chick on the far row should be rejected")
	}
}

func TestMoveValid(t *testing.T) {
	p := InitialPosition()
	ml := p.GenerateMoves()
	if ml.Len() == 0 {
		t.Fatal("expected legal moves")
	}
	if !p.MoveValid(ml.Get(0)) {
		t.Errorf("MoveValid should accept a move returned by GenerateMoves")
	}
	if p.MoveValid(Move{Piece: LionG, To: NewSquare(0, 0)}) {
		t.Error("MoveValid should reject moving the opponent's piece")
	}
}
