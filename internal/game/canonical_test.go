package game

import "testing"

func TestMirrorIsInvolution(t *testing.T) {
	p := InitialPosition()
	m := Mirror(Mirror(p))
	if !m.Equal(p) {
		t.Error("mirroring twice should restore the original position")
	}
}

func TestCanonicalizeAlwaysSenteToMove(t *testing.T) {
	p, err := ParsePosition("G/gle/-c-/-C-/ELG/-")
	if err != nil {
		t.Fatal(err)
	}
	c := Canonicalize(p)
	if c.GoteToMove {
		t.Error("Canonicalize must always return a Sente-to-move position")
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	for _, s := range []string{
		"S/gle/-c-/-C-/ELG/-",
		"S/l--/---/g--/--L/CcGEe",
		"G/-l-/G--/---/-L-/CcgEe",
	} {
		p, err := ParsePosition(s)
		if err != nil {
			t.Fatalf("ParsePosition(%q): %v", s, err)
		}
		c1 := Canonicalize(p)
		c2 := Canonicalize(c1)
		if !c1.Equal(c2) {
			t.Errorf("%q: canonicalizing an already-canonical position changed it", s)
		}
	}
}

func TestCanonicalizeDoesNotMutateInput(t *testing.T) {
	p := InitialPosition()
	orig := p.Copy()
	Canonicalize(p)
	if !p.Equal(orig) {
		t.Error("Canonicalize must not mutate its argument")
	}
}

func TestCanonicalizeMergesMirrorImages(t *testing.T) {
	for _, s := range []string{
		"S/l--/---/g--/--L/CcGEe",
		"S/-l-/G--/---/-L-/CcgEe", // lions on the symmetry axis
		"S/gle/-c-/-C-/ELG/-",
	} {
		p, err := ParsePosition(s)
		if err != nil {
			t.Fatalf("ParsePosition(%q): %v", s, err)
		}
		a := Canonicalize(p)
		b := Canonicalize(Mirror(p))
		if !a.Equal(b) {
			t.Errorf("%q: Canonicalize(p) and Canonicalize(Mirror(p)) differ:\n%v\n%v", s, a, b)
		}
	}
}

func TestCanonicalizeMergesTurnImages(t *testing.T) {
	p, err := ParsePosition("S/l--/---/g--/--L/CcGEe")
	if err != nil {
		t.Fatal(err)
	}
	turned := p.Copy()
	turned.TurnPosition()
	if !Canonicalize(p).Equal(Canonicalize(turned)) {
		t.Error("a position and its turn_position image should share a canonical form")
	}
}

// TestCanonicalizeIgnoresSlotLabels covers indistinguishability: two
// chicks owned by the same side, both unpromoted, on squares a < b —
// the canonical form must be identical with the chicks' slots swapped.
func TestCanonicalizeIgnoresSlotLabels(t *testing.T) {
	a := &Position{}
	a.Pieces[LionS] = PieceLoc{NewSquare(1, 3), Sente}
	a.Pieces[LionG] = PieceLoc{NewSquare(1, 0), Gote}
	a.Pieces[ChickS] = PieceLoc{NewSquare(0, 2), Sente}
	a.Pieces[ChickG] = PieceLoc{NewSquare(2, 2), Sente}
	a.Pieces[GiraffeS] = PieceLoc{InHand, Gote}
	a.Pieces[GiraffeG] = PieceLoc{InHand, Gote}
	a.Pieces[ElephantS] = PieceLoc{InHand, Gote}
	a.Pieces[ElephantG] = PieceLoc{InHand, Gote}
	a.RecomputeOcc()

	b := a.Copy()
	b.Pieces[ChickS], b.Pieces[ChickG] = b.Pieces[ChickG], b.Pieces[ChickS]
	b.RecomputeOcc()

	if a.Equal(b) {
		t.Fatal("test setup: swapping slots should change the struct even though the game state is the same")
	}
	if !Canonicalize(a).Equal(Canonicalize(b)) {
		t.Error("canonical forms should be identical after swapping an indistinguishable pair")
	}
}

func TestCanonicalizeOrdersHandPairsSenteFirst(t *testing.T) {
	p := &Position{}
	p.Pieces[LionS] = PieceLoc{NewSquare(2, 3), Sente}
	p.Pieces[LionG] = PieceLoc{NewSquare(0, 0), Gote}
	p.Pieces[ChickS] = PieceLoc{InHand, Gote}
	p.Pieces[ChickG] = PieceLoc{InHand, Sente}
	p.Pieces[GiraffeS] = PieceLoc{InHand, Sente}
	p.Pieces[GiraffeG] = PieceLoc{InHand, Gote}
	p.Pieces[ElephantS] = PieceLoc{InHand, Sente}
	p.Pieces[ElephantG] = PieceLoc{InHand, Gote}
	p.RecomputeOcc()

	c := Canonicalize(p)
	for k := Kind(0); k < Lion; k++ {
		first, second := c.Pieces[Slot(2*k)], c.Pieces[Slot(2*k+1)]
		if first.Owner != Sente || second.Owner != Gote {
			t.Errorf("%v pair in hand should be ordered Sente then Gote, got %v then %v",
				k, first.Owner, second.Owner)
		}
	}
}
