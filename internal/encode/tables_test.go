package encode

import (
	"testing"

	"github.com/ianfab/dobutsu/internal/game"
)

func TestChoose(t *testing.T) {
	cases := []struct {
		n, k int
		want uint64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{5, 1, 5},
		{10, 2, 45},
		{10, 3, 120},
		{4, 5, 0},
		{4, -1, 0},
	}
	for _, c := range cases {
		if got := choose(c.n, c.k); got != c.want {
			t.Errorf("choose(%d,%d) = %d, want %d", c.n, c.k, got, c.want)
		}
	}
}

func TestRankUnrankSubsetRoundTrip(t *testing.T) {
	const n = 10
	for k := 0; k <= 4; k++ {
		total := choose(n, k)
		seen := make(map[uint64]bool)
		for rank := uint64(0); rank < total; rank++ {
			idx := unrankSubset(n, k, rank)
			if len(idx) != k {
				t.Fatalf("unrankSubset(%d,%d,%d) returned %d elements, want %d", n, k, rank, len(idx), k)
			}
			for i := 1; i < len(idx); i++ {
				if idx[i] <= idx[i-1] {
					t.Fatalf("unrankSubset(%d,%d,%d) = %v not strictly ascending", n, k, rank, idx)
				}
			}
			got := rankSubset(n, idx)
			if got != rank {
				t.Fatalf("rankSubset(%d, %v) = %d, want %d", n, idx, got, rank)
			}
			if seen[got] {
				t.Fatalf("rank %d produced twice for n=%d k=%d", got, n, k)
			}
			seen[got] = true
		}
		if uint64(len(seen)) != total {
			t.Errorf("n=%d k=%d: saw %d distinct ranks, want %d", n, k, len(seen), total)
		}
	}
}

func TestRankSubsetWorkedExample(t *testing.T) {
	if got := rankSubset(4, []int{1, 2}); got != 3 {
		t.Errorf("rankSubset(4, [1 2]) = %d, want 3", got)
	}
	idx := unrankSubset(4, 2, 3)
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 2 {
		t.Errorf("unrankSubset(4, 2, 3) = %v, want [1 2]", idx)
	}
}

func TestLionPositionTable(t *testing.T) {
	if len(lionPosTable) != LionPosTotalCount {
		t.Fatalf("len(lionPosTable) = %d, want %d", len(lionPosTable), LionPosTotalCount)
	}

	seen := make(map[LionPair]bool)
	for i, rep := range lionPosTable {
		if rep.Sente == rep.Gote {
			t.Errorf("lionpos %d: both lions on %v", i, rep.Sente)
		}
		if game.FarRowFor(game.Sente, rep.Sente.Row()) {
			t.Errorf("lionpos %d: Sente's lion on its winning row (%v)", i, rep.Sente)
		}
		if game.FarRowFor(game.Gote, rep.Gote.Row()) {
			t.Errorf("lionpos %d: Gote's lion on its winning row (%v)", i, rep.Gote)
		}
		if adjacent := rep.adjacent(); adjacent != (i >= LionPosCount) {
			t.Errorf("lionpos %d: adjacency %v does not match its index group", i, adjacent)
		}
		if rep != minLionPair(rep, rep.Mirror()) {
			t.Errorf("lionpos %d: %v is not its mirror class representative", i, rep)
		}
		if seen[rep] {
			t.Errorf("lionpos %d: representative %v listed twice", i, rep)
		}
		seen[rep] = true
	}
}

func TestLionIndexCoversEveryLivePlacement(t *testing.T) {
	classes := make(map[int]bool)
	raw := 0
	for s := game.Square(0); s < game.NumSquares; s++ {
		for g := game.Square(0); g < game.NumSquares; g++ {
			pair := LionPair{Sente: s, Gote: g}
			legal := s != g &&
				!game.FarRowFor(game.Sente, s.Row()) &&
				!game.FarRowFor(game.Gote, g.Row())
			idx, isRep := LionIndex(pair)
			if !legal {
				if idx != -1 {
					t.Errorf("LionIndex(%v/%v) = %d, want -1 for a dead placement", s, g, idx)
				}
				continue
			}
			raw++
			if idx < 0 || idx >= LionPosTotalCount {
				t.Errorf("LionIndex(%v/%v) = %d, out of range", s, g, idx)
				continue
			}
			classes[idx] = true
			if isRep != (pair == DecodeLionPair(idx)) {
				t.Errorf("LionIndex(%v/%v): isRepresentative disagrees with the table", s, g)
			}
			mIdx, _ := LionIndex(pair.Mirror())
			if mIdx != idx {
				t.Errorf("LionIndex(%v/%v) = %d but its mirror maps to %d", s, g, idx, mIdx)
			}
		}
	}
	if len(classes) != LionPosTotalCount {
		t.Errorf("live placements cover %d classes, want %d", len(classes), LionPosTotalCount)
	}
	if raw != 75 {
		t.Errorf("live raw placements = %d, want 75 (41 classes, 34 of them mirror-paired)", raw)
	}
}

func TestCohortCountAndPositionCount(t *testing.T) {
	if len(cohortTable) != CohortCount {
		t.Fatalf("len(cohortTable) = %d, want %d", len(cohortTable), CohortCount)
	}
	if len(cohortSizeTable) != CohortCount {
		t.Fatalf("len(cohortSizeTable) = %d, want %d", len(cohortSizeTable), CohortCount)
	}

	var offset uint64
	for i, info := range cohortTable {
		size := info.Size()
		if cohortSizeTable[i].Size != size {
			t.Errorf("cohort %d: cohortSizeTable size %d != CohortInfo.Size() %d", i, cohortSizeTable[i].Size, size)
		}
		if cohortSizeTable[i].Offset != offset {
			t.Errorf("cohort %d: offset %d != running total %d", i, cohortSizeTable[i].Offset, offset)
		}
		offset += size * LionPosCount * OwnershipCount
	}

	if offset != PositionCount {
		t.Errorf("cohort regions sum to %d bytes, want PositionCount = %d", offset, PositionCount)
	}
	if PositionCount != 255280704 {
		t.Errorf("PositionCount = %d, want 255280704", PositionCount)
	}
}

func TestCohortIDRoundTrip(t *testing.T) {
	for nc := 0; nc <= 2; nc++ {
		for profile := 0; profile < chickProfileCount[nc]; profile++ {
			for ng := 0; ng <= 2; ng++ {
				for ne := 0; ne <= 2; ne++ {
					id := cohortID(nc, ng, ne, profile)
					if id < 0 {
						t.Errorf("cohortID(%d,%d,%d,%d) = -1, want a valid index", nc, ng, ne, profile)
						continue
					}
					info := cohortTable[id]
					if info.Chicks != nc || info.Giraffes != ng || info.Elephants != ne || info.ChickProfile != profile {
						t.Errorf("cohortTable[%d] = %+v, want chicks=%d giraffes=%d elephants=%d profile=%d",
							id, info, nc, ng, ne, profile)
					}
				}
			}
		}
	}
	if cohortID(1, 0, 0, 2) != -1 {
		t.Errorf("cohortID(1,0,0,2) should be -1: profile 2 is impossible with one chick")
	}
}
