package encode

import "github.com/ianfab/dobutsu/internal/game"

// LionPair is the joint placement of the two lions.
type LionPair struct {
	Sente, Gote game.Square
}

// Mirror reflects both lion squares across the board's vertical
// mid-line.
func (lp LionPair) Mirror() LionPair {
	return LionPair{Sente: lp.Sente.Mirror(), Gote: lp.Gote.Mirror()}
}

// adjacent reports whether the two lions attack each other.
func (lp LionPair) adjacent() bool {
	return game.Adjacent(lp.Sente, lp.Gote)
}

// LionPosCount and LionPosTotalCount size the lionpos dimension.
//
// The table enumerates every placement of the two lions on distinct
// squares with neither lion on the row it would win by reaching
// (those positions are over before the tablebase is consulted),
// reduced modulo the horizontal mirror. Of the 41 mirror classes, the
// 21 where the lions do not attack each other come first; only those
// occur in positions the table stores, so the offset formula strides
// by LionPosCount. The remaining 20 adjacent classes still get
// indices so that transient in-check positions met during retrograde
// walks encode without a special case.
const (
	LionPosCount      = 21
	LionPosTotalCount = 41
)

// lionPosTable lists the representative of each mirror class, valid
// classes first. lionPosIndex maps a representative back to its index.
var (
	lionPosTable []LionPair
	lionPosIndex map[LionPair]int
)

func init() {
	generateLionPositions()
}

// lionSquareLegal reports whether sq can hold owner's lion in a
// position the game has not already ended in: on the board and off
// the far row for its owner.
func lionSquareLegal(owner game.Owner, sq game.Square) bool {
	return sq.OnBoard() && !game.FarRowFor(owner, sq.Row())
}

func generateLionPositions() {
	if lionPosTable != nil {
		return
	}
	lionPosIndex = make(map[LionPair]int)

	add := func(wantAdjacent bool) {
		for s := game.Square(0); s < game.NumSquares; s++ {
			for g := game.Square(0); g < game.NumSquares; g++ {
				pair := LionPair{Sente: s, Gote: g}
				if s == g || pair.adjacent() != wantAdjacent {
					continue
				}
				if !lionSquareLegal(game.Sente, s) || !lionSquareLegal(game.Gote, g) {
					continue
				}
				rep := minLionPair(pair, pair.Mirror())
				if _, seen := lionPosIndex[rep]; seen {
					continue
				}
				lionPosIndex[rep] = len(lionPosTable)
				lionPosTable = append(lionPosTable, rep)
			}
		}
	}
	add(false)
	if len(lionPosTable) != LionPosCount {
		panic("encode: lion position enumeration produced the wrong valid-class count")
	}
	add(true)
	if len(lionPosTable) != LionPosTotalCount {
		panic("encode: lion position enumeration produced the wrong total class count")
	}
}

// minLionPair orders two LionPairs by (Sente, Gote) and returns the
// smaller, so that mirroring a pair any number of times always lands
// on the same representative.
func minLionPair(a, b LionPair) LionPair {
	if a.Sente != b.Sente {
		if a.Sente < b.Sente {
			return a
		}
		return b
	}
	if a.Gote <= b.Gote {
		return a
	}
	return b
}

// LionIndex returns the lionpos index of pair's mirror class, and
// whether pair itself (as opposed to its mirror image) is the stored
// representative. It returns idx == -1 for placements no live game
// reaches (a lion on its winning row, or the two lions stacked).
func LionIndex(pair LionPair) (idx int, isRepresentative bool) {
	rep := minLionPair(pair, pair.Mirror())
	idx, ok := lionPosIndex[rep]
	if !ok {
		return -1, false
	}
	return idx, rep == pair
}

// DecodeLionPair returns the representative LionPair at lionpos index
// idx, which must be in [0, LionPosTotalCount).
func DecodeLionPair(idx int) LionPair {
	return lionPosTable[idx]
}
