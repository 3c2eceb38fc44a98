package encode

import "github.com/ianfab/dobutsu/internal/game"

// AvailableSquares is the number of board squares left for the six
// non-lion pieces once both lions are placed.
const AvailableSquares = game.NumSquares - 2

// chickProfileCount[nc] is the number of distinct promotion patterns
// among nc on-board chicks. With nc == 0 there is nothing to pattern
// (one trivial profile). With nc == 1 the lone chick is promoted or
// not (two profiles). With nc == 2 the two chicks, taken in ascending
// square order, are each independently promoted or not: which of the
// two specific squares holds the rooster is real information (not
// collapsed by the chicks' mutual indistinguishability, which only
// hides slot labels, not per-square facts), so there are four
// profiles, not three.
var chickProfileCount = [3]int{1, 2, 4}

// CohortInfo describes one cohort's piece shape: how many of each
// fluid kind are on the board, the promotion pattern of any on-board
// chicks, and the per-kind radix sizes used to compose map.
type CohortInfo struct {
	Chicks, Giraffes, Elephants             int
	ChickProfile                            int // meaningful only when Chicks == 1 or 2
	ChickRadix, GiraffeRadix, ElephantRadix uint64
}

// Size is the total number of map values for this cohort: the
// product of the per-kind radix sizes.
func (c CohortInfo) Size() uint64 {
	return c.ChickRadix * c.GiraffeRadix * c.ElephantRadix
}

// CohortSize records a cohort's region within the flat tablebase: its
// starting byte offset and its size (repeated here, rather than
// derived from CohortInfo, so the two tables can be loaded and
// checksummed independently).
type CohortSize struct {
	Offset, Size uint64
}

type cohortKey struct {
	chicks, giraffes, elephants, profile int
}

// CohortCount is fixed by the counting argument in generateCohorts:
// 7 chick profiles (1 + 2 + 4, summed over nc = 0, 1, 2) times 3
// giraffe counts times 3 elephant counts.
const CohortCount = 63

// PositionCount is the tablebase's total length in bytes: the sum
// over cohorts of size * LionPosCount * OwnershipCount. The tables
// are generated from first principles at init and must land exactly
// on this constant, or the process refuses to start.
const PositionCount uint64 = 255280704

var (
	cohortTable     []CohortInfo
	cohortSizeTable []CohortSize
	cohortIndex     map[cohortKey]int
)

func init() {
	generateCohorts()
}

func generateCohorts() {
	if cohortTable != nil {
		return
	}
	cohortIndex = make(map[cohortKey]int)

	var offset uint64
	for nc := 0; nc <= 2; nc++ {
		for profile := 0; profile < chickProfileCount[nc]; profile++ {
			for ng := 0; ng <= 2; ng++ {
				for ne := 0; ne <= 2; ne++ {
					chickRadix := choose(AvailableSquares, nc)
					giraffeRadix := choose(AvailableSquares-nc, ng)
					elephantRadix := choose(AvailableSquares-nc-ng, ne)

					info := CohortInfo{
						Chicks: nc, Giraffes: ng, Elephants: ne,
						ChickProfile:  profile,
						ChickRadix:    chickRadix,
						GiraffeRadix:  giraffeRadix,
						ElephantRadix: elephantRadix,
					}
					size := info.Size()

					cohortIndex[cohortKey{nc, ng, ne, profile}] = len(cohortTable)
					cohortTable = append(cohortTable, info)
					cohortSizeTable = append(cohortSizeTable, CohortSize{Offset: offset, Size: size})
					offset += size * LionPosCount * OwnershipCount
				}
			}
		}
	}

	if len(cohortTable) != CohortCount {
		panic("encode: generateCohorts produced the wrong cohort count")
	}
	if offset != PositionCount {
		panic("encode: generateCohorts produced the wrong total position count")
	}
}

// cohortID looks up the cohort index for a given piece shape. It
// returns -1 if no such cohort exists (an impossible (nc, profile)
// combination, e.g. profile >= 2 with nc == 1).
func cohortID(nc, ng, ne, profile int) int {
	if profile < 0 || profile >= chickProfileCount[nc] {
		return -1
	}
	id, ok := cohortIndex[cohortKey{nc, ng, ne, profile}]
	if !ok {
		return -1
	}
	return id
}
