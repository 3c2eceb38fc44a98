package encode

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ianfab/dobutsu/internal/game"
)

// ErrSenteWins is returned by EncodePosCheck for a position the table
// has no entry for because Sente to move has already won or wins by
// capturing the exposed Gote lion at once.
var ErrSenteWins = errors.New("encode: sente wins at once")

// ErrInvalidPosition is returned by EncodePosCheck for a position no
// legal game reaches.
var ErrInvalidPosition = errors.New("encode: invalid position")

// PosCode is the four-part code a Sente-to-move position decomposes
// into: which pieces are on the board (Cohort), where the lions stand
// (LionPos), where the rest of the on-board pieces stand within the
// cohort's remaining squares (Map), and who owns each of the six
// non-lion pieces (Ownership).
type PosCode struct {
	Cohort    int
	LionPos   int
	Map       uint64
	Ownership uint8
}

// less orders codes by (Cohort, LionPos, Map, Ownership) — the total
// order canonicalization minimizes over.
func (pc PosCode) less(o PosCode) bool {
	if pc.Cohort != o.Cohort {
		return pc.Cohort < o.Cohort
	}
	if pc.LionPos != o.LionPos {
		return pc.LionPos < o.LionPos
	}
	if pc.Map != o.Map {
		return pc.Map < o.Map
	}
	return pc.Ownership < o.Ownership
}

type pieceInfo struct {
	Slot     game.Slot
	Square   game.Square
	Owner    game.Owner
	Promoted bool
}

// gatherKind splits kind k's two slots into the ones on the board,
// sorted by ascending square, and the ones in hand, Sente's before
// Gote's. This is the canonical piece order ownership bits follow, so
// the slot labeling of the input position never leaks into the code.
func gatherKind(p *game.Position, k game.Kind) (onBoard, hand []pieceInfo) {
	for i := 0; i < 2; i++ {
		slot := game.Slot(int(k)*2 + i)
		loc := p.Pieces[slot]
		info := pieceInfo{Slot: slot, Square: loc.Square, Owner: loc.Owner, Promoted: p.IsPromoted(slot)}
		if loc.Square.OnBoard() {
			onBoard = append(onBoard, info)
		} else {
			hand = append(hand, info)
		}
	}
	sort.Slice(onBoard, func(i, j int) bool { return onBoard[i].Square < onBoard[j].Square })
	sort.Slice(hand, func(i, j int) bool { return hand[i].Owner < hand[j].Owner })
	return onBoard, hand
}

// chickProfile derives the cohort's chick-promotion profile from the
// on-board chicks, already sorted by ascending square. See
// chickProfileCount's doc comment for why nc == 2 needs four values
// rather than three.
func chickProfile(onBoard []pieceInfo) int {
	switch len(onBoard) {
	case 0:
		return 0
	case 1:
		if onBoard[0].Promoted {
			return 1
		}
		return 0
	case 2:
		profile := 0
		if onBoard[0].Promoted {
			profile |= 1
		}
		if onBoard[1].Promoted {
			profile |= 2
		}
		return profile
	default:
		return -1
	}
}

func chickPromotedAt(profile, n, i int) bool {
	switch n {
	case 1:
		return profile == 1
	case 2:
		if i == 0 {
			return profile&1 != 0
		}
		return profile&2 != 0
	default:
		return false
	}
}

func squaresOf(pieces []pieceInfo) []game.Square {
	sq := make([]game.Square, len(pieces))
	for i, pc := range pieces {
		sq[i] = pc.Square
	}
	return sq
}

func availableSquares(lionS, lionG game.Square) []game.Square {
	out := make([]game.Square, 0, AvailableSquares)
	for sq := game.Square(0); sq < game.NumSquares; sq++ {
		if sq == lionS || sq == lionG {
			continue
		}
		out = append(out, sq)
	}
	return out
}

// poolIndices returns the ascending indices, within pool, of each of
// squares. squares must be an ascending subset of pool.
func poolIndices(pool, squares []game.Square) []int {
	idx := make([]int, len(squares))
	for i, sq := range squares {
		for j, p := range pool {
			if p == sq {
				idx[i] = j
				break
			}
		}
	}
	return idx
}

func removeSquares(pool, used []game.Square) []game.Square {
	out := make([]game.Square, 0, len(pool)-len(used))
	skip := make(map[game.Square]bool, len(used))
	for _, s := range used {
		skip[s] = true
	}
	for _, s := range pool {
		if !skip[s] {
			out = append(out, s)
		}
	}
	return out
}

func squaresAt(pool []game.Square, idx []int) []game.Square {
	out := make([]game.Square, len(idx))
	for i, v := range idx {
		out[i] = pool[v]
	}
	return out
}

func lionPairOf(p *game.Position) LionPair {
	return LionPair{Sente: p.Pieces[game.LionS].Square, Gote: p.Pieces[game.LionG].Square}
}

// encodeOriented codes p in its given orientation. The lion placement
// must be the stored mirror-class representative; EncodePos arranges
// that before calling here.
func encodeOriented(p *game.Position) (PosCode, error) {
	lionIdx, isRep := LionIndex(lionPairOf(p))
	if lionIdx < 0 || !isRep {
		return PosCode{}, fmt.Errorf("encode: lion placement %v/%v has no code",
			p.Pieces[game.LionS].Square, p.Pieces[game.LionG].Square)
	}

	available := availableSquares(p.Pieces[game.LionS].Square, p.Pieces[game.LionG].Square)

	chickOn, chickHand := gatherKind(p, game.Chick)
	giraffeOn, giraffeHand := gatherKind(p, game.Giraffe)
	elephantOn, elephantHand := gatherKind(p, game.Elephant)

	profile := chickProfile(chickOn)
	id := cohortID(len(chickOn), len(giraffeOn), len(elephantOn), profile)
	if id < 0 {
		return PosCode{}, fmt.Errorf("encode: no cohort for chicks=%d giraffes=%d elephants=%d profile=%d",
			len(chickOn), len(giraffeOn), len(elephantOn), profile)
	}
	info := cohortTable[id]

	chickSquares := squaresOf(chickOn)
	idxChick := rankSubset(AvailableSquares, poolIndices(available, chickSquares))
	giraffePool := removeSquares(available, chickSquares)

	giraffeSquares := squaresOf(giraffeOn)
	idxGiraffe := rankSubset(len(giraffePool), poolIndices(giraffePool, giraffeSquares))
	elephantPool := removeSquares(giraffePool, giraffeSquares)

	elephantSquares := squaresOf(elephantOn)
	idxElephant := rankSubset(len(elephantPool), poolIndices(elephantPool, elephantSquares))

	m := (idxChick*info.GiraffeRadix+idxGiraffe)*info.ElephantRadix + idxElephant

	var ownership uint8
	bit := 0
	for _, group := range [][]pieceInfo{chickOn, chickHand, giraffeOn, giraffeHand, elephantOn, elephantHand} {
		for _, pc := range group {
			if pc.Owner == game.Gote {
				ownership |= 1 << uint(bit)
			}
			bit++
		}
	}

	return PosCode{Cohort: id, LionPos: lionIdx, Map: m, Ownership: ownership}, nil
}

// EncodePos computes the canonical PosCode for p, a Sente-to-move
// position. The board mirror is resolved here: if the lion placement
// is not its mirror class's representative the whole board is
// mirrored first, and if the placement sits on the symmetry axis both
// orientations are coded and the smaller code wins. p need not be
// valid — transient in-check positions met during retrograde walks
// code to LionPos values at or past LionPosCount — but the lions must
// stand somewhere a live game can have them.
func EncodePos(p *game.Position) (PosCode, error) {
	if p.GoteToMove {
		return PosCode{}, fmt.Errorf("encode: position must be Sente to move")
	}

	pair := lionPairOf(p)
	lionIdx, isRep := LionIndex(pair)
	if lionIdx < 0 {
		return PosCode{}, fmt.Errorf("encode: %v/%v is not a live lion placement", pair.Sente, pair.Gote)
	}

	oriented := p
	if !isRep {
		oriented = game.Mirror(p)
	}
	pc, err := encodeOriented(oriented)
	if err != nil {
		return PosCode{}, err
	}

	if isRep && pair == pair.Mirror() {
		alt, err := encodeOriented(game.Mirror(p))
		if err != nil {
			return PosCode{}, err
		}
		if alt.less(pc) {
			pc = alt
		}
	}
	return pc, nil
}

// EncodePosCheck is EncodePos with the table's reachability screen in
// front: positions the table holds no entry for come back as
// ErrSenteWins (Sente has already won, or captures the exposed Gote
// lion at once) or ErrInvalidPosition (no legal game reaches p, e.g.
// Gote left its own lion attacked). A successful code always has
// LionPos < LionPosCount and may be fed to Offset directly.
func EncodePosCheck(p *game.Position) (PosCode, error) {
	if p.GoteToMove {
		return PosCode{}, fmt.Errorf("%w: gote to move", ErrInvalidPosition)
	}
	if winner, over := p.Terminal(); over {
		if winner == game.Sente {
			return PosCode{}, ErrSenteWins
		}
		return PosCode{}, fmt.Errorf("%w: gote already won", ErrInvalidPosition)
	}
	if !p.Valid() {
		if game.Adjacent(p.Pieces[game.LionS].Square, p.Pieces[game.LionG].Square) {
			return PosCode{}, ErrSenteWins
		}
		return PosCode{}, ErrInvalidPosition
	}
	return EncodePos(p)
}

// DecodeStatus classifies what a position code decodes to.
type DecodeStatus int

const (
	// DecodeOK: a valid position the table stores an entry for.
	DecodeOK DecodeStatus = iota
	// DecodeSenteWins: the lions are adjacent, so Sente to move
	// captures the Gote lion at once. Codes like this exist (LionPos
	// at or past LionPosCount) but lie outside the table file.
	DecodeSenteWins
	// DecodeInvalid: the code is well-formed but no legal game
	// reaches the position, e.g. Gote is in check with Sente to move.
	// The table file stores the invalid-entry byte at such codes.
	DecodeInvalid
)

func (s DecodeStatus) String() string {
	switch s {
	case DecodeOK:
		return "ok"
	case DecodeSenteWins:
		return "sente wins"
	case DecodeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// placeKind assigns squares (the on-board instances of kind k,
// ascending) to slots k*2 and k*2+1 in that order, sending any
// leftover slots to hand, and consumes one ownership bit per slot via
// nextOwner in the same onboard-then-hand order encodeOriented
// produced.
func placeKind(p *game.Position, k game.Kind, squares []game.Square, profile int, nextOwner func() game.Owner) {
	n := len(squares)
	for i := 0; i < 2; i++ {
		slot := game.Slot(int(k)*2 + i)
		if i < n {
			p.Pieces[slot] = game.PieceLoc{Square: squares[i], Owner: nextOwner()}
			if k == game.Chick {
				p.Promoted[slot] = chickPromotedAt(profile, n, i)
			}
		} else {
			p.Pieces[slot] = game.PieceLoc{Square: game.InHand, Owner: nextOwner()}
		}
	}
}

// DecodePos reconstructs the Sente-to-move position named by pc and
// classifies it. The error is non-nil only for a malformed code (a
// field out of range); otherwise the position is returned even when
// the status says no legal game reaches it, since the table builder
// wants to look at exactly those positions when marking entries.
func DecodePos(pc PosCode) (*game.Position, DecodeStatus, error) {
	if pc.Cohort < 0 || pc.Cohort >= CohortCount {
		return nil, DecodeInvalid, fmt.Errorf("encode: cohort %d out of range", pc.Cohort)
	}
	info := cohortTable[pc.Cohort]
	if pc.LionPos < 0 || pc.LionPos >= LionPosTotalCount {
		return nil, DecodeInvalid, fmt.Errorf("encode: lionpos %d out of range", pc.LionPos)
	}
	if pc.Map >= info.Size() {
		return nil, DecodeInvalid, fmt.Errorf("encode: map %d out of range for cohort %d (size %d)", pc.Map, pc.Cohort, info.Size())
	}
	if pc.Ownership >= OwnershipCount {
		return nil, DecodeInvalid, fmt.Errorf("encode: ownership %d out of range", pc.Ownership)
	}

	lion := DecodeLionPair(pc.LionPos)
	available := availableSquares(lion.Sente, lion.Gote)

	elephantIdx := pc.Map % info.ElephantRadix
	rest := pc.Map / info.ElephantRadix
	giraffeIdx := rest % info.GiraffeRadix
	chickIdx := rest / info.GiraffeRadix

	chickSquares := squaresAt(available, unrankSubset(AvailableSquares, info.Chicks, chickIdx))
	giraffePool := removeSquares(available, chickSquares)
	giraffeSquares := squaresAt(giraffePool, unrankSubset(len(giraffePool), info.Giraffes, giraffeIdx))
	elephantPool := removeSquares(giraffePool, giraffeSquares)
	elephantSquares := squaresAt(elephantPool, unrankSubset(len(elephantPool), info.Elephants, elephantIdx))

	p := &game.Position{}
	p.Pieces[game.LionS] = game.PieceLoc{Square: lion.Sente, Owner: game.Sente}
	p.Pieces[game.LionG] = game.PieceLoc{Square: lion.Gote, Owner: game.Gote}

	bit := 0
	nextOwner := func() game.Owner {
		o := game.Sente
		if pc.Ownership&(1<<uint(bit)) != 0 {
			o = game.Gote
		}
		bit++
		return o
	}

	placeKind(p, game.Chick, chickSquares, info.ChickProfile, nextOwner)
	placeKind(p, game.Giraffe, giraffeSquares, 0, nextOwner)
	placeKind(p, game.Elephant, elephantSquares, 0, nextOwner)

	p.RecomputeOcc()

	switch {
	case pc.LionPos >= LionPosCount:
		return p, DecodeSenteWins, nil
	case !p.Valid():
		return p, DecodeInvalid, nil
	default:
		return p, DecodeOK, nil
	}
}

// handSplitKinds reports which kinds have both pieces in hand with
// one owned by each side. For such a pair the canonical code puts
// Sente's piece first, but the code with the two ownership bits
// exchanged names the same game position — the decoder has no square
// to tell the two hand pieces apart by.
func handSplitKinds(p *game.Position) [3]bool {
	var split [3]bool
	for k := 0; k < 3; k++ {
		a, b := p.Pieces[game.Slot(2*k)], p.Pieces[game.Slot(2*k+1)]
		split[k] = !a.Square.OnBoard() && !b.Square.OnBoard() && a.Owner != b.Owner
	}
	return split
}

// PosCodeAliases returns every code that names a position
// game-theoretically equivalent to p, the canonical code first. p
// need not be canonical or Sente-to-move. Beyond the canonical code,
// aliases come from two sources: a lion placement on the mirror axis,
// where the mirrored board codes separately; and each same-kind pair
// split between the two hands, where the pair's ownership bits read
// the same position in either order. Two axis orientations times
// three exchangeable pairs bound the count at MaxAlias; after
// duplicate removal it is usually far smaller. The builder marks the
// table entry at every alias when a position's distance is found.
func PosCodeAliases(p *game.Position) ([]PosCode, error) {
	canon := game.Canonicalize(p)

	orients := []*game.Position{canon}
	if pair := lionPairOf(canon); pair == pair.Mirror() {
		orients = append(orients, game.Mirror(canon))
	}

	out := make([]PosCode, 0, MaxAlias)
	add := func(pc PosCode) {
		for _, have := range out {
			if have == pc {
				return
			}
		}
		out = append(out, pc)
	}

	for _, o := range orients {
		pc, err := encodeOriented(o)
		if err != nil {
			return nil, err
		}
		variants := []PosCode{pc}
		for k, split := range handSplitKinds(o) {
			if !split {
				continue
			}
			for _, v := range variants {
				v.Ownership ^= 3 << uint(2*k)
				variants = append(variants, v)
			}
		}
		for _, v := range variants {
			add(v)
		}
	}
	return out, nil
}
