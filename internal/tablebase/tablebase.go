// Package tablebase implements the reader half of the endgame table:
// opening the flat byte-array file the offline builder produces and
// turning a position into a distance-to-mate outcome with a single
// pread-style read.
package tablebase

import (
	"errors"
	"fmt"
	"os"

	"github.com/ianfab/dobutsu/internal/encode"
	"github.com/ianfab/dobutsu/internal/game"
)

// ErrCorruptEntry is returned when a queried byte is 0xFF: a position
// that should never be reached by a valid query, escalated as a
// data-integrity error rather than treated as a legal outcome.
var ErrCorruptEntry = errors.New("tablebase: corrupt entry")

// ErrWrongSize is returned by Open when the file's length does not
// match encode.PositionCount, the byte the reader would compute every
// offset against.
var ErrWrongSize = errors.New("tablebase: file size does not match the table's position count")

const (
	byteDraw    = 0xFE
	byteCorrupt = 0xFF
)

// Result is which side the outcome favors.
type Result int

const (
	Win Result = iota
	Lost
	Draw
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Lost:
		return "lost"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Outcome is a distance-to-mate query result: which side it favors,
// and (for Win/Lost) the number of plies until mate. Plies is 0 for a
// terminal position resolved without consulting the file, and for
// Draw.
type Outcome struct {
	Result Result
	Plies  int
}

func (o Outcome) String() string {
	if o.Result == Draw {
		return "draw"
	}
	return fmt.Sprintf("%s in %d", o.Result, o.Plies)
}

// Tablebase is an open handle onto a table file. A handle is not safe
// for concurrent queries (ReadAt itself is, but the handle has no
// other shared state to protect against, so this is a documentation
// note rather than a locked field) — open one handle per goroutine
// that queries concurrently, or serialize.
type Tablebase struct {
	file *os.File
}

// Open opens the table file at path. It is an error for the file's
// size not to equal encode.PositionCount: a short or long file means
// either the wrong build or a truncated download, and every offset
// computed against it afterward would be meaningless.
func Open(path string) (*Tablebase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tablebase: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("tablebase: stat %s: %w", path, err)
	}
	if uint64(info.Size()) != encode.PositionCount {
		f.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes, want %d", ErrWrongSize, path, info.Size(), encode.PositionCount)
	}

	return &Tablebase{file: f}, nil
}

// Close releases the file descriptor.
func (tb *Tablebase) Close() error {
	return tb.file.Close()
}

// DistanceToMate looks up p's distance to mate from the side to
// move's perspective. p need not already be canonical or
// Sente-to-move; it is normalized internally, matching the turn
// symmetry property (querying p and querying turn_position(p) with
// the turn flipped must agree).
//
// A position whose game is already decided (a lion sitting on the far
// rank, per Position.Terminal) is resolved without touching the file.
func (tb *Tablebase) DistanceToMate(p *game.Position) (Outcome, error) {
	if winner, ok := p.Terminal(); ok {
		if winner == p.Turn() {
			return Outcome{Result: Win, Plies: 0}, nil
		}
		return Outcome{Result: Lost, Plies: 0}, nil
	}

	canon := game.Canonicalize(p)
	pc, err := encode.EncodePosCheck(canon)
	if errors.Is(err, encode.ErrSenteWins) {
		// The opposing lion stands in reach of the side to move, so
		// the game ends on the very next ply. The table holds no
		// entry for such positions.
		return Outcome{Result: Win, Plies: 1}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("tablebase: %w", err)
	}
	offset := encode.Offset(pc)

	var buf [1]byte
	if _, err := tb.file.ReadAt(buf[:], int64(offset)); err != nil {
		return Outcome{}, fmt.Errorf("tablebase: read at offset %d: %w", offset, err)
	}

	switch b := buf[0]; b {
	case byteDraw:
		return Outcome{Result: Draw}, nil
	case byteCorrupt:
		return Outcome{}, fmt.Errorf("%w: offset %d", ErrCorruptEntry, offset)
	default:
		plies := int(b)
		if plies%2 == 0 {
			return Outcome{Result: Lost, Plies: plies}, nil
		}
		return Outcome{Result: Win, Plies: plies}, nil
	}
}
