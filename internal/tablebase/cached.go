package tablebase

import (
	"sync"

	"github.com/ianfab/dobutsu/internal/encode"
	"github.com/ianfab/dobutsu/internal/game"
)

// CachedReader wraps a Tablebase with a probe cache keyed by table
// offset. A single canonical position always lands on the same
// offset, so the cache also unifies queries phrased through different
// symmetry images of one position. A CachedReader is safe for
// concurrent use: the map is guarded, and the delegate's only file
// operation is a positional read.
type CachedReader struct {
	inner   *Tablebase
	mu      sync.Mutex
	cache   map[uint64]Outcome
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCachedReader wraps tb with a cache holding up to cacheSize
// outcomes.
func NewCachedReader(tb *Tablebase, cacheSize int) *CachedReader {
	return &CachedReader{
		inner:   tb,
		cache:   make(map[uint64]Outcome, cacheSize),
		maxSize: cacheSize,
	}
}

// DistanceToMate is Tablebase.DistanceToMate with memoization.
// Terminal and immediate-capture positions bypass the cache the same
// way they bypass the file.
func (cr *CachedReader) DistanceToMate(p *game.Position) (Outcome, error) {
	if winner, ok := p.Terminal(); ok {
		if winner == p.Turn() {
			return Outcome{Result: Win, Plies: 0}, nil
		}
		return Outcome{Result: Lost, Plies: 0}, nil
	}

	canon := game.Canonicalize(p)
	pc, err := encode.EncodePosCheck(canon)
	if err != nil {
		// Delegate so the immediate-win and invalid cases resolve in
		// exactly one place.
		return cr.inner.DistanceToMate(canon)
	}
	offset := encode.Offset(pc)

	cr.mu.Lock()
	if out, ok := cr.cache[offset]; ok {
		cr.hits++
		cr.mu.Unlock()
		return out, nil
	}
	cr.misses++
	cr.mu.Unlock()

	out, err := cr.inner.DistanceToMate(canon)
	if err != nil {
		return out, err
	}

	cr.mu.Lock()
	if len(cr.cache) >= cr.maxSize {
		// Simple eviction: clear half the cache.
		i := 0
		for k := range cr.cache {
			if i >= cr.maxSize/2 {
				break
			}
			delete(cr.cache, k)
			i++
		}
	}
	cr.cache[offset] = out
	cr.mu.Unlock()

	return out, nil
}

// Stats returns the cache hit and miss counters.
func (cr *CachedReader) Stats() (hits, misses uint64) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.hits, cr.misses
}

// Close closes the wrapped Tablebase.
func (cr *CachedReader) Close() error {
	return cr.inner.Close()
}
