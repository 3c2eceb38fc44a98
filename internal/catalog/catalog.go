package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyStats = "stats"

func tableKey(sha256 string) []byte {
	return []byte("table:" + sha256)
}

// TableRecord remembers that a tablebase file at Path, with the given
// size, has already been checksummed to SHA256 — so a reader opening
// the same file again can skip re-hashing several hundred megabytes
// on every launch.
type TableRecord struct {
	Path      string    `json:"path"`
	SHA256    string    `json:"sha256"`
	Size      int64     `json:"size"`
	CheckedAt time.Time `json:"checked_at"`
}

// ProbeStats accumulates operational counters across the life of the
// catalog database: how many queries of each outcome the process (or
// its predecessors) has served, and how many came back corrupt.
type ProbeStats struct {
	Wins        int64 `json:"wins"`
	Losses      int64 `json:"losses"`
	Draws       int64 `json:"draws"`
	CorruptHits int64 `json:"corrupt_hits"`
}

// Probes is the total number of completed (non-corrupt) queries.
func (s ProbeStats) Probes() int64 {
	return s.Wins + s.Losses + s.Draws
}

// Catalog wraps a BadgerDB instance recording tablebase checksums and
// probe statistics. Unlike a tablebase.Tablebase handle, a Catalog is
// safe for concurrent use: BadgerDB serializes its own transactions,
// and the catalog is meant to be shared process-wide.
type Catalog struct {
	db *badger.DB
}

// Open opens (creating if necessary) the catalog database in dir.
func Open(dir string) (*Catalog, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", dir, err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RecordTable saves a checksum record for a tablebase file, keyed by
// its own checksum so re-verifying the same content (even under a
// different path) is still recognized as already done.
func (c *Catalog) RecordTable(rec TableRecord) error {
	rec.CheckedAt = time.Now()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("catalog: marshal table record: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tableKey(rec.SHA256), data)
	})
}

// LookupTable returns the record for a previously checksummed
// tablebase file, or ok == false if sha256 has never been recorded.
func (c *Catalog) LookupTable(sha256 string) (rec TableRecord, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tableKey(sha256))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return TableRecord{}, false, fmt.Errorf("catalog: lookup table %s: %w", sha256, err)
	}
	return rec, ok, nil
}

// Stats returns the current probe statistics, or a zero ProbeStats if
// none have been recorded yet.
func (c *Catalog) Stats() (ProbeStats, error) {
	var stats ProbeStats
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})
	if err != nil {
		return ProbeStats{}, fmt.Errorf("catalog: load stats: %w", err)
	}
	return stats, nil
}

func (c *Catalog) saveStats(stats ProbeStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("catalog: marshal stats: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// RecordProbe increments the counter matching outcome ("win", "lost",
// or "draw") and persists it. Unknown outcome strings are a no-op:
// callers pass tablebase.Result.String(), whose values are fixed.
func (c *Catalog) RecordProbe(outcome string) error {
	stats, err := c.Stats()
	if err != nil {
		return err
	}
	switch outcome {
	case "win":
		stats.Wins++
	case "lost":
		stats.Losses++
	case "draw":
		stats.Draws++
	default:
		return nil
	}
	return c.saveStats(stats)
}

// RecordCorrupt increments the corrupt-entry counter and persists it.
func (c *Catalog) RecordCorrupt() error {
	stats, err := c.Stats()
	if err != nil {
		return err
	}
	stats.CorruptHits++
	return c.saveStats(stats)
}
