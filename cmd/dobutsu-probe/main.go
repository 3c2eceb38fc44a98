// Command dobutsu-probe looks up a single position in a tablebase
// file and prints its distance-to-mate outcome. It is deliberately
// thin: no board rendering, no REPL, no move search — it exists to
// give internal/tablebase's public API a consumer, the same role
// cmd/chessplay-uci plays for the engine package.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ianfab/dobutsu/internal/catalog"
	"github.com/ianfab/dobutsu/internal/game"
	"github.com/ianfab/dobutsu/internal/tablebase"
)

var noCatalog = flag.Bool("no-catalog", false, "skip opening the probe-statistics catalog")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-no-catalog] <tablebase-path> <position-string>\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}
	tablePath, posString := args[0], args[1]

	pos, err := game.ParsePosition(posString)
	if err != nil {
		log.Fatalf("parse position %q: %v", posString, err)
	}

	tb, err := tablebase.Open(tablePath)
	if err != nil {
		log.Fatalf("open tablebase: %v", err)
	}
	defer tb.Close()

	cat := openCatalogBestEffort()
	if cat != nil {
		defer cat.Close()
	}

	out, err := tb.DistanceToMate(pos)
	if err != nil {
		if cat != nil && errors.Is(err, tablebase.ErrCorruptEntry) {
			if recErr := cat.RecordCorrupt(); recErr != nil {
				log.Printf("catalog: record corrupt entry: %v", recErr)
			}
		}
		log.Fatalf("probe %s: %v", posString, err)
	}

	if cat != nil {
		if recErr := cat.RecordProbe(out.Result.String()); recErr != nil {
			log.Printf("catalog: record probe: %v", recErr)
		}
	}

	fmt.Println(out)
}

// openCatalogBestEffort opens the probe-statistics catalog in the
// default data directory. A catalog failure (permissions, disk full,
// a lock held by another process) never stops a probe — the tool logs
// a warning and runs without it, since the catalog only adds
// operational visibility, not correctness.
func openCatalogBestEffort() *catalog.Catalog {
	if *noCatalog {
		return nil
	}
	dir, err := catalog.DatabaseDir()
	if err != nil {
		log.Printf("catalog: %v (continuing without it)", err)
		return nil
	}
	cat, err := catalog.Open(dir)
	if err != nil {
		log.Printf("catalog: %v (continuing without it)", err)
		return nil
	}
	return cat
}
