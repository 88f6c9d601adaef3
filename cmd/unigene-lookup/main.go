// Command unigene-lookup implements spec.md §2 stage 3: it reads a
// database written by unigene-build and partitions it into memory-
// bounded word lookup-table shards ("<basename>.lt.<n>").
package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/solgenomics/unigene"
	"github.com/solgenomics/unigene/driver"
)

var (
	flagBasename    string
	flagWordSize    int
	flagMemSizeMB   int
	flagForwardOnly bool
	flagVerbose     int
)

func init() {
	flag.StringVar(&flagBasename, "database", "", "Database basename (as passed to unigene-build).")
	flag.StringVar(&flagBasename, "d", "", "Alias for --database.")
	flag.StringVar(&flagBasename, "o", "", "Alias for --database (--basename).")
	flag.IntVar(&flagWordSize, "wordsize", unigene.DefaultConfig.WordSize, "k-mer word size w, 2 <= w <= 24.")
	flag.IntVar(&flagMemSizeMB, "memsize", unigene.DefaultConfig.MemSizeMB, "Shard memory budget in MB.")
	flag.IntVar(&flagMemSizeMB, "m", unigene.DefaultConfig.MemSizeMB, "Alias for --memsize.")
	flag.BoolVar(&flagForwardOnly, "forward-only", false, "Skip odd-numbered sequence ids in the builder.")
	flag.BoolVar(&flagForwardOnly, "f", false, "Alias for --forward-only.")
	flag.IntVar(&flagVerbose, "verbose", 0, "0 normal, negative debug, positive quieter.")
	flag.IntVar(&flagVerbose, "v", 0, "Alias for --verbose.")
	flag.Usage = usage
}

func main() {
	flag.Parse()
	if flagBasename == "" {
		usage()
	}
	unigene.Verbose = flagVerbose

	db, err := unigene.ReadDatabase(flagBasename)
	if err != nil {
		fatalf("unigene-lookup: %s", err)
	}

	cfg := *unigene.DefaultConfig
	cfg.WordSize = flagWordSize
	cfg.MemSizeMB = flagMemSizeMB
	cfg.ForwardOnly = flagForwardOnly

	manifestPath := flagBasename + ".manifest.kv"
	d, err := driver.New(&cfg, manifestPath, "", nil)
	if err != nil {
		fatalf("unigene-lookup: %s", err)
	}
	defer d.Close()

	if err := d.BuildLookup(flagBasename, db.Seqs); err != nil {
		fatalf("unigene-lookup: %s", err)
	}
	unigene.Vprintf("unigene-lookup: wrote shards for %d sequences under %s.lt.*\n", len(db.Seqs), flagBasename)
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --database NAME [--wordsize W] [--memsize MB] [--forward-only]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(-1)
}
