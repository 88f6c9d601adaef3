// Command unigene-scan implements spec.md §2 stage 4: for every
// sequence in a database, scan against one or more lookup-table
// shards and print accepted hit reports to stdout in the
// whitespace-separated format of spec.md §6.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/solgenomics/unigene"
	"github.com/solgenomics/unigene/driver"
)

type shardFlag []string

func (s *shardFlag) String() string { return fmt.Sprint([]string(*s)) }
func (s *shardFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	flagBasename    string
	flagShards      shardFlag
	flagWordSize    int
	flagScoreThresh int
	flagRefineScore bool
	flagVerbose     int
)

func init() {
	flag.StringVar(&flagBasename, "database", "", "Database basename.")
	flag.StringVar(&flagBasename, "d", "", "Alias for --database.")
	flag.Var(&flagShards, "lookupfile", "Lookup-table shard file (repeatable).")
	flag.Var(&flagShards, "l", "Alias for --lookupfile.")
	flag.IntVar(&flagWordSize, "wordsize", unigene.DefaultConfig.WordSize, "k-mer word size, must match the shard's.")
	flag.IntVar(&flagScoreThresh, "score-thresh", unigene.DefaultConfig.ScoreThresh, "Minimum longest-path score to report a hit.")
	flag.BoolVar(&flagRefineScore, "refine-score", false, "Replace each accepted hit's score with a banded-alignment refinement.")
	flag.IntVar(&flagVerbose, "verbose", 0, "0 normal, negative debug, positive quieter.")
	flag.IntVar(&flagVerbose, "v", 0, "Alias for --verbose.")
	flag.Usage = usage
}

func main() {
	flag.Parse()
	if flagBasename == "" || len(flagShards) == 0 {
		usage()
	}
	unigene.Verbose = flagVerbose

	db, err := unigene.ReadDatabase(flagBasename)
	if err != nil {
		fatalf("unigene-scan: %s", err)
	}

	cfg := *unigene.DefaultConfig
	cfg.WordSize = flagWordSize
	cfg.ScoreThresh = flagScoreThresh
	cfg.RefineScore = flagRefineScore

	d, err := driver.New(&cfg, "", "", nil)
	if err != nil {
		fatalf("unigene-scan: %s", err)
	}
	defer d.Close()

	reports, _, err := d.Scan(flagShards, db.Seqs)
	if err != nil {
		fatalf("unigene-scan: %s", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, r := range reports {
		rc := ""
		if r.RC {
			rc = " RC"
		}
		fmt.Fprintf(w, "%d %d %d %d %d %d %d %d %d %d %d%s\n",
			r.Query, r.Target, r.Score, r.Discount(), r.Score-r.Discount(),
			r.QueryLen, r.TargetLen, r.QueryStart, r.QueryEnd, r.TargetStart, r.TargetEnd, rc)
	}
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --database NAME --lookupfile SHARD [--lookupfile SHARD ...]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(-1)
}
