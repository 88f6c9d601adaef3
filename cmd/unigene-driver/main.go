// Command unigene-driver runs the full pipeline end to end in one
// process (spec.md §2 item 7's Driver, SPEC_FULL.md §4.7): encode,
// database write, shard build, scan every shard, cluster, and print
// the spanning-tree assembly order per component.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/solgenomics/unigene"
	"github.com/solgenomics/unigene/driver"
	"github.com/solgenomics/unigene/internal/fastaio"
)

var (
	flagSeqFile        string
	flagQualFile       string
	flagBasename       string
	flagChimera        string
	flagMemSizeMB      int
	flagWordSize       int
	flagScoreThresh    int
	flagForwardOnly    bool
	flagCacheDir       string
	flagRefineScore    bool
	flagFlipComponents bool
	flagVerbose        int
)

func init() {
	flag.StringVar(&flagSeqFile, "seqfile", "", "Input FASTA sequence file.")
	flag.StringVar(&flagSeqFile, "s", "", "Alias for --seqfile.")
	flag.StringVar(&flagQualFile, "qualfile", "", "Input quality-FASTA file (optional).")
	flag.StringVar(&flagQualFile, "q", "", "Alias for --qualfile.")
	flag.StringVar(&flagBasename, "basename", "", "Database/shard basename.")
	flag.StringVar(&flagBasename, "o", "", "Alias for --basename.")
	flag.StringVar(&flagBasename, "d", "", "Alias for --basename (--database).")
	flag.StringVar(&flagChimera, "chimera", "", "File of chimeric sequence ids to exclude.")
	flag.StringVar(&flagChimera, "c", "", "Alias for --chimera.")
	flag.IntVar(&flagMemSizeMB, "memsize", unigene.DefaultConfig.MemSizeMB, "Shard memory budget in MB.")
	flag.IntVar(&flagMemSizeMB, "m", unigene.DefaultConfig.MemSizeMB, "Alias for --memsize.")
	flag.IntVar(&flagWordSize, "wordsize", unigene.DefaultConfig.WordSize, "k-mer word size.")
	flag.IntVar(&flagScoreThresh, "score-thresh", unigene.DefaultConfig.ScoreThresh, "Minimum accepted hit score.")
	flag.BoolVar(&flagForwardOnly, "forward-only", false, "Skip odd-numbered sequence ids in the builder.")
	flag.BoolVar(&flagForwardOnly, "f", false, "Alias for --forward-only.")
	flag.StringVar(&flagCacheDir, "shard-cache", "", "Directory for the optional compressed shard byte cache.")
	flag.BoolVar(&flagRefineScore, "refine-score", false, "Replace each accepted hit's score with a banded-alignment refinement.")
	flag.BoolVar(&flagFlipComponents, "flip-components", false, "Flip components whose reverse-complement half exceeds half the component size.")
	flag.IntVar(&flagVerbose, "verbose", 0, "0 normal, negative debug, positive quieter.")
	flag.IntVar(&flagVerbose, "v", 0, "Alias for --verbose.")
	flag.Usage = usage
}

func main() {
	flag.Parse()
	if flagSeqFile == "" || flagBasename == "" {
		usage()
	}
	unigene.Verbose = flagVerbose

	var chimera map[int]bool
	if flagChimera != "" {
		f, err := os.Open(flagChimera)
		if err != nil {
			fatalf("unigene-driver: %s", err)
		}
		chimera, err = driver.LoadChimera(f)
		f.Close()
		if err != nil {
			fatalf("unigene-driver: %s", err)
		}
	}

	cfg := *unigene.DefaultConfig
	cfg.MemSizeMB = flagMemSizeMB
	cfg.WordSize = flagWordSize
	cfg.ScoreThresh = flagScoreThresh
	cfg.ForwardOnly = flagForwardOnly
	cfg.RefineScore = flagRefineScore
	cfg.FlipComponent = flagFlipComponents

	manifestPath := flagBasename + ".manifest.kv"
	d, err := driver.New(&cfg, manifestPath, flagCacheDir, chimera)
	if err != nil {
		fatalf("unigene-driver: %s", err)
	}
	defer d.Close()

	seqFile, err := fastaio.OpenMaybeGzip(flagSeqFile)
	if err != nil {
		fatalf("unigene-driver: %s", err)
	}
	defer seqFile.Close()

	var qualFile io.Reader = strings.NewReader("")
	if flagQualFile != "" {
		f, err := fastaio.OpenMaybeGzip(flagQualFile)
		if err != nil {
			fatalf("unigene-driver: %s", err)
		}
		defer f.Close()
		qualFile = f
	}

	records, err := fastaio.ReadAll(seqFile, qualFile, unigene.Vprintf)
	if err != nil {
		fatalf("unigene-driver: %s", err)
	}

	sources := make([]unigene.SequenceSource, len(records))
	for i, r := range records {
		bases, quality, _ := unigene.TrimPolyTail(r.Bases, r.Quality)
		sources[i] = unigene.NewSource(r.Name, bases, quality)
	}

	seqs, err := d.BuildDatabase(flagBasename, sources)
	if err != nil {
		fatalf("unigene-driver: %s", err)
	}
	unigene.Vprintf("unigene-driver: encoded %d sequences (incl. reverse complements)\n", len(seqs))

	if err := d.BuildLookup(flagBasename, seqs); err != nil {
		fatalf("unigene-driver: %s", err)
	}

	shardPaths := d.ShardPathsForQueries(seqs)
	unigene.Vprintf("unigene-driver: scanning %d shards\n", len(shardPaths))

	_, edges, err := d.Scan(shardPaths, seqs)
	if err != nil {
		fatalf("unigene-driver: %s", err)
	}

	res := d.Cluster(len(seqs), edges)

	names := make([]string, len(seqs))
	for _, s := range seqs {
		names[s.ID] = s.Name
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for k, comp := range res.Components {
		fmt.Fprintf(w, ">Cluster %d (%d sequences)\n", k, len(comp))
		for i, id := range comp {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, names[id])
		}
		fmt.Fprintln(w)
		for _, rec := range d.Span(comp, edges) {
			fmt.Fprintf(w, "# assembly %s %s %d\n", names[rec.Parent], names[rec.Child], rec.Score)
		}
	}
	fmt.Fprintf(w, ">Singletons (%d sequences)\n", len(res.Singletons))
	for i, id := range res.Singletons {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, names[id])
	}
	fmt.Fprintln(w)

	artFile, err := os.Create("articulations.txt")
	if err != nil {
		fatalf("unigene-driver: %s", err)
	}
	defer artFile.Close()
	if err := driver.WriteArticulations(artFile, res); err != nil {
		fatalf("unigene-driver: %s", err)
	}
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --seqfile FILE --basename NAME [--qualfile FILE] [--chimera FILE]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(-1)
}
