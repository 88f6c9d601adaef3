// Command unigene-build implements spec.md §2 stages 1-2: it reads a
// FASTA sequence file (and optional quality file), 2-bit encodes and
// reverse-complements every read, and writes the paired index/blob
// database files.
package main

import (
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
	flagSeqFile  string
	flagQualFile string
	flagBasename string
	flagVerbose  int
)

func init() {
	flag.StringVar(&flagSeqFile, "seqfile", "", "Input FASTA sequence file.")
	flag.StringVar(&flagSeqFile, "s", "", "Alias for --seqfile.")
	flag.StringVar(&flagQualFile, "qualfile", "", "Input quality-FASTA file (optional).")
	flag.StringVar(&flagQualFile, "q", "", "Alias for --qualfile.")
	flag.StringVar(&flagBasename, "basename", "", "Output database basename.")
	flag.StringVar(&flagBasename, "o", "", "Alias for --basename.")
	flag.StringVar(&flagBasename, "d", "", "Alias for --basename (--database).")
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

	seqFile, err := fastaio.OpenMaybeGzip(flagSeqFile)
	if err != nil {
		fatalf("unigene-build: %s", err)
	}
	defer seqFile.Close()

	var qualFile io.Reader = strings.NewReader("")
	if flagQualFile != "" {
		f, err := fastaio.OpenMaybeGzip(flagQualFile)
		if err != nil {
			fatalf("unigene-build: %s", err)
		}
		defer f.Close()
		qualFile = f
	}

	records, err := fastaio.ReadAll(seqFile, qualFile, unigene.Vprintf)
	if err != nil {
		fatalf("unigene-build: %s", err)
	}

	sources := make([]unigene.SequenceSource, len(records))
	for i, r := range records {
		trimmed, trimmedQ, didTrim := unigene.TrimPolyTail(r.Bases, r.Quality)
		if didTrim {
			unigene.Vdebugf("unigene-build: trimmed poly-A/T tail for %q\n", r.Name)
		}
		sources[i] = unigene.NewSource(r.Name, trimmed, trimmedQ)
	}

	d, err := driver.New(unigene.DefaultConfig, "", "", nil)
	if err != nil {
		fatalf("unigene-build: %s", err)
	}
	seqs, err := d.BuildDatabase(flagBasename, sources)
	if err != nil {
		fatalf("unigene-build: %s", err)
	}
	unigene.Vprintf("unigene-build: wrote %d sequences (incl. reverse complements) to %s.ind/%s.sbin\n",
		len(seqs), flagBasename, flagBasename)
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --seqfile FILE --basename NAME [--qualfile FILE] [--verbose N]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(-1)
}
