// Command unigene-trim applies the poly-A/T tail trimmer (spec.md §2,
// "minor preprocessors specified only by I/O contract") to a FASTA/
// quality pair and writes the trimmed pair back out.
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
	"github.com/solgenomics/unigene/internal/fastaio"
)

var (
	flagSeqFile  string
	flagQualFile string
	flagOutSeq   string
	flagOutQual  string
	flagVerbose  int
)

func init() {
	flag.StringVar(&flagSeqFile, "seqfile", "", "Input FASTA sequence file.")
	flag.StringVar(&flagSeqFile, "s", "", "Alias for --seqfile.")
	flag.StringVar(&flagQualFile, "qualfile", "", "Input quality-FASTA file (optional).")
	flag.StringVar(&flagQualFile, "q", "", "Alias for --qualfile.")
	flag.StringVar(&flagOutSeq, "out-seqfile", "", "Output FASTA sequence file (defaults to stdout).")
	flag.StringVar(&flagOutQual, "out-qualfile", "", "Output quality-FASTA file (optional).")
	flag.IntVar(&flagVerbose, "verbose", 0, "0 normal, negative debug, positive quieter.")
	flag.IntVar(&flagVerbose, "v", 0, "Alias for --verbose.")
	flag.Usage = usage
}

func main() {
	flag.Parse()
	if flagSeqFile == "" {
		usage()
	}
	unigene.Verbose = flagVerbose

	seqFile, err := fastaio.OpenMaybeGzip(flagSeqFile)
	if err != nil {
		fatalf("unigene-trim: %s", err)
	}
	defer seqFile.Close()

	var qualFile io.Reader = strings.NewReader("")
	if flagQualFile != "" {
		f, err := fastaio.OpenMaybeGzip(flagQualFile)
		if err != nil {
			fatalf("unigene-trim: %s", err)
		}
		defer f.Close()
		qualFile = f
	}

	records, err := fastaio.ReadAll(seqFile, qualFile, unigene.Vprintf)
	if err != nil {
		fatalf("unigene-trim: %s", err)
	}

	outSeq := os.Stdout
	if flagOutSeq != "" {
		outSeq, err = os.Create(flagOutSeq)
		if err != nil {
			fatalf("unigene-trim: %s", err)
		}
		defer outSeq.Close()
	}
	seqW := bufio.NewWriter(outSeq)
	defer seqW.Flush()

	var qualW *bufio.Writer
	if flagOutQual != "" {
		qf, err := os.Create(flagOutQual)
		if err != nil {
			fatalf("unigene-trim: %s", err)
		}
		defer qf.Close()
		qualW = bufio.NewWriter(qf)
		defer qualW.Flush()
	}

	for _, r := range records {
		bases, quality, trimmed := unigene.TrimPolyTail(r.Bases, r.Quality)
		if trimmed {
			unigene.Vdebugf("unigene-trim: trimmed poly-A/T tail for %q\n", r.Name)
		}
		fmt.Fprintf(seqW, ">%s\n%s\n", r.Name, bases)
		if qualW != nil {
			fmt.Fprintf(qualW, ">%s\n", r.Name)
			for i, q := range quality {
				if i > 0 {
					fmt.Fprint(qualW, " ")
				}
				fmt.Fprint(qualW, q)
			}
			fmt.Fprintln(qualW)
		}
	}
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --seqfile FILE [--qualfile FILE] [--out-seqfile FILE] [--out-qualfile FILE]\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(-1)
}
