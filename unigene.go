// Package unigene discovers pairwise overlaps between DNA reads and
// clusters them into putative unigenes.
//
// The pipeline runs in five stages: an Encoder packs nucleotide text
// into a 2-bit alphabet, a database writer/reader persists sequences
// to disk, a lookup-table builder partitions the sequence set into
// word-indexed shards, a scanner chains word hits between a query and
// one shard into scored overlap reports, and the cluster/spanning
// subpackages turn a stream of those reports into connected
// components, articulation points, and a maximum-weight assembly
// order.
package unigene

import (
	"fmt"
	"os"
)

// Verbose controls how much diagnostic output library code writes to
// stderr. Zero is normal, negative is debug, positive is quieter.
// Mirrors the --verbose/-v CLI flag.
var Verbose int

// Vprintf writes a diagnostic line to stderr when Verbose <= 0.
func Vprintf(format string, v ...interface{}) {
	if Verbose > 0 {
		return
	}
	fmt.Fprintf(os.Stderr, format, v...)
}

// Vdebugf writes a diagnostic line to stderr only in debug mode
// (Verbose < 0).
func Vdebugf(format string, v ...interface{}) {
	if Verbose >= 0 {
		return
	}
	fmt.Fprintf(os.Stderr, format, v...)
}
