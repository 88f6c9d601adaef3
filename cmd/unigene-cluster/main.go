// Command unigene-cluster implements spec.md §2 stage 5 (and,
// optionally, stage 6): it reads the binary pairwise-hit adjacency
// stream from stdin, runs the DFS clustering pass, and prints the
// cluster/singleton report to stdout, per spec.md §6. Articulation
// points go to "articulations.txt". With --span, it also runs the
// maximum-weight spanning tree per component and prints its assembly
// order beneath each cluster.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/solgenomics/unigene"
	"github.com/solgenomics/unigene/cluster"
	"github.com/solgenomics/unigene/driver"
)

var (
	flagDatabase       string
	flagChimera        string
	flagSpan           bool
	flagArtOut         string
	flagFlipComponents bool
	flagVerbose        int
)

func init() {
	flag.StringVar(&flagDatabase, "database", "", "Database basename, to print names instead of ids (optional).")
	flag.StringVar(&flagDatabase, "d", "", "Alias for --database.")
	flag.StringVar(&flagChimera, "chimera", "", "File of chimeric sequence ids to exclude.")
	flag.StringVar(&flagChimera, "c", "", "Alias for --chimera.")
	flag.BoolVar(&flagSpan, "span", false, "Also compute and print the per-component maximum-weight spanning tree.")
	flag.StringVar(&flagArtOut, "articulations-out", "articulations.txt", "Output path for articulation-point ids.")
	flag.BoolVar(&flagFlipComponents, "flip-components", false, "Flip components whose reverse-complement half exceeds half the component size.")
	flag.IntVar(&flagVerbose, "verbose", 0, "0 normal, negative debug, positive quieter.")
	flag.IntVar(&flagVerbose, "v", 0, "Alias for --verbose.")
	flag.Usage = usage
}

func main() {
	flag.Parse()
	unigene.Verbose = flagVerbose

	var chimera map[int]bool
	if flagChimera != "" {
		f, err := os.Open(flagChimera)
		if err != nil {
			fatalf("unigene-cluster: %s", err)
		}
		chimera, err = driver.LoadChimera(f)
		f.Close()
		if err != nil {
			fatalf("unigene-cluster: %s", err)
		}
	}

	nSeq, edges, err := readAdjacency(bufio.NewReader(os.Stdin))
	if err != nil {
		fatalf("unigene-cluster: %s", err)
	}

	var names []string
	if flagDatabase != "" {
		db, err := unigene.ReadDatabase(flagDatabase)
		if err != nil {
			fatalf("unigene-cluster: %s", err)
		}
		names = make([]string, len(db.Seqs))
		for i, s := range db.Seqs {
			names[i] = s.Name
		}
	}

	res := cluster.Run(nSeq, edges, chimera)
	if flagFlipComponents {
		cluster.FlipComponents(res, nSeq)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if !flagSpan {
		if err := driver.WriteClusters(w, res, names); err != nil {
			fatalf("unigene-cluster: %s", err)
		}
	} else {
		d, err := driver.New(unigene.DefaultConfig, "", "", chimera)
		if err != nil {
			fatalf("unigene-cluster: %s", err)
		}
		for k, comp := range res.Components {
			fmt.Fprintf(w, ">Cluster %d (%d sequences)\n", k, len(comp))
			for i, id := range comp {
				if i > 0 {
					fmt.Fprint(w, " ")
				}
				fmt.Fprint(w, label(id, names))
			}
			fmt.Fprintln(w)
			for _, rec := range d.Span(comp, edges) {
				fmt.Fprintf(w, "# assembly %s %s %d\n", label(rec.Parent, names), label(rec.Child, names), rec.Score)
			}
		}
		fmt.Fprintf(w, ">Singletons (%d sequences)\n", len(res.Singletons))
		for i, id := range res.Singletons {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, label(id, names))
		}
		fmt.Fprintln(w)
	}

	artFile, err := os.Create(flagArtOut)
	if err != nil {
		fatalf("unigene-cluster: %s", err)
	}
	defer artFile.Close()
	if err := driver.WriteArticulations(artFile, res); err != nil {
		fatalf("unigene-cluster: %s", err)
	}
}

func label(id int, names []string) string {
	if names != nil && id >= 0 && id < len(names) {
		return names[id]
	}
	return fmt.Sprint(id)
}

// readAdjacency parses the clusterer input format of spec.md §6: u32
// n_seq, then n_seq x i32 n_edges[i], then for each i an array of
// n_edges[i] x {i32 target, i32 score}.
func readAdjacency(r io.Reader) (int, map[int][]cluster.Edge, error) {
	var nSeq uint32
	if err := binary.Read(r, binary.BigEndian, &nSeq); err != nil {
		return 0, nil, err
	}
	nEdges := make([]int32, nSeq)
	if err := binary.Read(r, binary.BigEndian, nEdges); err != nil {
		return 0, nil, err
	}
	edges := make(map[int][]cluster.Edge, nSeq)
	for i, n := range nEdges {
		if n == 0 {
			continue
		}
		pairs := make([]int32, n*2)
		if err := binary.Read(r, binary.BigEndian, pairs); err != nil {
			return 0, nil, err
		}
		list := make([]cluster.Edge, n)
		for j := range list {
			list[j] = cluster.Edge{Other: int(pairs[2*j]), Score: int(pairs[2*j+1])}
		}
		edges[i] = list
	}
	return int(nSeq), edges, nil
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [--database NAME] [--chimera FILE] [--span] < adjacency.bin\n",
		path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(-1)
}
