// Package driver orchestrates the pipeline stages of spec.md §2 item
// 7: it owns shared state (the shard manifest, the shard-range index,
// the optional shard byte cache, and the chimera set) and the
// SequenceSource adapter that feeds the encoder, per SPEC_FULL.md §4.7.
package driver

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/solgenomics/unigene"
	"github.com/solgenomics/unigene/cluster"
	"github.com/solgenomics/unigene/lookup"
	"github.com/solgenomics/unigene/scan"
	"github.com/solgenomics/unigene/spanning"
)

// Driver ties the shared, cross-stage state together.
type Driver struct {
	Config   *unigene.Config
	Manifest *Manifest
	Shards   *ShardIndex
	Cache    *ShardCache
	Chimera  map[int]bool
}

// New creates a Driver. manifestPath and cacheDir may be empty to
// disable persistence/caching for a one-shot run.
func New(cfg *unigene.Config, manifestPath, cacheDir string, chimera map[int]bool) (*Driver, error) {
	d := &Driver{Config: cfg, Shards: NewShardIndex(), Chimera: chimera}
	if manifestPath != "" {
		m, err := OpenManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		d.Manifest = m
	}
	if cacheDir != "" {
		d.Cache = NewShardCache(cacheDir)
	}
	return d, nil
}

// Close releases the manifest store, if any.
func (d *Driver) Close() error {
	if d.Manifest != nil {
		return d.Manifest.Close()
	}
	return nil
}

// BuildDatabase turns raw sequence sources into encoded Sequence
// records (plus their reverse complements) and writes the database
// files, per spec.md §2 stages 1-2.
func (d *Driver) BuildDatabase(basename string, sources []unigene.SequenceSource) ([]*unigene.Sequence, error) {
	seqs := make([]*unigene.Sequence, 0, len(sources))
	for i, src := range sources {
		bases, quality := unigene.EncodeWithQuality(src.Bases(), src.Quality())
		seqs = append(seqs, &unigene.Sequence{
			ID:      i,
			Name:    src.Name(),
			Bases:   bases,
			Quality: quality,
		})
	}
	seqs = unigene.BuildReverseComplements(seqs)
	if err := unigene.WriteDatabase(basename, seqs); err != nil {
		return nil, err
	}
	return seqs, nil
}

// BuildLookup partitions seqs into memory-bounded shards (spec.md
// §4.3), then registers each shard's range with the manifest and the
// shard index so the scan stage can find "which shard holds id X."
func (d *Driver) BuildLookup(basename string, seqs []*unigene.Sequence) error {
	b := lookup.NewBuilder(basename, d.Config.WordSize, d.Config.MemSizeMB, d.Config.ForwardOnly)
	for _, seq := range seqs {
		if err := b.Add(seq); err != nil {
			return err
		}
	}
	endID := 0
	if len(seqs) > 0 {
		endID = seqs[len(seqs)-1].ID + 1
	}
	if err := b.Finish(endID); err != nil {
		return err
	}

	for i := 0; i < b.ShardCount(); i++ {
		path := lookup.ShardPath(basename, i)
		shard, err := lookup.Open(path)
		if err != nil {
			return err
		}
		r := ShardRange{
			Index:         i,
			Start:         shard.Start(),
			End:           shard.End(),
			TotalPostings: int(shard.Header.TotalPostings),
			Path:          path,
		}
		shard.Close()

		if d.Shards != nil {
			if err := d.Shards.Add(r); err != nil {
				return err
			}
		}
		if d.Manifest != nil {
			if err := d.Manifest.Put(r); err != nil {
				return err
			}
		}
	}
	if d.Shards != nil {
		d.Shards.Build()
	}
	return nil
}

// ShardPathsForQueries returns the ordered, deduplicated set of shard
// paths that cover seqs' ids, resolved through d.Shards (spec.md §3's
// "which shard holds sequence id X") rather than re-deriving shard
// paths from disk naming conventions. Call after BuildLookup, which
// populates d.Shards.
func (d *Driver) ShardPathsForQueries(seqs []*unigene.Sequence) []string {
	byIndex := map[int]string{}
	maxIndex := -1
	for _, s := range seqs {
		r, ok := d.Shards.Lookup(s.ID)
		if !ok {
			continue
		}
		if _, seen := byIndex[r.Index]; !seen {
			byIndex[r.Index] = r.Path
			if r.Index > maxIndex {
				maxIndex = r.Index
			}
		}
	}
	paths := make([]string, 0, len(byIndex))
	for i := 0; i <= maxIndex; i++ {
		if p, ok := byIndex[i]; ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// openShard loads shard index's canonical file at path, consulting
// d.Cache first (SPEC_FULL.md §4.7): a cache hit is only trusted when
// either there's no manifest to check against, or the manifest's
// recorded total-postings for this index still matches what's
// cached. A cache miss or stale entry falls back to the canonical
// file and refreshes the cache.
func (d *Driver) openShard(index int, path string) (*lookup.Shard, error) {
	if d.Cache != nil {
		if raw, ok := d.Cache.Load(index); ok {
			if shard, err := lookup.OpenBytes(raw); err == nil {
				if d.Manifest == nil {
					return shard, nil
				}
				if r, ok, err := d.Manifest.Get(index); err == nil && ok && r.TotalPostings == int(shard.Header.TotalPostings) {
					return shard, nil
				}
				shard.Close()
			}
		}
	}

	shard, err := lookup.Open(path)
	if err != nil {
		return nil, err
	}
	if d.Cache != nil {
		if raw, rerr := os.ReadFile(path); rerr == nil {
			_ = d.Cache.Store(index, raw)
		}
	}
	return shard, nil
}

// Scan runs every query sequence against every registered shard
// (spec.md §4.4), returning every accepted report plus the
// cluster-ready adjacency edges derived from it (edge score = the
// hit's discounted score, spec.md §6's "score - discount" column).
// shardPaths must be ordered by shard index (e.g. from
// ShardPathsForQueries). When d.Config.RefineScore is set, each
// accepted report's score is replaced by the banded-alignment
// refinement of SPEC_FULL.md §4.4 before it contributes to the
// adjacency edges.
func (d *Driver) Scan(shardPaths []string, seqs []*unigene.Sequence) ([]scan.Report, map[int][]cluster.Edge, error) {
	targetLens := make(map[int]int, len(seqs))
	bySeqID := make(map[int]*unigene.Sequence, len(seqs))
	for _, s := range seqs {
		targetLens[s.ID] = s.Len()
		bySeqID[s.ID] = s
	}

	var reports []scan.Report
	edges := map[int][]cluster.Edge{}

	for index, path := range shardPaths {
		shard, err := d.openShard(index, path)
		if err != nil {
			return nil, nil, err
		}
		scanner := scan.New(shard, d.Config.WordSize, d.Config.ScoreThresh)
		for _, query := range seqs {
			if query.ID >= shard.End() {
				continue
			}
			for _, rep := range scanner.Scan(query, targetLens) {
				if d.Config.RefineScore {
					if target, ok := bySeqID[rep.Target]; ok {
						qBases := query.Bases
						if rep.RC {
							qBases = append([]byte(nil), query.Bases...)
							unigene.ReverseComplement(qBases)
						}
						rep.Score = scan.RefineScore(qBases, target.Bases, rep)
					}
				}
				reports = append(reports, rep)
				score := rep.Score - rep.Discount()
				edges[rep.Query] = append(edges[rep.Query], cluster.Edge{Other: rep.Target, Score: score})
			}
		}
		shard.Close()
	}
	return reports, edges, nil
}

// Cluster runs the DFS clustering pass over the accumulated edges,
// excluding d.Chimera, per spec.md §4.5. When d.Config.FlipComponent
// is set, spec.md §9's component "flip" heuristic is applied
// afterward.
func (d *Driver) Cluster(nSeq int, edges map[int][]cluster.Edge) *cluster.Result {
	res := cluster.Run(nSeq, edges, d.Chimera)
	if d.Config.FlipComponent {
		cluster.FlipComponents(res, nSeq)
	}
	return res
}

// Span computes the maximum-weight spanning tree for one cluster
// component (spec.md §4.6). edges must be the same adjacency map
// passed to Cluster.
func (d *Driver) Span(component []int, edges map[int][]cluster.Edge) []spanning.Record {
	se := make(map[int][]spanning.Edge, len(edges))
	for node, adj := range edges {
		for _, e := range adj {
			se[node] = append(se[node], spanning.Edge{Other: e.Other, Score: e.Score})
		}
	}
	return spanning.Run(component, se)
}

// WriteClusters emits the clusterer text report of spec.md §6: one
// ">Cluster k (size sequences)" header per non-singleton component
// followed by its member ids or names, then a trailing Singletons
// block. names may be nil to print raw ids.
func WriteClusters(w io.Writer, res *cluster.Result, names []string) error {
	label := func(id int) string {
		if names != nil && id >= 0 && id < len(names) {
			return names[id]
		}
		return fmt.Sprint(id)
	}

	for k, comp := range res.Components {
		if _, err := fmt.Fprintf(w, ">Cluster %d (%d sequences)\n", k, len(comp)); err != nil {
			return err
		}
		parts := make([]string, len(comp))
		for i, id := range comp {
			parts[i] = label(id)
		}
		if err := writeJoined(w, parts); err != nil {
			return err
		}
	}

	sorted := append([]int(nil), res.Singletons...)
	sort.Ints(sorted)
	if _, err := fmt.Fprintf(w, ">Singletons (%d sequences)\n", len(sorted)); err != nil {
		return err
	}
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = label(id)
	}
	return writeJoined(w, parts)
}

// WriteArticulations writes one articulation-point id per line, per
// spec.md §6's "articulations.txt".
func WriteArticulations(w io.Writer, res *cluster.Result) error {
	ids := make([]int, 0, len(res.Articulation))
	for id := range res.Articulation {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "%d\n", id); err != nil {
			return err
		}
	}
	return nil
}

func writeJoined(w io.Writer, parts []string) error {
	for i, p := range parts {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
