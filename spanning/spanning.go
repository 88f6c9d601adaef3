// Package spanning builds the per-component maximum-weight spanning
// tree described in spec.md §4.6, rooted at the endpoint of the
// component's highest-scoring edge.
package spanning

import (
	"sort"

	"gonum.org/v1/gonum/graph/mst"
	"gonum.org/v1/gonum/graph/simple"
)

// Edge is a scored, undirected pairwise-overlap edge within one
// cluster component (spec.md §3).
type Edge struct {
	Other int
	Score int
}

// Record is one oriented spanning-tree edge, as emitted to the
// cluster/spanning-tree report of spec.md §6.
type Record struct {
	Parent, Child, Score int
}

// Run computes the maximum-weight spanning tree over nodes (all ids
// belonging to one cluster component) and edges restricted to pairs
// within nodes, then orients it away from the highest-scoring edge's
// lower-id endpoint, returning records sorted by score descending.
func Run(nodes []int, edges map[int][]Edge) []Record {
	if len(nodes) < 2 {
		return nil
	}

	in := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		in[n] = true
	}

	src := simple.NewWeightedUndirectedGraph(0, 0)
	bestScore, root, any := -1<<30, nodes[0], false
	for _, u := range nodes {
		for _, e := range edges[u] {
			if !in[e.Other] || e.Other <= u {
				continue // undirected: each pair considered once
			}
			// mst.Prim always computes a *minimum* spanning tree, so
			// negate scores to turn "maximum overlap" into the
			// standard minimum-weight problem; orient() negates back.
			src.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(u), T: simple.Node(e.Other), W: float64(-e.Score),
			})
			any = true
			if e.Score > bestScore {
				bestScore = e.Score
				root = u
			}
		}
	}
	if !any {
		return nil
	}

	dst := simple.NewWeightedUndirectedGraph(0, 0)
	mst.Prim(dst, src)

	return orient(dst, root)
}

// orient assigns parent/child direction to the tree's edges via BFS
// from root, restoring original (non-negated) scores, and returns
// records sorted by score descending, per spec.md §6.
func orient(tree *simple.WeightedUndirectedGraph, root int) []Record {
	visited := map[int64]bool{int64(root): true}
	queue := []int64{int64(root)}
	var records []Record

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		it := tree.From(u)
		var children []int64
		for it.Next() {
			children = append(children, it.Node().ID())
		}
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })

		for _, v := range children {
			if visited[v] {
				continue
			}
			visited[v] = true
			w := tree.WeightedEdge(u, v)
			score := 0
			if w != nil {
				score = -int(w.Weight())
			}
			records = append(records, Record{Parent: int(u), Child: int(v), Score: score})
			queue = append(queue, v)
		}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Score > records[j].Score })
	return records
}
