// Package cluster implements the DFS clustering pass of spec.md §4.5:
// connected components over the pairwise-hit graph, with tree/back
// edge classification and classic lowlink articulation-point
// detection (chimeric-read candidates).
package cluster

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/solgenomics/unigene"
)

// Edge is the adjacency edge of spec.md §3: (other-id, score).
type Edge struct {
	Other int
	Score int
}

// Result is the output of Run: the component partition, per-node
// tree/back edge classification, and the articulation-point set.
type Result struct {
	Components   [][]int // first entry of each is the DFS root, per spec.md §3
	Singletons   []int
	Articulation map[int]bool
	TreeEdges    map[int][]int
	BackEdges    map[int][]int
}

// buildGraph turns the adjacency map into a
// simple.WeightedUndirectedGraph (spec.md §9's re-architecture note:
// replace the raw pointer-of-pointer adjacency list with a real graph
// data structure), skipping edges to chimeric nodes.
func buildGraph(edges map[int][]Edge, chimera map[int]bool) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for node, adj := range edges {
		if chimera[node] {
			continue
		}
		for _, e := range adj {
			if chimera[e.Other] {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(node),
				T: simple.Node(e.Other),
				W: float64(e.Score),
			})
		}
	}
	return g
}

// neighbors returns node's adjacent ids in ascending order, for
// deterministic DFS traversal.
func neighbors(g *simple.WeightedUndirectedGraph, node int) []int {
	it := g.From(int64(node))
	var out []int
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	// insertion order from gonum's node set isn't guaranteed stable
	// across runs; sort for determinism.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// frame is one level of the explicit DFS stack, replacing recursion
// per spec.md §9 ("Recursive DFS risks stack overflow on large
// components: reimplement iteratively with an explicit stack carrying
// (node, next-edge-index) frames").
type frame struct {
	node     int
	adj      []int
	nextEdge int
}

// Run clusters nSeq sequence ids using the adjacency edges, excluding
// any id present in chimera, per spec.md §4.5.
func Run(nSeq int, edges map[int][]Edge, chimera map[int]bool) *Result {
	if chimera == nil {
		chimera = map[int]bool{}
	}
	g := buildGraph(edges, chimera)

	res := &Result{
		Articulation: map[int]bool{},
		TreeEdges:    map[int][]int{},
		BackEdges:    map[int][]int{},
	}

	color := make([]bool, nSeq)
	level := make([]int, nSeq)
	low := make([]int, nSeq)
	for i := range level {
		level[i] = -1
	}

	for start := 0; start < nSeq; start++ {
		if chimera[start] || color[start] {
			continue
		}
		component := dfsComponent(g, start, color, level, low, res)
		if len(component) == 1 {
			res.Singletons = append(res.Singletons, component[0])
		} else {
			res.Components = append(res.Components, component)
		}
	}
	return res
}

// dfsComponent runs one DFS from root with an explicit stack,
// classifying edges and computing lowlink values for articulation-
// point detection, per spec.md §4.5 and §9.
func dfsComponent(g *simple.WeightedUndirectedGraph, root int, color []bool, level, low []int, res *Result) []int {
	var component []int
	var rootChildren int

	color[root] = true
	level[root] = 0
	low[root] = 0
	component = append(component, root)

	stack := []*frame{{node: root, adj: neighbors(g, root)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.nextEdge >= len(top.adj) {
			// Done with this node: propagate its low value to its parent.
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1].node
				if low[top.node] < low[parent] {
					low[parent] = low[top.node]
				}
				if parent == root {
					// root's articulation-point rule is child count,
					// handled once all children are done (below).
				} else if low[top.node] >= level[parent] {
					res.Articulation[parent] = true
				}
			}
			continue
		}

		child := top.adj[top.nextEdge]
		top.nextEdge++

		if !color[child] {
			color[child] = true
			level[child] = level[top.node] + 1
			low[child] = level[child]
			component = append(component, child)
			res.TreeEdges[top.node] = append(res.TreeEdges[top.node], child)
			if top.node == root {
				rootChildren++
			}
			stack = append(stack, &frame{node: child, adj: neighbors(g, child)})
		} else {
			// Back edge (includes already-finished tree edges found
			// from the other direction, since the graph is undirected).
			if child != top.node {
				res.BackEdges[top.node] = append(res.BackEdges[top.node], child)
				if level[child] < low[top.node] {
					low[top.node] = level[child]
				}
			}
		}
	}

	if rootChildren >= 2 {
		res.Articulation[root] = true
	}
	return component
}

// FlipComponents applies spec.md §9's component "flip" heuristic:
// when more than half of a component's ids fall in the reverse-
// complement half (id >= nSeq/2, per unigene.BuildReverseComplements's
// layout), every id in the component is remapped to its mate across
// the nSeq/2 boundary via unigene.Mate. Off by default; the caller
// gates this on Config.FlipComponent (spec.md §9: "keep the behavior
// behind a flag" since it's unclear whether downstream stages assume
// it). DFS traversal order (and so the root-first convention
// documented on Result.Components) is preserved: only the ids
// themselves are remapped, never reordered. Singletons are left
// untouched — the heuristic is defined over components, not single
// ids.
func FlipComponents(res *Result, nSeq int) {
	for _, comp := range res.Components {
		rcHalf := 0
		for _, id := range comp {
			if id >= nSeq/2 {
				rcHalf++
			}
		}
		if rcHalf*2 <= len(comp) {
			continue
		}
		for j, id := range comp {
			comp[j] = unigene.Mate(id, nSeq)
		}
	}
}
