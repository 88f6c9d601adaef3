package spanning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEdges(pairs ...[3]int) map[int][]Edge {
	out := map[int][]Edge{}
	for _, p := range pairs {
		a, b, score := p[0], p[1], p[2]
		out[a] = append(out[a], Edge{Other: b, Score: score})
		out[b] = append(out[b], Edge{Other: a, Score: score})
	}
	return out
}

func TestRunPicksMaximumWeightTree(t *testing.T) {
	// Triangle: the weakest edge (0-2, score 1) must be dropped.
	edges := buildEdges([3]int{0, 1, 10}, [3]int{1, 2, 5}, [3]int{0, 2, 1})
	records := Run([]int{0, 1, 2}, edges)

	require.Len(t, records, 2, "a tree over 3 nodes has 2 edges")

	total := 0
	for _, r := range records {
		isWeakestEdge := (r.Parent == 0 && r.Child == 2) || (r.Parent == 2 && r.Child == 0)
		assert.False(t, isWeakestEdge, "weakest edge (0-2) must not appear in the maximum spanning tree")
		total += r.Score
	}
	assert.Equal(t, 15, total, "tree total score must be 10+5")

	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].Score, records[i].Score, "records must be sorted by score descending")
	}
}

func TestRunRootsAtHighestScoringEdge(t *testing.T) {
	edges := buildEdges([3]int{0, 1, 10}, [3]int{1, 2, 5}, [3]int{0, 2, 1})
	records := Run([]int{0, 1, 2}, edges)

	// The root is the lower-id endpoint of the highest-scoring edge
	// (0-1, score 10): the first record must have Parent 0.
	require.NotEmpty(t, records)
	assert.Equal(t, 0, records[0].Parent)
}

func TestRunSingleNodeReturnsNoRecords(t *testing.T) {
	assert.Nil(t, Run([]int{0}, map[int][]Edge{}))
}

func TestRunIgnoresEdgesOutsideComponent(t *testing.T) {
	// Node 3 is not part of the component; its edge to node 1 must be
	// ignored when building the spanning tree over {0,1,2}.
	edges := buildEdges([3]int{0, 1, 10}, [3]int{1, 2, 5}, [3]int{1, 3, 100})
	records := Run([]int{0, 1, 2}, edges)

	for _, r := range records {
		assert.NotEqual(t, 3, r.Parent)
		assert.NotEqual(t, 3, r.Child)
	}
	assert.Len(t, records, 2)
}
