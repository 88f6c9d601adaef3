package cluster

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edges(pairs ...[3]int) map[int][]Edge {
	out := map[int][]Edge{}
	for _, p := range pairs {
		a, b, score := p[0], p[1], p[2]
		out[a] = append(out[a], Edge{Other: b, Score: score})
		out[b] = append(out[b], Edge{Other: a, Score: score})
	}
	return out
}

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

func TestRunTriangleHasNoArticulationPoint(t *testing.T) {
	e := edges([3]int{0, 1, 5}, [3]int{1, 2, 5}, [3]int{0, 2, 5})
	res := Run(3, e, nil)
	require.Len(t, res.Components, 1)
	assert.Len(t, res.Components[0], 3)
	for n := 0; n < 3; n++ {
		assert.Falsef(t, res.Articulation[n], "node %d flagged as articulation point in a triangle, want none", n)
	}
}

func TestRunChainHasArticulationPoints(t *testing.T) {
	// 0-1, 1-2, 2-3, 2-4: nodes 1 and 2 are cut vertices.
	e := edges([3]int{0, 1, 1}, [3]int{1, 2, 1}, [3]int{2, 3, 1}, [3]int{2, 4, 1})
	res := Run(5, e, nil)
	require.Len(t, res.Components, 1)
	assert.Len(t, res.Components[0], 5)

	assert.True(t, res.Articulation[1], "node 1 should be an articulation point")
	assert.True(t, res.Articulation[2], "node 2 should be an articulation point")
	assert.False(t, res.Articulation[0], "leaf node must not be an articulation point")
	assert.False(t, res.Articulation[3], "leaf node must not be an articulation point")
	assert.False(t, res.Articulation[4], "leaf node must not be an articulation point")
}

func TestRunSingletonsReportedSeparately(t *testing.T) {
	e := edges([3]int{0, 1, 5})
	res := Run(3, e, nil) // node 2 has no edges at all
	require.Len(t, res.Components, 1)
	assert.Len(t, res.Components[0], 2)
	require.Len(t, res.Singletons, 1)
	assert.Equal(t, 2, res.Singletons[0])
}

func TestFlipComponentsSwapsMajorityRCComponent(t *testing.T) {
	// nSeq=8: ids 0-3 forward, 4-7 their reverse-complement mates.
	res := &Result{Components: [][]int{{4, 5, 6}}}
	FlipComponents(res, 8)
	assert.Equal(t, []int{0, 1, 2}, res.Components[0])
}

func TestFlipComponentsLeavesMinorityRCComponentAlone(t *testing.T) {
	res := &Result{Components: [][]int{{0, 1, 5}}}
	FlipComponents(res, 8)
	assert.Equal(t, []int{0, 1, 5}, res.Components[0])
}

func TestRunExcludesChimericNodes(t *testing.T) {
	// 0-1-2 chain; marking 1 as chimeric must isolate 0 and 2 from
	// each other (and from the component entirely).
	e := edges([3]int{0, 1, 1}, [3]int{1, 2, 1})
	chimera := map[int]bool{1: true}
	res := Run(3, e, chimera)

	assert.Equal(t, []int{0, 2}, sortedInts(res.Singletons))
	assert.Empty(t, res.Components)
}
