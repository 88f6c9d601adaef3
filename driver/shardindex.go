package driver

import (
	"github.com/biogo/store/interval"

	"github.com/pkg/errors"
)

// ShardRange is one lookup-table shard's sequence-id coverage and
// location, per spec.md §3's shard header {start, end, table-index,
// total-postings}.
type ShardRange struct {
	Index         int
	Start, End    int // half-open
	TotalPostings int
	Path          string
}

func (s ShardRange) Overlap(b interval.IntRange) bool { return s.Start < b.End && b.Start < s.End }
func (s ShardRange) ID() uintptr                      { return uintptr(s.Index) }
func (s ShardRange) Range() interval.IntRange {
	return interval.IntRange{Start: s.Start, End: s.End}
}

// ShardIndex answers "which shard holds sequence id X" via an
// interval tree over shard [start,end) ranges, grounded on
// kortschak-ins's use of biogo/store/interval for interval
// containment queries.
type ShardIndex struct {
	tree  interval.IntTree
	built bool
}

// NewShardIndex creates an empty index.
func NewShardIndex() *ShardIndex { return &ShardIndex{} }

// Add registers one shard's range. Call Build after the last Add.
func (si *ShardIndex) Add(r ShardRange) error {
	if err := si.tree.Insert(r, true); err != nil {
		return errors.Wrap(err, "driver: insert shard range")
	}
	si.built = false
	return nil
}

// Build finalizes the tree after a batch of Add calls.
func (si *ShardIndex) Build() {
	si.tree.AdjustRanges()
	si.built = true
}

// Lookup returns the shard range covering seqID, if any.
func (si *ShardIndex) Lookup(seqID int) (ShardRange, bool) {
	if !si.built {
		si.Build()
	}
	q := ShardRange{Start: seqID, End: seqID + 1}
	hits := si.tree.Get(q)
	if len(hits) == 0 {
		return ShardRange{}, false
	}
	return hits[0].(ShardRange), true
}
