package driver

import "testing"

func TestShardIndexLookup(t *testing.T) {
	si := NewShardIndex()
	ranges := []ShardRange{
		{Index: 0, Start: 0, End: 100, Path: "db.lt.0"},
		{Index: 1, Start: 100, End: 250, Path: "db.lt.1"},
		{Index: 2, Start: 250, End: 300, Path: "db.lt.2"},
	}
	for _, r := range ranges {
		if err := si.Add(r); err != nil {
			t.Fatal(err)
		}
	}
	si.Build()

	tests := []struct {
		seqID     int
		wantIndex int
	}{
		{0, 0}, {99, 0}, {100, 1}, {249, 1}, {250, 2}, {299, 2},
	}
	for _, tt := range tests {
		got, ok := si.Lookup(tt.seqID)
		if !ok {
			t.Fatalf("Lookup(%d): expected a hit", tt.seqID)
		}
		if got.Index != tt.wantIndex {
			t.Fatalf("Lookup(%d).Index = %d, want %d", tt.seqID, got.Index, tt.wantIndex)
		}
	}
}

func TestShardIndexLookupMiss(t *testing.T) {
	si := NewShardIndex()
	if err := si.Add(ShardRange{Index: 0, Start: 0, End: 10, Path: "db.lt.0"}); err != nil {
		t.Fatal(err)
	}
	si.Build()

	if _, ok := si.Lookup(50); ok {
		t.Fatal("expected no hit for a sequence id outside every shard's range")
	}
}

func TestShardIndexBuildsLazilyOnLookup(t *testing.T) {
	si := NewShardIndex()
	if err := si.Add(ShardRange{Index: 0, Start: 0, End: 10, Path: "db.lt.0"}); err != nil {
		t.Fatal(err)
	}
	// No explicit Build() call: Lookup must build on demand.
	if _, ok := si.Lookup(5); !ok {
		t.Fatal("expected Lookup to build the tree lazily and find a hit")
	}
}
