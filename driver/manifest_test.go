package driver

import (
	"path/filepath"
	"sort"
	"testing"
)

func TestManifestPutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m, err := OpenManifest(filepath.Join(dir, "manifest.kv"))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	want := ShardRange{Index: 2, Start: 200, End: 300, TotalPostings: 4096, Path: "db.lt.2"}
	if err := m.Put(want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := m.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a hit for a shard index that was just Put")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestManifestGetMissingIndex(t *testing.T) {
	dir := t.TempDir()
	m, err := OpenManifest(filepath.Join(dir, "manifest.kv"))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	_, ok, err := m.Get(99)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no hit for an index never Put")
	}
}

func TestManifestAllReturnsEveryRecord(t *testing.T) {
	dir := t.TempDir()
	m, err := OpenManifest(filepath.Join(dir, "manifest.kv"))
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	ranges := []ShardRange{
		{Index: 0, Start: 0, End: 10, TotalPostings: 1, Path: "db.lt.0"},
		{Index: 1, Start: 10, End: 20, TotalPostings: 2, Path: "db.lt.1"},
		{Index: 2, Start: 20, End: 30, TotalPostings: 3, Path: "db.lt.2"},
	}
	for _, r := range ranges {
		if err := m.Put(r); err != nil {
			t.Fatal(err)
		}
	}

	all, err := m.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(ranges) {
		t.Fatalf("len(all) = %d, want %d", len(all), len(ranges))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	for i, want := range ranges {
		if all[i] != want {
			t.Fatalf("record %d = %+v, want %+v", i, all[i], want)
		}
	}
}

func TestOpenManifestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.kv")

	m1, err := OpenManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m1.Put(ShardRange{Index: 0, Start: 0, End: 5, TotalPostings: 1, Path: "db.lt.0"}); err != nil {
		t.Fatal(err)
	}
	if err := m1.Close(); err != nil {
		t.Fatal(err)
	}

	m2, err := OpenManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	defer m2.Close()

	got, ok, err := m2.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || got.Path != "db.lt.0" {
		t.Fatalf("expected the record written before close to persist, got %+v ok=%v", got, ok)
	}
}
