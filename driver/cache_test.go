package driver

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestShardCacheStoreLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewShardCache(filepath.Join(dir, "cache"))

	raw := bytes.Repeat([]byte("ACGTACGTACGT"), 100)
	if err := c.Store(3, raw); err != nil {
		t.Fatal(err)
	}

	got, ok := c.Load(3)
	if !ok {
		t.Fatal("expected a cache hit after Store")
	}
	if !bytes.Equal(got, raw) {
		t.Fatal("loaded bytes do not match stored bytes")
	}
}

func TestShardCacheLoadMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewShardCache(filepath.Join(dir, "cache"))

	if _, ok := c.Load(0); ok {
		t.Fatal("expected no hit for a shard index never Stored")
	}
}
