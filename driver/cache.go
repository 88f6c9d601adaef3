package driver

import (
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// ShardCache is an optional, snappy-compressed on-disk cache of raw
// shard bytes, distinct from the canonical ".lt.N" files (SPEC_FULL.md
// §4.7). A cached copy is considered valid only when the caller-
// supplied expected postings count matches what was cached alongside
// it; the manifest is the source of truth for that count.
type ShardCache struct {
	dir string
}

// NewShardCache creates a cache rooted at dir (created on first Store
// if absent).
func NewShardCache(dir string) *ShardCache { return &ShardCache{dir: dir} }

func (c *ShardCache) path(index int) string {
	return filepath.Join(c.dir, "shard."+itoa(index)+".snappy")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Load returns the cached raw shard bytes for index, if present.
func (c *ShardCache) Load(index int) ([]byte, bool) {
	compressed, err := os.ReadFile(c.path(index))
	if err != nil {
		return nil, false
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Store compresses and writes raw shard bytes to the cache.
func (c *ShardCache) Store(index int, raw []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Wrap(err, "driver: create shard cache dir")
	}
	compressed := snappy.Encode(nil, raw)
	if err := os.WriteFile(c.path(index), compressed, 0o644); err != nil {
		return errors.Wrapf(err, "driver: write shard cache %d", index)
	}
	return nil
}
