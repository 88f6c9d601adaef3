package driver

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"modernc.org/kv"
)

// Manifest persists the shard table (index -> range/path/postings)
// across runs, per SPEC_FULL.md §4.7. BuildLookup rewrites it on every
// build; the driver reads it back only to check cached shard bytes
// against the recorded postings count, and does not use it to skip
// rebuilding or rediscovering shards.
// Grounded on kortschak-ins's use of modernc.org/kv as an ordered,
// transactional on-disk key/value store for exactly this kind of
// small structured index.
type Manifest struct {
	db *kv.DB
}

// OpenManifest opens the manifest at path, creating it if absent.
func OpenManifest(path string) (*Manifest, error) {
	opts := &kv.Options{}
	db, err := kv.Open(path, opts)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			db, err = kv.Create(path, opts)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "driver: open manifest %s", path)
		}
	}
	return &Manifest{db: db}, nil
}

// Close closes the underlying store.
func (m *Manifest) Close() error { return m.db.Close() }

func shardKey(index int) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], uint32(index))
	return k[:]
}

// Put records one shard's range/path/postings-count.
func (m *Manifest) Put(r ShardRange) error {
	pathBytes := []byte(r.Path)
	val := make([]byte, 12+len(pathBytes))
	binary.BigEndian.PutUint32(val[0:], uint32(r.Start))
	binary.BigEndian.PutUint32(val[4:], uint32(r.End))
	binary.BigEndian.PutUint32(val[8:], uint32(r.TotalPostings))
	copy(val[12:], pathBytes)

	if err := m.db.BeginTransaction(); err != nil {
		return errors.Wrap(err, "driver: manifest begin transaction")
	}
	if err := m.db.Set(shardKey(r.Index), val); err != nil {
		_ = m.db.Rollback()
		return errors.Wrapf(err, "driver: manifest set shard %d", r.Index)
	}
	if err := m.db.Commit(); err != nil {
		return errors.Wrap(err, "driver: manifest commit")
	}
	return nil
}

// Get looks up one shard's recorded range by index.
func (m *Manifest) Get(index int) (ShardRange, bool, error) {
	val, err := m.db.Get(nil, shardKey(index))
	if err != nil {
		return ShardRange{}, false, errors.Wrapf(err, "driver: manifest get shard %d", index)
	}
	if val == nil {
		return ShardRange{}, false, nil
	}
	return decodeShardRange(index, val), true, nil
}

// All returns every recorded shard range in index order.
func (m *Manifest) All() ([]ShardRange, error) {
	enum, err := m.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "driver: manifest seek first")
	}
	var out []ShardRange
	for {
		k, v, err := enum.Next()
		if err != nil {
			break
		}
		index := int(binary.BigEndian.Uint32(k))
		out = append(out, decodeShardRange(index, v))
	}
	return out, nil
}

func decodeShardRange(index int, val []byte) ShardRange {
	return ShardRange{
		Index:         index,
		Start:         int(binary.BigEndian.Uint32(val[0:])),
		End:           int(binary.BigEndian.Uint32(val[4:])),
		TotalPostings: int(binary.BigEndian.Uint32(val[8:])),
		Path:          string(val[12:]),
	}
}
