// Package lookup builds and reads the word (k-mer) lookup-table shard
// files described in spec.md §4.3 and §6: for a bounded-memory shard
// of the sequence set, a table mapping every possible w-mer to its
// postings list of (sequence-id, position) occurrences.
package lookup

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/edsrzf/mmap-go"

	"github.com/solgenomics/unigene"
)

const postingSize = 8 // on-disk size of word_t: two uint32s

// Posting is one occurrence of a word in one sequence (spec.md §3).
type Posting struct {
	SeqID  uint32
	SeqPos uint32
}

// wordEntry is the on-disk lookupmeta_t: a postings-list descriptor.
type wordEntry struct {
	Count  uint32
	Offset uint32 // byte offset of this word's postings within the file
}

// Header is the on-disk shard header (spec.md §6).
type Header struct {
	Magic         uint32
	WordSize      uint32
	Start         uint32 // inclusive
	EndInclusive  uint32 // on-disk; the exclusive end is EndInclusive+1
	TableIndex    int32
	TotalPostings uint32
}

// Builder accumulates sequences into shards bounded by a memory
// budget and flushes each shard to disk as it fills, per spec.md
// §4.3's shard boundary policy.
type Builder struct {
	WordSize    int
	MemBudgetMB int
	ForwardOnly bool
	Basename    string

	shardIndex int
	start      int
	words      [][]Posting // len == NumWords(WordSize); postings accumulated so far in this shard
	postings   int
}

// NewBuilder creates a Builder for the given word size, memory
// budget, and output basename (shard files are written to
// "<basename>.lt.<n>").
func NewBuilder(basename string, wordSize, memBudgetMB int, forwardOnly bool) *Builder {
	return &Builder{
		WordSize:    wordSize,
		MemBudgetMB: memBudgetMB,
		ForwardOnly: forwardOnly,
		Basename:    basename,
		words:       make([][]Posting, unigene.NumWords(wordSize)),
	}
}

// Add folds one sequence's words into the current shard, flushing and
// starting a new shard first if the sequence would push the running
// postings-bytes total over the memory budget; the flushed shard ends
// (exclusive) at seq.ID. Callers add sequences in increasing id order.
func (b *Builder) Add(seq *unigene.Sequence) error {
	if b.ForwardOnly && seq.ID%2 == 1 {
		return nil
	}

	budget := int64(b.MemBudgetMB) * (1 << 20)
	wordsInSeq := 0
	if len(seq.Bases) >= b.WordSize {
		wordsInSeq = len(seq.Bases) - b.WordSize + 1
	}
	if b.postings > 0 && int64(b.postings+wordsInSeq)*postingSize > budget {
		if err := b.flush(seq.ID); err != nil {
			return err
		}
	}
	if b.postings == 0 {
		b.start = seq.ID
	}

	unigene.WordsOf(seq.Bases, b.WordSize, func(pos int, code uint32) {
		b.words[code] = append(b.words[code], Posting{SeqID: uint32(seq.ID), SeqPos: uint32(pos)})
		b.postings++
	})
	return nil
}

// Finish flushes any partially-filled shard. endID is the exclusive
// id just past the last sequence added.
func (b *Builder) Finish(endID int) error {
	if b.postings == 0 && b.start == endID {
		return nil
	}
	return b.flush(endID)
}

// flush applies per-word censoring (spec.md §4.3), writes the current
// shard to disk, and resets accumulator state for the next shard.
func (b *Builder) flush(endID int) error {
	total := b.postings
	expected := float64(total) / float64(unigene.NumWords(b.WordSize))
	censorAt := 50 * expected

	kept := 0
	for code, postings := range b.words {
		if len(postings) == 0 {
			continue
		}
		if float64(len(postings)) > censorAt {
			b.words[code] = nil
			continue
		}
		kept += len(postings)
	}

	path := shardPath(b.Basename, b.shardIndex)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "lookup: create shard %d", b.shardIndex)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := Header{
		Magic:         unigene.LookupMagic,
		WordSize:      uint32(b.WordSize),
		Start:         uint32(b.start),
		EndInclusive:  uint32(endID - 1),
		TableIndex:    int32(b.shardIndex),
		TotalPostings: uint32(kept),
	}
	if err := binary.Write(w, binary.BigEndian, header); err != nil {
		return errors.Wrap(err, "lookup: write header")
	}

	entries := make([]wordEntry, len(b.words))
	offset := uint32(0)
	for code, postings := range b.words {
		if len(postings) == 0 {
			continue
		}
		entries[code] = wordEntry{Count: uint32(len(postings)), Offset: offset}
		offset += uint32(len(postings)) * postingSize
	}
	if err := binary.Write(w, binary.BigEndian, entries); err != nil {
		return errors.Wrap(err, "lookup: write table")
	}
	for _, postings := range b.words {
		for _, p := range postings {
			if err := binary.Write(w, binary.BigEndian, p); err != nil {
				return errors.Wrap(err, "lookup: write postings")
			}
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "lookup: flush shard")
	}

	b.shardIndex++
	b.start = endID
	b.postings = 0
	for i := range b.words {
		b.words[i] = nil
	}
	return nil
}

// ShardCount returns the number of shards fully flushed so far
// (valid after Finish returns).
func (b *Builder) ShardCount() int { return b.shardIndex }

// ShardPath returns the on-disk path of shard index under basename,
// matching spec.md §6's "<basename>.lt.<n>" naming.
func ShardPath(basename string, index int) string {
	return shardPath(basename, index)
}

func shardPath(basename string, index int) string {
	return basename + ".lt." + itoa(index)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
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

// Shard is a read-only, mmap-backed view of one on-disk shard,
// per spec.md §5's "lookup-table shard is read-only and may be shared
// immutably."
type Shard struct {
	Header        Header
	table         []wordEntry
	data          mmap.MMap
	file          *os.File
	mmapped       bool
	postingsStart int
}

// Open mmaps the shard file at path.
func Open(path string) (*Shard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "lookup: open shard %s", path)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "lookup: mmap shard %s", path)
	}

	s, err := parseShard(data)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	s.file = f
	s.mmapped = true
	return s, nil
}

// OpenBytes parses a shard from an already-loaded byte slice (the
// driver's ShardCache, for instance) instead of mmapping the
// canonical file. The returned Shard owns no file descriptor or
// mapping, so Close is a no-op.
func OpenBytes(raw []byte) (*Shard, error) {
	return parseShard(mmap.MMap(raw))
}

func parseShard(data mmap.MMap) (*Shard, error) {
	s := &Shard{data: data}
	r := newSliceReader(data)
	if err := binary.Read(r, binary.BigEndian, &s.Header); err != nil {
		return nil, errors.Wrap(err, "lookup: read header")
	}
	if s.Header.Magic != unigene.LookupMagic {
		return nil, errors.Errorf("lookup: bad shard magic %#x", s.Header.Magic)
	}

	n := unigene.NumWords(int(s.Header.WordSize))
	s.table = make([]wordEntry, n)
	if err := binary.Read(r, binary.BigEndian, s.table); err != nil {
		return nil, errors.Wrap(err, "lookup: read table")
	}
	s.postingsStart = r.pos
	return s, nil
}

// Close unmaps and closes the shard file. Shards opened via OpenBytes
// hold neither, so Close is a no-op for them.
func (s *Shard) Close() error {
	var err error
	if s.mmapped && s.data != nil {
		err = s.data.Unmap()
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Start and End return the half-open [Start,End) sequence-id range
// this shard covers.
func (s *Shard) Start() int { return int(s.Header.Start) }
func (s *Shard) End() int   { return int(s.Header.EndInclusive) + 1 }

// Postings returns the postings list for word code, or nil if the
// word has no occurrences in this shard (including censored words,
// which are indistinguishable from genuinely absent ones, per
// spec.md §4.3's "a censored word simply contributes no matches").
func (s *Shard) Postings(code uint32) []Posting {
	e := s.table[code]
	if e.Count == 0 {
		return nil
	}
	start := s.postingsStart + int(e.Offset)
	out := make([]Posting, e.Count)
	r := newSliceReader(s.data[start:])
	if err := binary.Read(r, binary.BigEndian, out); err != nil {
		return nil
	}
	return out
}

type sliceReader struct {
	data []byte
	pos  int
}

func newSliceReader(data []byte) *sliceReader { return &sliceReader{data: data} }

func (r *sliceReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
