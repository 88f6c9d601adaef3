package unigene

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Magic numbers for the on-disk formats in spec.md §6. Centralized
// here per spec.md §9's "file-format magic numbers" note.
// FormatVersion names the current format revision; it is not written
// into any file, whose layouts carry only the magic number.
const (
	IndexMagic    uint32 = 0x494e4400 // "IND\0"
	BlobMagic     uint32 = 0x42494e00 // "BIN\0"
	LookupMagic   uint32 = 0x4c4f4f00 // "LOO\0"
	FormatVersion uint32 = 1
)

// seqmeta mirrors the on-disk seqmeta_t record from spec.md §6.
type seqmeta struct {
	NamePos    uint32
	NameLength uint32
	SeqLength  uint32
	SeqbinPos  uint32
}

// Database is an in-memory view over the paired index (*.ind) and
// sequence blob (*.sbin) files of spec.md §6.
type Database struct {
	Seqs []*Sequence
}

// WriteDatabase writes the index and sequence blob files for seqs to
// basename+".ind" and basename+".sbin". The layout is bit-exact with
// spec.md §6: magic, counts, fixed-width metadata, then variable-
// length names/bases. No compression or framing is added here — this
// is the canonical wire format, not a companion cache (see
// SPEC_FULL.md §6).
func WriteDatabase(basename string, seqs []*Sequence) error {
	indFile, err := os.Create(basename + ".ind")
	if err != nil {
		return errors.Wrap(err, "database: create index file")
	}
	defer indFile.Close()

	binFile, err := os.Create(basename + ".sbin")
	if err != nil {
		return errors.Wrap(err, "database: create sequence blob")
	}
	defer binFile.Close()

	indW := bufio.NewWriter(indFile)
	binW := bufio.NewWriter(binFile)

	if err := binary.Write(binW, binary.BigEndian, BlobMagic); err != nil {
		return errors.Wrap(err, "database: write blob magic")
	}
	for _, s := range seqs {
		if _, err := binW.Write(s.Bases); err != nil {
			return errors.Wrap(err, "database: write bases")
		}
	}

	if err := binary.Write(indW, binary.BigEndian, IndexMagic); err != nil {
		return errors.Wrap(err, "database: write index magic")
	}
	if err := binary.Write(indW, binary.BigEndian, uint32(len(seqs))); err != nil {
		return errors.Wrap(err, "database: write n_seq")
	}

	namePos := uint32(0)
	seqbinPos := uint32(0)
	metas := make([]seqmeta, len(seqs))
	for i, s := range seqs {
		metas[i] = seqmeta{
			NamePos:    namePos,
			NameLength: uint32(len(s.Name)),
			SeqLength:  uint32(s.Len()),
			SeqbinPos:  seqbinPos,
		}
		namePos += uint32(len(s.Name)) + 1
		seqbinPos += uint32(s.Len())
	}
	for _, m := range metas {
		if err := binary.Write(indW, binary.BigEndian, m); err != nil {
			return errors.Wrap(err, "database: write seqmeta")
		}
	}
	for _, s := range seqs {
		if _, err := indW.WriteString(s.Name); err != nil {
			return errors.Wrap(err, "database: write name")
		}
		if err := indW.WriteByte(0); err != nil {
			return errors.Wrap(err, "database: write name terminator")
		}
	}

	if err := indW.Flush(); err != nil {
		return errors.Wrap(err, "database: flush index")
	}
	if err := binW.Flush(); err != nil {
		return errors.Wrap(err, "database: flush blob")
	}
	return nil
}

// ReadDatabase loads the full database (metadata, names, and bases)
// for basename into memory. Quality scores are not persisted by the
// database format (spec.md §6 has no quality section); callers that
// need quality must keep it from the original SequenceSource.
func ReadDatabase(basename string) (*Database, error) {
	indFile, err := os.Open(basename + ".ind")
	if err != nil {
		return nil, errors.Wrap(err, "database: open index file")
	}
	defer indFile.Close()

	indR := bufio.NewReader(indFile)
	var magic uint32
	if err := binary.Read(indR, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "database: read index magic")
	}
	if magic != IndexMagic {
		return nil, errors.Errorf("database: bad index magic %#x", magic)
	}

	var nSeq uint32
	if err := binary.Read(indR, binary.BigEndian, &nSeq); err != nil {
		return nil, errors.Wrap(err, "database: read n_seq")
	}

	metas := make([]seqmeta, nSeq)
	for i := range metas {
		if err := binary.Read(indR, binary.BigEndian, &metas[i]); err != nil {
			return nil, errors.Wrapf(err, "database: read seqmeta %d", i)
		}
	}

	nameBlob, err := io.ReadAll(indR)
	if err != nil {
		return nil, errors.Wrap(err, "database: read name table")
	}

	binFile, err := os.Open(basename + ".sbin")
	if err != nil {
		return nil, errors.Wrap(err, "database: open sequence blob")
	}
	defer binFile.Close()

	binR := bufio.NewReader(binFile)
	if err := binary.Read(binR, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "database: read blob magic")
	}
	if magic != BlobMagic {
		return nil, errors.Errorf("database: bad blob magic %#x", magic)
	}
	bases, err := io.ReadAll(binR)
	if err != nil {
		return nil, errors.Wrap(err, "database: read bases")
	}

	seqs := make([]*Sequence, nSeq)
	for i, m := range metas {
		if int(m.NamePos)+int(m.NameLength) > len(nameBlob) {
			return nil, errors.Errorf("database: name out of range for seq %d", i)
		}
		name := string(nameBlob[m.NamePos : m.NamePos+m.NameLength])
		if int(m.SeqbinPos)+int(m.SeqLength) > len(bases) {
			return nil, errors.Errorf("database: bases out of range for seq %d", i)
		}
		seqBases := bases[m.SeqbinPos : m.SeqbinPos+m.SeqLength]
		seqs[i] = &Sequence{
			ID:    i,
			Name:  name,
			Bases: seqBases,
		}
	}
	return &Database{Seqs: seqs}, nil
}
