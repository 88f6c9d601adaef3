package unigene

// Sequence is the in-memory sequence record described in spec.md §3:
// a stable id, a name, 2-bit encoded bases, and parallel per-base
// quality scores.
type Sequence struct {
	ID      int
	Name    string
	Bases   []byte // one byte per base, each in {0,1,2,3}
	Quality []int  // len(Quality) == len(Bases)
}

// Len returns the number of bases in the sequence.
func (s *Sequence) Len() int { return len(s.Bases) }

// Mate returns the id of s's reverse-complement partner, given the
// total sequence count n (spec.md §3: "id k and id k+n/2 ... are
// mates"), used by the half-n/2 layout produced by BuildReverse-
// Complements.
func Mate(id, n int) int {
	half := n / 2
	if id < half {
		return id + half
	}
	return id - half
}

// MateXOR returns the id of id's mate under the lookup builder's
// "forward-only" convention (id XOR 1), used when forward and
// reverse-complement records are interleaved in pairs instead of
// split across the n/2 boundary.
func MateXOR(id int) int {
	return id ^ 1
}

// BuildReverseComplements appends the reverse-complement of every
// sequence in seqs to seqs, assigning ids k+n/2 to the mate of id k
// (spec.md §3). Names get a trailing "-" per the original tool's
// convention (see original_source ka-backup-before-lookup-table-mods.c,
// generate_reverse_complement).
func BuildReverseComplements(seqs []*Sequence) []*Sequence {
	n := len(seqs)
	out := make([]*Sequence, n, n*2)
	copy(out, seqs)
	for i := 0; i < n; i++ {
		src := seqs[i]
		bases := make([]byte, src.Len())
		quality := make([]int, src.Len())
		for j := 0; j < src.Len(); j++ {
			k := src.Len() - j - 1
			bases[j] = src.Bases[k] ^ 3
			quality[j] = src.Quality[k]
		}
		out = append(out, &Sequence{
			ID:      i + n,
			Name:    src.Name + "-",
			Bases:   bases,
			Quality: quality,
		})
	}
	return out
}
