package unigene

// Roller computes a rolling w-mer code over a 2-bit encoded sequence,
// shared by the lookup-table builder and the scanner so both address
// the same 4^w-entry table (spec.md §4.1, §4.3, §4.4).
//
// The code is not a generic hash: it must be the literal index into
// the lookup table's 4^w array, so it is computed directly with
// shift-and-mask arithmetic rather than delegating to a rolling-hash
// library (see DESIGN.md, entry DB-WORDCODE).
type Roller struct {
	w    int
	mask uint64
	code uint64
	n    int // number of bases folded into code so far, capped at w
}

// NewRoller creates a Roller for word size w. w must be in [2,24]
// per spec.md §6.
func NewRoller(w int) *Roller {
	return &Roller{
		w:    w,
		mask: (uint64(1) << uint(2*w)) - 1,
	}
}

// Reset clears the roller, e.g. after crossing an ambiguous-base gap.
func (r *Roller) Reset() {
	r.code = 0
	r.n = 0
}

// Push folds one more 2-bit base code into the rolling word code.
// It reports whether the roller now holds a full w-mer.
func (r *Roller) Push(base Base) (full bool) {
	r.code = ((r.code << 2) | uint64(base&3)) & r.mask
	if r.n < r.w {
		r.n++
	}
	return r.n == r.w
}

// Code returns the current w-mer code, valid only once Push has
// returned full at least once since the last Reset.
func (r *Roller) Code() uint32 {
	return uint32(r.code)
}

// NumWords returns 4^w, the size of the lookup table's word array.
func NumWords(w int) int64 {
	return int64(1) << uint(2*w)
}

// WordsOf walks bases2bit with a Roller of size w, invoking fn with
// the word code and the position of the word's first base (i.e. a
// window [pos, pos+w)) for every unambiguous w-mer. bases2bit must
// already be 2-bit encoded (Encode's output); it contains no
// ambiguous bases by construction, so the roller never resets here,
// but callers who instead index within a larger buffer containing
// gaps should call Reset at each gap boundary themselves.
func WordsOf(bases2bit []byte, w int, fn func(pos int, code uint32)) {
	if len(bases2bit) < w {
		return
	}
	roller := NewRoller(w)
	for i, base := range bases2bit {
		if roller.Push(base) {
			fn(i-w+1, roller.Code())
		}
	}
}
