package unigene

import "strings"

// Base is a 2-bit nucleotide code: A=0, C=1, G=2, T=3.
type Base = byte

// The four 2-bit nucleotide codes, per spec.md §2 item 1.
const (
	BaseA Base = 0
	BaseC Base = 1
	BaseG Base = 2
	BaseT Base = 3
)

// baseCode maps an upper- or lower-case A/C/G/T letter to its 2-bit
// code. ok is false for any other byte (ambiguity codes like N, gaps,
// whitespace, ...).
func baseCode(letter byte) (code Base, ok bool) {
	switch letter {
	case 'A', 'a':
		return BaseA, true
	case 'C', 'c':
		return BaseC, true
	case 'G', 'g':
		return BaseG, true
	case 'T', 't':
		return BaseT, true
	default:
		return 0, false
	}
}

// Encode maps nucleotide text to the 2-bit alphabet described in
// spec.md §2 item 1 and §4.1. Any letter outside A/C/G/T breaks the
// current run of bases and is dropped; it does not make Encode fail.
// The returned slice holds one byte per retained base, each in
// {0,1,2,3}.
func Encode(text []byte) (bases2bit []byte, length int) {
	bases2bit = make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		code, ok := baseCode(text[i])
		if !ok {
			continue
		}
		bases2bit = append(bases2bit, code)
	}
	return bases2bit, len(bases2bit)
}

// EncodeWithQuality behaves like Encode but carries a parallel
// per-base quality array through the same filtering, so the i-th
// encoded base and the i-th output quality score always describe the
// same original position — Encode alone doesn't guarantee that when a
// dropped ambiguous base falls in the middle of the text, not just at
// the ends.
func EncodeWithQuality(text []byte, quality []int) (bases2bit []byte, qualOut []int) {
	bases2bit = make([]byte, 0, len(text))
	qualOut = make([]int, 0, len(text))
	for i := 0; i < len(text); i++ {
		code, ok := baseCode(text[i])
		if !ok {
			continue
		}
		bases2bit = append(bases2bit, code)
		if i < len(quality) {
			qualOut = append(qualOut, quality[i])
		} else {
			qualOut = append(qualOut, 0)
		}
	}
	return bases2bit, qualOut
}

// ReverseComplement reverses bases2bit in place and complements each
// base by XORing its 2-bit code with 0b11 (A<->T, C<->G), per
// spec.md §4.1.
func ReverseComplement(bases2bit []byte) {
	n := len(bases2bit)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		bases2bit[i], bases2bit[j] = bases2bit[j]^3, bases2bit[i]^3
	}
	if n%2 == 1 {
		mid := n / 2
		bases2bit[mid] ^= 3
	}
}

// Decode maps 2-bit codes back to upper-case nucleotide text. It is
// the left inverse of Encode restricted to inputs with no ambiguous
// bases (spec.md §8 invariant 1).
func Decode(bases2bit []byte) []byte {
	var sb strings.Builder
	sb.Grow(len(bases2bit))
	letters := [4]byte{'A', 'C', 'G', 'T'}
	for _, b := range bases2bit {
		sb.WriteByte(letters[b&3])
	}
	return []byte(sb.String())
}
