package unigene

import "gonum.org/v1/gonum/stat"

const minTailRunLen = 12

// tailCandidate is a run of a single repeated base considered for
// trimming.
type tailCandidate struct {
	pos, runLen int
}

// scanTrailingRun finds, among all runs of >= minTailRunLen
// consecutive occurrences of target in bases, the accepted candidate
// with the longest run (ties broken by scan order, i.e. the
// leftmost), per spec.md §4.2. A run is accepted iff its mean quality
// exceeds 1.5x the mean quality of the up-to-runLen bases immediately
// following it, and the run itself is shorter than a third of the
// read.
func scanTrailingRun(bases []byte, quality []int, target byte) (tailCandidate, bool) {
	n := len(bases)
	best := tailCandidate{pos: -1}
	i := 0
	for i < n {
		if !isBase(bases[i], target) {
			i++
			continue
		}
		j := i
		for j < n && isBase(bases[j], target) {
			j++
		}
		runLen := j - i
		if runLen >= minTailRunLen && runLen*3 < n {
			postEnd := j + runLen
			if postEnd > n {
				postEnd = n
			}
			qRun := stat.Mean(intsToFloats(quality[i:j]), nil)
			accept := false
			if postEnd > j {
				qPost := stat.Mean(intsToFloats(quality[j:postEnd]), nil)
				accept = qRun > 1.5*qPost
			}
			if accept && runLen > best.runLen {
				best = tailCandidate{pos: i, runLen: runLen}
			}
		}
		i = j
	}
	if best.pos == -1 {
		return tailCandidate{}, false
	}
	return best, true
}

func isBase(b, target byte) bool {
	switch target {
	case 'A':
		return b == 'A' || b == 'a'
	case 'T':
		return b == 'T' || b == 't'
	default:
		return b == target
	}
}

func intsToFloats(xs []int) []float64 {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return fs
}

func reverseBytes(b []byte) []byte {
	r := make([]byte, len(b))
	for i, v := range b {
		r[len(b)-1-i] = v
	}
	return r
}

func reverseInts(xs []int) []int {
	r := make([]int, len(xs))
	for i, v := range xs {
		r[len(xs)-1-i] = v
	}
	return r
}

// TrimPolyTail truncates a read's trailing poly-A run (3' end) or
// leading poly-T run (5' end), per spec.md §4.2. The poly-T scan is
// implemented by reversing the read, running the identical
// trailing-run scan for 'T', and mapping the result back — this
// resolves the off-by-one noted in spec.md §9 by construction: both
// ends use the same bounds-checked scan instead of a hand-rolled
// mirror with separate index arithmetic.
//
// When both a poly-A and a poly-T candidate are accepted, the longer
// run wins; ties keep the poly-A (3') candidate, which is scanned
// first.
func TrimPolyTail(bases []byte, quality []int) (trimmedBases []byte, trimmedQuality []int, trimmed bool) {
	n := len(bases)
	polyA, foundA := scanTrailingRun(bases, quality, 'A')

	revBases := reverseBytes(bases)
	revQuality := reverseInts(quality)
	polyT, foundT := scanTrailingRun(revBases, revQuality, 'T')

	switch {
	case foundA && (!foundT || polyA.runLen >= polyT.runLen):
		return bases[:polyA.pos], quality[:polyA.pos], true
	case foundT:
		keepFrom := n - polyT.pos
		return bases[keepFrom:], quality[keepFrom:], true
	default:
		return bases, quality, false
	}
}
