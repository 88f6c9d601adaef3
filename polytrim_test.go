package unigene

import (
	"strings"
	"testing"
)

func uniformQuality(n, q int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = q
	}
	return out
}

func TestTrimPolyTailTrailingPolyA(t *testing.T) {
	// A trailing poly-A run followed by a short low-quality stretch
	// (e.g. adapter contamination) gives the trim a post-run window
	// to compare against, so it is accepted and both the run and the
	// low-quality tail after it are discarded.
	body := "ACGTACGTACGTACGTACGTACGTACGTACGTACGT" // 36 bases, no runs of A/T >= 12
	tail := strings.Repeat("A", 12)
	post := strings.Repeat("C", 6)
	bases := []byte(body + tail + post)
	quality := append(append(uniformQuality(len(body), 30), uniformQuality(len(tail), 30)...), uniformQuality(len(post), 5)...)

	got, gotQ, trimmed := TrimPolyTail(bases, quality)
	if !trimmed {
		t.Fatal("expected a trailing poly-A run to be trimmed")
	}
	if string(got) != body {
		t.Fatalf("trimmed bases = %q, want %q", got, body)
	}
	if len(gotQ) != len(body) {
		t.Fatalf("len(trimmed quality) = %d, want %d", len(gotQ), len(body))
	}
}

func TestTrimPolyTailRejectsRunAtAbsoluteReadEnd(t *testing.T) {
	// A run that reaches the literal end of the read has no
	// downstream bases to compute q_post from, so it must be
	// rejected rather than defaulted to accepted.
	body := "ACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	tail := strings.Repeat("A", 12)
	bases := []byte(body + tail)
	quality := uniformQuality(len(bases), 30)

	_, _, trimmed := TrimPolyTail(bases, quality)
	if trimmed {
		t.Fatal("expected no trim for a run with no post-run comparison window")
	}
}

func TestTrimPolyTailLeadingPolyT(t *testing.T) {
	// A leading poly-T run preceded by a short low-quality stretch
	// gives the (reversed) scan a post-run window, so it is accepted
	// and both the low-quality lead-in and the run are discarded.
	pre := strings.Repeat("G", 12)
	head := strings.Repeat("T", 12)
	body := "ACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	bases := []byte(pre + head + body)
	quality := append(append(uniformQuality(len(pre), 5), uniformQuality(len(head), 30)...), uniformQuality(len(body), 30)...)

	got, _, trimmed := TrimPolyTail(bases, quality)
	if !trimmed {
		t.Fatal("expected a leading poly-T run to be trimmed")
	}
	if string(got) != body {
		t.Fatalf("trimmed bases = %q, want %q", got, body)
	}
}

func TestTrimPolyTailNoRun(t *testing.T) {
	bases := []byte("ACGTACGTACGTACGTACGTACGTACGTACGTACGT")
	quality := uniformQuality(len(bases), 30)

	got, gotQ, trimmed := TrimPolyTail(bases, quality)
	if trimmed {
		t.Fatal("expected no trim for a sequence with no long homopolymer run")
	}
	if string(got) != string(bases) || len(gotQ) != len(quality) {
		t.Fatal("TrimPolyTail must return the input unchanged when nothing is trimmed")
	}
}

func TestTrimPolyTailRunTooLongRelativeToRead(t *testing.T) {
	// A run that's >= a third of the read length is not trimmed.
	bases := []byte(strings.Repeat("A", 12) + "ACGTACGTACGTACGTACGTACGT")
	quality := uniformQuality(len(bases), 30)

	_, _, trimmed := TrimPolyTail(bases, quality)
	if trimmed {
		t.Fatal("expected no trim when the run is not shorter than a third of the read")
	}
}
