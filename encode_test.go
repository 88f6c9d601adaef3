package unigene

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []string{"ACGT", "acgt", "AAAA", "TTTT", "ACGTACGTACGT"}
	for _, text := range tests {
		bases, n := Encode([]byte(text))
		if n != len(text) {
			t.Fatalf("Encode(%q) length = %d, want %d", text, n, len(text))
		}
		got := Decode(bases)
		if !bytes.EqualFold(got, []byte(text)) {
			t.Fatalf("Decode(Encode(%q)) = %q", text, got)
		}
	}
}

func TestEncodeDropsAmbiguousBases(t *testing.T) {
	bases, n := Encode([]byte("ACNGT"))
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	if got := Decode(bases); got != nil && string(got) != "ACGT" {
		t.Fatalf("Decode = %q, want ACGT", got)
	}
}

func TestEncodeWithQualityKeepsAlignment(t *testing.T) {
	// 'N' at index 2 must drop both the base and its quality entry,
	// not just truncate the tail.
	bases, quality := EncodeWithQuality([]byte("ACNGT"), []int{10, 20, 30, 40, 50})
	if len(bases) != 4 || len(quality) != 4 {
		t.Fatalf("len(bases)=%d len(quality)=%d, want 4 and 4", len(bases), len(quality))
	}
	want := []int{10, 20, 40, 50}
	for i, q := range quality {
		if q != want[i] {
			t.Fatalf("quality[%d] = %d, want %d", i, q, want[i])
		}
	}
}

func TestReverseComplement(t *testing.T) {
	bases, _ := Encode([]byte("ACGT"))
	ReverseComplement(bases)
	if got := string(Decode(bases)); got != "ACGT" {
		t.Fatalf("ReverseComplement(ACGT) = %s, want ACGT (self-complementary)", got)
	}

	bases, _ = Encode([]byte("AAGG"))
	ReverseComplement(bases)
	if got := string(Decode(bases)); got != "CCTT" {
		t.Fatalf("ReverseComplement(AAGG) = %s, want CCTT", got)
	}
}

func TestReverseComplementOddLength(t *testing.T) {
	bases, _ := Encode([]byte("AAA"))
	ReverseComplement(bases)
	if got := string(Decode(bases)); got != "TTT" {
		t.Fatalf("ReverseComplement(AAA) = %s, want TTT", got)
	}
}
