package unigene

import "testing"

func TestNumWords(t *testing.T) {
	tests := []struct {
		w    int
		want int64
	}{
		{1, 4}, {2, 16}, {4, 256}, {6, 4096},
	}
	for _, tt := range tests {
		if got := NumWords(tt.w); got != tt.want {
			t.Fatalf("NumWords(%d) = %d, want %d", tt.w, got, tt.want)
		}
	}
}

func TestWordsOfPositionConvention(t *testing.T) {
	// "ACGTAC" with w=3: words start at query positions 0..3.
	bases, _ := Encode([]byte("ACGTAC"))
	var gotPos []int
	var gotCodes []uint32
	WordsOf(bases, 3, func(pos int, code uint32) {
		gotPos = append(gotPos, pos)
		gotCodes = append(gotCodes, code)
	})
	wantPos := []int{0, 1, 2, 3}
	if len(gotPos) != len(wantPos) {
		t.Fatalf("got %d windows, want %d", len(gotPos), len(wantPos))
	}
	for i, p := range wantPos {
		if gotPos[i] != p {
			t.Fatalf("pos[%d] = %d, want %d", i, gotPos[i], p)
		}
	}
	// Codes must be stable re-derivations: recompute each word's code
	// directly from its bases and compare.
	for i, pos := range gotPos {
		want := uint32(0)
		for j := 0; j < 3; j++ {
			want = want<<2 | uint32(bases[pos+j])
		}
		if gotCodes[i] != want {
			t.Fatalf("code[%d] = %d, want %d", i, gotCodes[i], want)
		}
	}
}

func TestWordsOfShortSequenceEmitsNothing(t *testing.T) {
	bases, _ := Encode([]byte("AC"))
	count := 0
	WordsOf(bases, 4, func(pos int, code uint32) { count++ })
	if count != 0 {
		t.Fatalf("WordsOf emitted %d windows for a too-short sequence, want 0", count)
	}
}

func TestRollerResetMatchesFreshRoller(t *testing.T) {
	r := NewRoller(4)
	bases, _ := Encode([]byte("ACGTA"))
	for _, b := range bases[:4] {
		r.Push(b)
	}
	first := r.Code()

	r.Reset()
	for _, b := range bases[1:5] {
		r.Push(b)
	}
	second := r.Code()

	fresh := NewRoller(4)
	for _, b := range bases[1:5] {
		fresh.Push(b)
	}
	if second != fresh.Code() {
		t.Fatalf("Reset then Push produced %d, want %d", second, fresh.Code())
	}
	if first == second {
		t.Fatalf("codes for different 4-mers collided: %d", first)
	}
}
