package unigene

import "testing"

func TestMate(t *testing.T) {
	n := 10
	for id := 0; id < n; id++ {
		mate := Mate(id, n)
		if Mate(mate, n) != id {
			t.Fatalf("Mate(Mate(%d)) = %d, want %d", id, Mate(mate, n), id)
		}
		if mate == id {
			t.Fatalf("Mate(%d) = %d, a sequence cannot be its own mate", id, mate)
		}
	}
}

func TestMateXOR(t *testing.T) {
	for id := 0; id < 8; id++ {
		if MateXOR(MateXOR(id)) != id {
			t.Fatalf("MateXOR(MateXOR(%d)) != %d", id, id)
		}
	}
}

func TestBuildReverseComplements(t *testing.T) {
	bases, _ := Encode([]byte("ACGT"))
	seqs := []*Sequence{{ID: 0, Name: "read1", Bases: bases, Quality: []int{1, 2, 3, 4}}}

	out := BuildReverseComplements(seqs)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}

	rc := out[1]
	if rc.ID != 1 {
		t.Fatalf("rc.ID = %d, want 1", rc.ID)
	}
	if rc.Name != "read1-" {
		t.Fatalf("rc.Name = %q, want %q", rc.Name, "read1-")
	}
	if string(Decode(rc.Bases)) != "ACGT" {
		t.Fatalf("Decode(rc.Bases) = %q, want ACGT (self-complementary)", Decode(rc.Bases))
	}
	// Quality must reverse in lockstep with bases.
	want := []int{4, 3, 2, 1}
	for i, q := range rc.Quality {
		if q != want[i] {
			t.Fatalf("rc.Quality[%d] = %d, want %d", i, q, want[i])
		}
	}
}
