package driver

import (
	"strings"
	"testing"
)

func TestLoadChimeraParsesIDsSkippingBlanksAndComments(t *testing.T) {
	in := "3\n\n# chimeric candidates flagged during scan\n17\n   42  \n"
	got, err := LoadChimera(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{3, 17, 42}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for _, id := range want {
		if !got[id] {
			t.Fatalf("expected id %d to be marked chimeric", id)
		}
	}
}

func TestLoadChimeraRejectsMalformedLine(t *testing.T) {
	if _, err := LoadChimera(strings.NewReader("3\nnot-a-number\n")); err == nil {
		t.Fatal("expected an error for a non-numeric line")
	}
}

func TestLoadChimeraEmptyInput(t *testing.T) {
	got, err := LoadChimera(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("len(got) = %d, want 0", len(got))
	}
}
