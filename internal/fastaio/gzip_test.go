package fastaio

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMaybeGzipPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.fasta")
	if err := os.WriteFile(path, []byte(">a\nACGT\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenMaybeGzip(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != ">a\nACGT\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenMaybeGzipCompressedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compressed.fasta.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(">a\nACGT\n")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenMaybeGzip(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != ">a\nACGT\n" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenMaybeGzipMissingFile(t *testing.T) {
	if _, err := OpenMaybeGzip("/nonexistent/path.fasta"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
