package fastaio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// OpenMaybeGzip opens path and, if its name ends in ".gz", wraps it in
// a gzip reader transparently, grounded on grailbio-bio's fastq
// downsample reader (encoding/fastq/downsample.go), which does the
// same for sharded FASTQ input. The returned closer closes both the
// gzip reader (if any) and the underlying file.
func OpenMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fastaio: open %s", path)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "fastaio: gzip %s", path)
	}
	return &gzipFile{gz: gz, f: f}, nil
}

// gzipFile closes both layers of a gzip-wrapped file in the right order.
type gzipFile struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}
