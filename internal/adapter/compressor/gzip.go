package compressor

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

type GzipCompressor struct {
	level int
}

func NewGzip() *GzipCompressor {
	return &GzipCompressor{level: gzip.BestCompression}
}

func (g *GzipCompressor) Wrap(w io.Writer) io.WriteCloser {
	gz, err := gzip.NewWriterLevel(w, g.level)
	if err != nil {
		// Only reachable with an out-of-range level constant.
		return gzip.NewWriter(w)
	}
	return gz
}

// Unwrap opens a decompressing reader for an artifact stream.
func (g *GzipCompressor) Unwrap(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
