package domain

import "io"

// Compressor wraps a writer in a compressing stream; the dump pipeline
// streams mysqldump output through it directly to the artifact file.
type Compressor interface {
	Wrap(w io.Writer) io.WriteCloser
}
