package compressor

import (
	"bytes"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGzipCompressor(t *testing.T) {
	Convey("Given a GzipCompressor", t, func() {
		comp := NewGzip()

		Convey("When streaming data through Wrap", func() {
			var compressed bytes.Buffer
			w := comp.Wrap(&compressed)

			payload := bytes.Repeat([]byte("-- INSERT INTO shop VALUES (1);\n"), 200)
			_, err := w.Write(payload)
			So(err, ShouldBeNil)
			So(w.Close(), ShouldBeNil)

			Convey("The output should be a valid, smaller gzip stream", func() {
				So(compressed.Len(), ShouldBeGreaterThan, 0)
				So(compressed.Len(), ShouldBeLessThan, len(payload))

				r, err := comp.Unwrap(bytes.NewReader(compressed.Bytes()))
				So(err, ShouldBeNil)
				defer r.Close()

				restored, err := io.ReadAll(r)
				So(err, ShouldBeNil)
				So(restored, ShouldResemble, payload)
			})
		})

		Convey("When unwrapping garbage", func() {
			_, err := comp.Unwrap(bytes.NewReader([]byte("not gzip")))

			Convey("It should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
