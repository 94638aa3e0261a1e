package usecase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func writeArtifact(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("gz"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSweepArtifacts(t *testing.T) {
	Convey("Given a dumps tree with artifacts of various ages", t, func() {
		root := t.TempDir()
		dayDir := filepath.Join(root, "db-prod-3-ab12cd34", "Monday")
		So(os.MkdirAll(dayDir, 0755), ShouldBeNil)

		cutoff := time.Now().Add(-60 * time.Minute)

		old := writeArtifact(t, dayDir, "shop.2026-07-01.dump.sql.gz", cutoff.Add(-time.Hour))
		fresh := writeArtifact(t, dayDir, "shop.2026-08-31.dump.sql.gz", time.Now())
		atThreshold := writeArtifact(t, dayDir, "wiki.2026-08-30.dump.sql.gz", cutoff)
		unrelated := writeArtifact(t, dayDir, "notes.txt", cutoff.Add(-time.Hour))

		Convey("When sweeping", func() {
			deleted := SweepArtifacts(root, cutoff, nopLogger{})

			Convey("It should delete only artifacts strictly older than the cutoff", func() {
				So(deleted, ShouldEqual, 1)

				_, err := os.Stat(old)
				So(os.IsNotExist(err), ShouldBeTrue)

				_, err = os.Stat(fresh)
				So(err, ShouldBeNil)
			})

			Convey("It should retain a file exactly at the threshold age", func() {
				_, err := os.Stat(atThreshold)
				So(err, ShouldBeNil)
			})

			Convey("It should ignore files without the artifact suffix", func() {
				_, err := os.Stat(unrelated)
				So(err, ShouldBeNil)
			})
		})

		Convey("When the root does not exist", func() {
			deleted := SweepArtifacts(filepath.Join(root, "missing"), cutoff, nopLogger{})

			Convey("It should delete nothing and not panic", func() {
				So(deleted, ShouldEqual, 0)
			})
		})
	})
}
