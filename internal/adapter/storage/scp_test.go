package storage

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/argosbackup/argos/internal/config"
	"github.com/argosbackup/argos/internal/domain"
)

func TestSCPStore(t *testing.T) {
	Convey("Given an scp remote", t, func() {
		store := NewSCP(&config.RemoteConfig{Host: "vault", BasePath: "/srv/backups"})
		rc := domain.RunContext{
			Hostname:    "db-prod-3",
			MachineID:   "ab12cd34",
			Weekday:     "Monday",
			LocalDayDir: "/var/lib/argos/dumps/db-prod-3-ab12cd34/Monday",
		}

		Convey("Remote paths follow the host/day tree", func() {
			So(store.remoteHostPath(rc), ShouldEqual, "/srv/backups/db-prod-3-ab12cd34")
			So(store.remoteDayPath(rc), ShouldEqual, "/srv/backups/db-prod-3-ab12cd34/Monday")
		})

		Convey("The ssh invocation creates the day directory with -p", func() {
			args := mkdirArgs("vault", store.remoteDayPath(rc))
			So(args, ShouldResemble, []string{"vault", "mkdir", "-p", "/srv/backups/db-prod-3-ab12cd34/Monday"})
		})

		Convey("The scp invocation copies the day directory recursively", func() {
			args := copyArgs(rc.LocalDayDir, "vault", store.remoteHostPath(rc))
			So(args, ShouldResemble, []string{
				"-r",
				"/var/lib/argos/dumps/db-prod-3-ab12cd34/Monday",
				"vault:/srv/backups/db-prod-3-ab12cd34/",
			})
		})

		Convey("Name identifies the target", func() {
			So(store.Name(), ShouldEqual, "scp://vault:/srv/backups")
		})
	})
}

func TestS3DayKey(t *testing.T) {
	Convey("Given an s3 remote", t, func() {
		rc := domain.RunContext{Hostname: "db-prod-3", MachineID: "ab12cd34", Weekday: "Monday"}

		Convey("Keys follow the prefix/host/day layout", func() {
			key := dayKey("nightly", rc, "shop.2026-08-31.dump.sql.gz")
			So(key, ShouldEqual, "nightly/db-prod-3-ab12cd34/Monday/shop.2026-08-31.dump.sql.gz")
		})

		Convey("An empty prefix is elided", func() {
			key := dayKey("", rc, "shop.2026-08-31.dump.sql.gz")
			So(key, ShouldEqual, "db-prod-3-ab12cd34/Monday/shop.2026-08-31.dump.sql.gz")
		})
	})
}
