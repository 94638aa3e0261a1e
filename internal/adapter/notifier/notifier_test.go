package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncate(t *testing.T) {
	Convey("Given the notification body limit", t, func() {
		notice := fmt.Sprintf(" [message truncated, original exceeded %d characters]", BodyLimit)

		Convey("When the message is under the limit", func() {
			msg := strings.Repeat("a", BodyLimit-1)

			Convey("It should pass through unmodified", func() {
				So(Truncate(msg), ShouldEqual, msg)
			})
		})

		Convey("When the message is exactly at the limit", func() {
			msg := strings.Repeat("a", BodyLimit)

			Convey("It should pass through unmodified", func() {
				So(Truncate(msg), ShouldEqual, msg)
			})
		})

		Convey("When the message exceeds the limit", func() {
			msg := strings.Repeat("a", BodyLimit) + "overflow"
			got := Truncate(msg)

			Convey("It should be the first 300 characters plus the fixed notice", func() {
				So(got, ShouldEqual, msg[:BodyLimit]+notice)
			})
		})

		Convey("When a multi-byte character straddles the limit", func() {
			msg := strings.Repeat("a", BodyLimit-1) + "ü" + "overflow"
			got := Truncate(msg)

			Convey("It should cut on a rune boundary and stay valid UTF-8", func() {
				So(utf8.ValidString(got), ShouldBeTrue)
				So(got, ShouldEqual, strings.Repeat("a", BodyLimit-1)+"ü"+notice)
			})
		})
	})
}

type recordingChannel struct {
	messages []string
	err      error
}

func (r *recordingChannel) Notify(ctx context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func TestComposite(t *testing.T) {
	Convey("Given a composite notifier", t, func() {
		ctx := context.Background()

		Convey("When every channel succeeds", func() {
			a, b := &recordingChannel{}, &recordingChannel{}
			c := NewComposite(a, b)

			err := c.Notify(ctx, "dump failed")

			Convey("It should deliver to all channels", func() {
				So(err, ShouldBeNil)
				So(a.messages, ShouldResemble, []string{"dump failed"})
				So(b.messages, ShouldResemble, []string{"dump failed"})
			})
		})

		Convey("When one channel fails", func() {
			a := &recordingChannel{err: errors.New("smtp down")}
			b := &recordingChannel{}
			c := NewComposite(a, b)

			err := c.Notify(ctx, "dump failed")

			Convey("It should still deliver to the others and report the failure", func() {
				So(err, ShouldNotBeNil)
				So(b.messages, ShouldResemble, []string{"dump failed"})
			})
		})

		Convey("When there are no channels", func() {
			Convey("It should be a no-op", func() {
				So(NewComposite().Notify(ctx, "x"), ShouldBeNil)
			})
		})
	})
}
