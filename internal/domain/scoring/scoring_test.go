package scoring_test

import (
	"testing"
	"time"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestBoard(t *testing.T) {
	Convey("Given a started board with a fake clock", t, func() {
		clock := &fakeClock{t: time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)}
		b := scoring.NewBoard(scoring.WithClock(clock.now))
		b.Start()

		Convey("When events are recorded", func() {
			b.Record([]model.Event{{Kind: model.AttemptStarted, Frame: 1}})
			b.Record([]model.Event{{Kind: model.AttemptStarted, Frame: 9}, {Kind: model.ShotMade, Frame: 9}})
			b.Record([]model.Event{{Kind: model.AttemptStarted, Frame: 30}})
			clock.t = clock.t.Add(time.Hour + 2*time.Minute + 3*time.Second)

			s := b.Summary()

			Convey("Then the tally reflects them", func() {
				So(s.Made, ShouldEqual, 1)
				So(s.Attempts, ShouldEqual, 3)
				So(s.Score, ShouldEqual, "1 / 3")
				So(s.Percentage, ShouldEqual, 33)
				So(s.Clock, ShouldEqual, "01:02:03")
				So(s.Running, ShouldBeTrue)
			})
		})

		Convey("When stopped", func() {
			clock.t = clock.t.Add(42 * time.Second)
			b.Stop()
			clock.t = clock.t.Add(time.Hour)

			Convey("Then the stopwatch is frozen", func() {
				s := b.Summary()
				So(s.Elapsed, ShouldEqual, 42*time.Second)
				So(s.Running, ShouldBeFalse)
			})
		})

		Convey("When restarted", func() {
			b.Record([]model.Event{{Kind: model.ShotMade}})
			b.Start()
			So(b.Summary().Made, ShouldEqual, 0)
		})
	})
}

func TestPercentage(t *testing.T) {
	Convey("Given made and attempt counts", t, func() {
		So(scoring.Percentage(0, 0), ShouldEqual, 0)
		So(scoring.Percentage(3, 4), ShouldEqual, 75)
		So(scoring.Percentage(2, 1), ShouldEqual, 100)
		So(scoring.FormatClock(59*time.Second), ShouldEqual, "00:00:59")
	})
}
