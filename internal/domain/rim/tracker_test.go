package rim_test

import (
	"math"
	"testing"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rim"
	. "github.com/smartystreets/goconvey/convey"
)

var display = model.Size{Width: 375, Height: 812}

func rimAt(x, y float64) model.Detection {
	return model.Detection{Label: "rim", Confidence: 0.9, Box: model.Box{X: x, Y: y, W: 0.2, H: 0.05}}
}

func update(t *rim.Tracker, frame int64, dets ...model.Detection) (rim.Tracked, bool) {
	return t.Update(dets, model.Portrait, model.Video16x9, display, frame)
}

func TestTracker_Update(t *testing.T) {
	Convey("Given a new rim tracker", t, func() {
		tr := rim.NewTracker()

		Convey("When no rim has ever been seen", func() {
			_, ok := update(tr, 1)
			So(ok, ShouldBeFalse)
		})

		Convey("When several rims are detected in one frame", func() {
			// Lower normalized Y is lower on screen after the flip.
			high := rimAt(0.4, 0.8)
			low := rimAt(0.4, 0.3)
			got, ok := update(tr, 1, high, low)

			Convey("Then the one lowest on screen wins", func() {
				So(ok, ShouldBeTrue)
				want, _ := update(rim.NewTracker(), 1, low)
				So(got.Rect, ShouldResemble, want.Rect)
			})
		})

		Convey("When a rim is followed by an empty frame", func() {
			first, _ := update(tr, 1, rimAt(0.4, 0.85))
			second, ok := update(tr, 2)

			Convey("Then the previous rim is held unchanged", func() {
				So(ok, ShouldBeTrue)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When other labels and malformed rims are present", func() {
			bad := rimAt(math.NaN(), 0.5)
			ball := model.Detection{Label: "ball", Confidence: 0.9, Box: model.Box{X: 0.1, Y: 0.1, W: 0.1, H: 0.1}}
			_, ok := update(tr, 1, bad, ball)

			Convey("Then they are ignored", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When reset", func() {
			update(tr, 1, rimAt(0.4, 0.85))
			tr.Reset()
			_, ok := tr.Current()
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a tracker with a staleness limit", t, func() {
		tr := rim.NewTracker(rim.WithMaxStaleFrames(3), rim.WithLabel("hoop"))
		hoop := rimAt(0.4, 0.85)
		hoop.Label = "hoop"
		update(tr, 10, hoop)

		Convey("Then the rim is held within the limit", func() {
			_, ok := update(tr, 13)
			So(ok, ShouldBeTrue)
		})

		Convey("Then the rim expires past the limit", func() {
			_, ok := update(tr, 14)
			So(ok, ShouldBeFalse)
		})
	})
}
