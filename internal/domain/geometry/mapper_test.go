package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/courtside/internal/domain/geometry"
	"github.com/okian/courtside/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-6

var phone = model.Size{Width: 375, Height: 812}

func TestOrient(t *testing.T) {
	Convey("Given a normalized box", t, func() {
		b := model.Box{X: 0.1, Y: 0.2, W: 0.3, H: 0.15}

		Convey("When oriented for portrait", func() {
			out, degraded := geometry.Orient(b, model.Portrait)
			So(degraded, ShouldBeFalse)
			So(out, ShouldResemble, b)
		})

		Convey("When oriented upside down it is reflected through the center", func() {
			out, _ := geometry.Orient(b, model.PortraitUpsideDown)
			So(out.X, ShouldAlmostEqual, 0.6, tolerance)
			So(out.Y, ShouldAlmostEqual, 0.65, tolerance)
			So(out.W, ShouldAlmostEqual, 0.3, tolerance)
			So(out.H, ShouldAlmostEqual, 0.15, tolerance)
		})

		Convey("When oriented landscape left the axes are swapped", func() {
			out, _ := geometry.Orient(b, model.LandscapeLeft)
			So(out.X, ShouldAlmostEqual, 0.2, tolerance)
			So(out.Y, ShouldAlmostEqual, 0.6, tolerance)
			So(out.W, ShouldAlmostEqual, 0.15, tolerance)
			So(out.H, ShouldAlmostEqual, 0.3, tolerance)
		})

		Convey("When oriented landscape right the swap is mirrored", func() {
			out, _ := geometry.Orient(b, model.LandscapeRight)
			So(out.X, ShouldAlmostEqual, 0.65, tolerance)
			So(out.Y, ShouldAlmostEqual, 0.1, tolerance)
			So(out.W, ShouldAlmostEqual, 0.15, tolerance)
			So(out.H, ShouldAlmostEqual, 0.3, tolerance)
		})

		Convey("When the orientation is unknown it falls back to portrait", func() {
			out, degraded := geometry.Orient(b, model.UnknownOrientation)
			So(degraded, ShouldBeTrue)
			So(out, ShouldResemble, b)
		})

		Convey("Then every orientation round-trips through its inverse", func() {
			for _, o := range []model.Orientation{model.Portrait, model.PortraitUpsideDown, model.LandscapeLeft, model.LandscapeRight} {
				oriented, _ := geometry.Orient(b, o)
				back := geometry.Unorient(oriented, o)
				So(back.X, ShouldAlmostEqual, b.X, tolerance)
				So(back.Y, ShouldAlmostEqual, b.Y, tolerance)
				So(back.W, ShouldAlmostEqual, b.W, tolerance)
				So(back.H, ShouldAlmostEqual, b.H, tolerance)
			}
		})
	})
}

func TestMapper_Map(t *testing.T) {
	Convey("Given a default mapper", t, func() {
		m := geometry.NewMapper()

		Convey("When the display is taller than the source", func() {
			ball := model.Box{X: 0.45, Y: 0.9, W: 0.1, H: 0.1}
			ratio := geometry.Ratio(model.Video16x9, phone)
			So(ratio, ShouldBeGreaterThan, 1)

			r, degraded, err := m.Map(ball, model.Portrait, model.Video16x9, phone)
			So(err, ShouldBeNil)
			So(degraded, ShouldBeFalse)

			Convey("Then x is pulled toward the center and the width stretched", func() {
				So(r.X, ShouldAlmostEqual, (0.45+(1-ratio)*(0.5-0.45))*phone.Width, tolerance)
				So(r.W, ShouldAlmostEqual, 0.1*ratio*phone.Width, tolerance)
			})

			Convey("Then y is flipped to a top-left origin", func() {
				So(r.Y, ShouldAlmostEqual, 0, tolerance)
				So(r.H, ShouldAlmostEqual, 0.1*phone.Height, tolerance)
			})

			Convey("Then the rectangle stays on the display", func() {
				So(r.X, ShouldBeBetweenOrEqual, 0, phone.Width)
				So(r.MaxX(), ShouldBeBetweenOrEqual, 0, phone.Width)
				So(r.Y, ShouldBeBetweenOrEqual, -tolerance, phone.Height)
				So(r.MaxY(), ShouldBeBetweenOrEqual, 0, phone.Height)
			})
		})

		Convey("When the display is wider than the source", func() {
			tablet := model.Size{Width: 1024, Height: 768}
			ratio := geometry.Ratio(model.Video16x9, tablet)
			So(ratio, ShouldBeLessThan, 1)

			b := model.Box{X: 0.4, Y: 0.4, W: 0.2, H: 0.2}
			r, _, err := m.Map(b, model.Portrait, model.Video16x9, tablet)
			So(err, ShouldBeNil)

			offset := (ratio - 1) * (0.5 - 0.6)
			So(r.X, ShouldAlmostEqual, 0.4*tablet.Width, tolerance)
			So(r.W, ShouldAlmostEqual, 0.2*tablet.Width, tolerance)
			So(r.Y, ShouldAlmostEqual, (1-offset-0.6)*tablet.Height, tolerance)
			So(r.H, ShouldAlmostEqual, 0.2/ratio*tablet.Height, tolerance)

			Convey("And a height divisor is configured", func() {
				calibrated := geometry.NewMapper(geometry.WithHeightDivisor(2))
				c, _, err := calibrated.Map(b, model.Portrait, model.Video16x9, tablet)
				So(err, ShouldBeNil)
				So(c.H, ShouldAlmostEqual, r.H/2, tolerance)
				So(c.Y, ShouldAlmostEqual, r.Y, tolerance)
			})
		})

		Convey("When the photo preset is used the source ratio is 4:3", func() {
			So(geometry.Ratio(model.Photo4x3, model.Size{Width: 300, Height: 400}), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("When the orientation is unknown", func() {
			b := model.Box{X: 0.2, Y: 0.2, W: 0.1, H: 0.1}
			r, degraded, err := m.Map(b, model.UnknownOrientation, model.Video16x9, phone)
			p, _, _ := m.Map(b, model.Portrait, model.Video16x9, phone)
			So(err, ShouldBeNil)
			So(degraded, ShouldBeTrue)
			So(r, ShouldResemble, p)
		})

		Convey("When the box has zero size", func() {
			r, _, err := m.Map(model.Box{X: 0.5, Y: 0.5}, model.Portrait, model.Video16x9, phone)
			So(err, ShouldBeNil)
			So(r.W, ShouldEqual, 0)
			So(r.H, ShouldEqual, 0)
		})

		Convey("When the box is malformed", func() {
			_, _, err := m.Map(model.Box{X: math.NaN(), W: 0.1, H: 0.1}, model.Portrait, model.Video16x9, phone)
			So(errors.Is(err, geometry.ErrMalformedGeometry), ShouldBeTrue)
		})

		Convey("When the display has no area", func() {
			_, _, err := m.Map(model.Box{W: 0.1, H: 0.1}, model.Portrait, model.Video16x9, model.Size{})
			So(errors.Is(err, geometry.ErrInvalidDisplay), ShouldBeTrue)
		})

		Convey("Then mapping is reproducible", func() {
			b := model.Box{X: 0.31, Y: 0.47, W: 0.12, H: 0.08}
			first, _, _ := m.Map(b, model.LandscapeRight, model.Photo4x3, phone)
			second, _, _ := m.Map(b, model.LandscapeRight, model.Photo4x3, phone)
			So(first, ShouldResemble, second)
		})
	})
}
