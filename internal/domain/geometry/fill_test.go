package geometry

import (
	"testing"

	"github.com/okian/courtside/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFillContinuity(t *testing.T) {
	Convey("Given a ratio of exactly one", t, func() {
		boxes := []model.Box{
			{X: 0.45, Y: 0.9, W: 0.1, H: 0.1},
			{X: 0, Y: 0, W: 1, H: 1},
			{X: 0.2, Y: 0.7, W: 0, H: 0},
		}

		Convey("Then both crop branches produce the same rectangle", func() {
			for _, b := range boxes {
				wide := fillWide(b, 1)
				tall := fillTall(b, 1, defaultHeightDivisor)
				So(wide.X, ShouldAlmostEqual, tall.X, 1e-9)
				So(wide.Y, ShouldAlmostEqual, tall.Y, 1e-9)
				So(wide.W, ShouldAlmostEqual, tall.W, 1e-9)
				So(wide.H, ShouldAlmostEqual, tall.H, 1e-9)
			}
		})
	})
}
