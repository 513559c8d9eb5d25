package pipeline_test

import (
	"context"
	"math"
	"testing"

	"github.com/okian/courtside/internal/domain/geometry"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

var phone = model.Size{Width: 375, Height: 812}

func frame(index int64, dets ...model.Detection) model.Frame {
	return model.Frame{
		Index:       index,
		Orientation: model.Portrait,
		Preset:      model.Video16x9,
		Display:     phone,
		Detections:  dets,
	}
}

func ball(x, y float64) model.Detection {
	return model.Detection{Label: "ball", Confidence: 0.92, Box: model.Box{X: x, Y: y, W: 0.1, H: 0.1}}
}

var hoop = model.Detection{Label: "rim", Confidence: 0.88, Box: model.Box{X: 0.4, Y: 0.85, W: 0.2, H: 0.05}}

func inside(r model.Rect, s model.Size) bool {
	const eps = 1e-9
	return r.X >= -eps && r.MaxX() <= s.Width+eps && r.Y >= -eps && r.MaxY() <= s.Height+eps
}

func TestSession_EndToEnd(t *testing.T) {
	Convey("Given a session on a portrait phone display", t, func() {
		ctx := context.Background()
		s := pipeline.NewSession(pipeline.WithPresenterOptions())
		So(geometry.Ratio(model.Video16x9, phone), ShouldBeGreaterThan, 1)

		Convey("When the ball is above the rim", func() {
			res := s.Process(ctx, frame(1, ball(0.45, 0.9), hoop))

			Convey("Then every rectangle lands on the display", func() {
				So(len(res.Annotations), ShouldEqual, 2)
				for _, a := range res.Annotations {
					So(inside(a.Rect, phone), ShouldBeTrue)
				}
			})

			Convey("Then the rim is tracked", func() {
				So(res.Rim, ShouldNotBeNil)
				So(*res.Rim, ShouldResemble, res.Annotations[1].Rect)
			})

			Convey("Then only an attempt fires", func() {
				So(res.Has(model.AttemptStarted), ShouldBeTrue)
				So(res.Has(model.ShotMade), ShouldBeFalse)
			})

			Convey("And the ball then drops through the rim", func() {
				next := s.Process(ctx, frame(2, ball(0.45, 0.83), hoop))

				Convey("Then a make fires without a second attempt", func() {
					So(next.Has(model.ShotMade), ShouldBeTrue)
					So(next.Has(model.AttemptStarted), ShouldBeFalse)
				})

				Convey("Then the board counts one of one", func() {
					sum := s.Board().Summary()
					So(sum.Score, ShouldEqual, "1 / 1")
					So(sum.Percentage, ShouldEqual, 100)
				})
			})
		})

		Convey("When the rim disappears for a frame", func() {
			first := s.Process(ctx, frame(1, hoop))
			second := s.Process(ctx, frame(2))

			Convey("Then the previous rim is still reported", func() {
				So(second.Rim, ShouldNotBeNil)
				So(*second.Rim, ShouldResemble, *first.Rim)
			})
		})

		Convey("When reset", func() {
			s.Process(ctx, frame(1, ball(0.45, 0.9), hoop))
			s.Reset()
			res := s.Process(ctx, frame(2, ball(0.45, 0.9)))

			Convey("Then no rim is tracked and the board is empty", func() {
				So(res.Rim, ShouldBeNil)
				So(res.Events, ShouldBeEmpty)
				So(s.Board().Summary().Attempts, ShouldEqual, 0)
			})
		})
	})
}

func TestSession_MalformedInput(t *testing.T) {
	Convey("Given a session with a tracked rim", t, func() {
		ctx := context.Background()
		s := pipeline.NewSession()
		s.Process(ctx, frame(1, hoop))
		before := s.EngineState()

		Convey("When a ball with NaN confidence arrives above the rim", func() {
			bad := ball(0.45, 0.9)
			bad.Confidence = math.NaN()
			res := s.Process(ctx, frame(2, bad, hoop))

			Convey("Then it is excluded from annotations", func() {
				So(len(res.Annotations), ShouldEqual, 1)
				So(res.Annotations[0].Text, ShouldStartWith, "rim")
				So(res.Skipped, ShouldEqual, 1)
			})

			Convey("Then no event fires and state is unchanged", func() {
				So(res.Events, ShouldBeEmpty)
				So(s.EngineState(), ShouldResemble, before)
			})
		})

		Convey("When a box has infinite coordinates", func() {
			bad := ball(math.Inf(1), 0.9)
			res := s.Process(ctx, frame(2, bad, ball(0.45, 0.9)))

			Convey("Then only that detection is skipped", func() {
				So(res.Skipped, ShouldEqual, 1)
				So(res.Has(model.AttemptStarted), ShouldBeTrue)
			})
		})

		Convey("When the display size is missing", func() {
			f := frame(2, ball(0.45, 0.9), hoop)
			f.Display = model.Size{}
			res := s.Process(ctx, f)

			Convey("Then the frame is skipped whole", func() {
				So(res.Skipped, ShouldEqual, 2)
				So(res.Annotations, ShouldBeEmpty)
				So(s.EngineState(), ShouldResemble, before)
			})
		})
	})
}

func TestSession_Policies(t *testing.T) {
	Convey("Given a session that suppresses degraded frames", t, func() {
		ctx := context.Background()
		s := pipeline.NewSession(pipeline.WithSuppressWhenDegraded(true))

		Convey("When the orientation is unknown", func() {
			f := frame(1, ball(0.45, 0.9), hoop)
			f.Orientation = model.UnknownOrientation
			res := s.Process(ctx, f)

			Convey("Then the result is degraded and carries no events", func() {
				So(res.Degraded, ShouldBeTrue)
				So(res.Events, ShouldBeEmpty)
				So(len(res.Annotations), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a session with a detection cap of two", t, func() {
		s := pipeline.NewSession(pipeline.WithMaxDetections(2))
		res := s.Process(context.Background(), frame(1, hoop, ball(0.1, 0.1), ball(0.2, 0.2)))

		Convey("Then detections past the cap are dropped", func() {
			So(res.Skipped, ShouldEqual, 1)
			So(len(res.Annotations), ShouldEqual, 2)
		})
	})

	Convey("Given a session with custom labels", t, func() {
		s := pipeline.NewSession(pipeline.WithLabels("basketball", "hoop"))
		b := ball(0.45, 0.9)
		b.Label = "basketball"
		h := hoop
		h.Label = "hoop"
		res := s.Process(context.Background(), frame(1, b, h))

		Convey("Then events use the configured labels", func() {
			So(res.Has(model.AttemptStarted), ShouldBeTrue)
		})
	})
}
