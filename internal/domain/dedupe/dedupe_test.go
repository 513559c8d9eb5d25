package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/courtside/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemorySequencer(t *testing.T) {
	Convey("Given a new sequencer", t, func() {
		ctx := context.Background()
		s := dedupe.NewInMemorySequencer()

		Convey("Then it starts empty", func() {
			So(s.Size(), ShouldEqual, 0)
		})

		Convey("When frames arrive in increasing order", func() {
			for i := int64(0); i < 5; i++ {
				So(s.SeenAndRecord(ctx, "a", i), ShouldBeFalse)
			}

			Convey("Then one stream is tracked", func() {
				So(s.Size(), ShouldEqual, 1)
			})

			Convey("And a retry of the last frame is stale", func() {
				So(s.SeenAndRecord(ctx, "a", 4), ShouldBeTrue)
			})

			Convey("And an older frame is stale", func() {
				So(s.SeenAndRecord(ctx, "a", 2), ShouldBeTrue)
			})

			Convey("And gaps are accepted", func() {
				So(s.SeenAndRecord(ctx, "a", 40), ShouldBeFalse)
				So(s.SeenAndRecord(ctx, "a", 39), ShouldBeTrue)
			})
		})

		Convey("When two streams interleave", func() {
			So(s.SeenAndRecord(ctx, "a", 10), ShouldBeFalse)
			So(s.SeenAndRecord(ctx, "b", 1), ShouldBeFalse)

			Convey("Then each keeps its own watermark", func() {
				So(s.SeenAndRecord(ctx, "b", 2), ShouldBeFalse)
				So(s.SeenAndRecord(ctx, "a", 2), ShouldBeTrue)
				So(s.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a frame is unrecorded", func() {
			So(s.SeenAndRecord(ctx, "a", 1), ShouldBeFalse)
			So(s.SeenAndRecord(ctx, "a", 2), ShouldBeFalse)
			s.Unrecord(ctx, "a", 2)

			Convey("Then it can be submitted again", func() {
				So(s.SeenAndRecord(ctx, "a", 2), ShouldBeFalse)
			})

			Convey("And the earlier watermark still holds", func() {
				So(s.SeenAndRecord(ctx, "a", 1), ShouldBeTrue)
			})
		})

		Convey("When the first frame of a stream is unrecorded", func() {
			So(s.SeenAndRecord(ctx, "a", 0), ShouldBeFalse)
			s.Unrecord(ctx, "a", 0)

			Convey("Then frame zero is accepted again", func() {
				So(s.SeenAndRecord(ctx, "a", 0), ShouldBeFalse)
			})
		})

		Convey("When unrecording a frame that is not the watermark", func() {
			So(s.SeenAndRecord(ctx, "a", 5), ShouldBeFalse)
			s.Unrecord(ctx, "a", 3)

			Convey("Then nothing changes", func() {
				So(s.SeenAndRecord(ctx, "a", 5), ShouldBeTrue)
			})
		})

		Convey("When a stream is forgotten", func() {
			So(s.SeenAndRecord(ctx, "a", 7), ShouldBeFalse)
			s.Forget(ctx, "a")

			Convey("Then it restarts from scratch", func() {
				So(s.Size(), ShouldEqual, 0)
				So(s.SeenAndRecord(ctx, "a", 1), ShouldBeFalse)
			})

			Convey("And forgetting twice is harmless", func() {
				s.Forget(ctx, "a")
				So(s.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestInMemorySequencer_Bounded(t *testing.T) {
	Convey("Given a sequencer bounded to two streams", t, func() {
		ctx := context.Background()
		s := dedupe.NewInMemorySequencer(dedupe.WithMaxStreams(2))

		s.SeenAndRecord(ctx, "a", 9)
		s.SeenAndRecord(ctx, "b", 9)
		s.SeenAndRecord(ctx, "c", 9)

		Convey("Then the oldest stream is evicted", func() {
			So(s.Size(), ShouldEqual, 2)
			So(s.SeenAndRecord(ctx, "a", 1), ShouldBeFalse)
			So(s.SeenAndRecord(ctx, "c", 1), ShouldBeTrue)
		})
	})
}

func TestInMemorySequencer_Concurrent(t *testing.T) {
	Convey("Given concurrent submitters of the same frames", t, func() {
		ctx := context.Background()
		s := dedupe.NewInMemorySequencer()

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted int
		)
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := int64(0); i < 100; i++ {
					if !s.SeenAndRecord(ctx, fmt.Sprintf("stream-%d", w%2), i) {
						mu.Lock()
						accepted++
						mu.Unlock()
					}
				}
			}(w)
		}
		wg.Wait()

		Convey("Then each stream never accepts more frames than exist", func() {
			So(accepted, ShouldBeLessThanOrEqualTo, 200)
			So(accepted, ShouldBeGreaterThanOrEqualTo, 2)
			So(s.Size(), ShouldEqual, 2)
		})
	})
}
