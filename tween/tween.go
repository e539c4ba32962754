package tween

import (
	"time"

	"github.com/fogleman/ease"
	"k8s.io/utils/clock"
)

// TimedRange produces a lazy sequence of values easing from start to stop
// along fn, taking a total of duration in wall-clock time. Progress is driven
// by elapsed time, not by a step count: how many values come out depends
// entirely on how fast the consumer drains it, because every call to Next
// re-samples the clock. A TimedRange is good for a single animation; create a
// fresh one per run.
type TimedRange struct {
	start    float64
	stop     float64
	duration time.Duration
	fn       ease.Function

	clock clock.PassiveClock
	t0    time.Time
}

// NewTimedRange creates a TimedRange anchored at the clock's current instant.
// duration must be positive. Callers outside of tests pass clock.RealClock{}.
func NewTimedRange(cl clock.PassiveClock, start, stop float64, duration time.Duration, fn ease.Function) *TimedRange {
	if fn == nil {
		fn = ease.Linear
	}
	return &TimedRange{
		start:    start,
		stop:     stop,
		duration: duration,
		fn:       fn,
		clock:    cl,
		t0:       cl.Now(),
	}
}

// Next samples the clock and reports the next eased value. The boolean is
// false once the elapsed time has reached the full duration, and stays false.
// The eased value is not clamped to [start, stop]: curves like OutBack or
// OutElastic intentionally overshoot in flight.
func (tr *TimedRange) Next() (float64, bool) {
	if tr.duration <= 0 {
		return 0, false
	}

	d := tr.duration.Seconds()
	elapsed := tr.clock.Since(tr.t0).Seconds()

	// Keep this exact form so the boundary rounds the same way it always has
	// for elapsed values arbitrarily close to d.
	tScaled := 1 - (d-elapsed)/d
	if tScaled >= 1 {
		return 0, false
	}

	return tr.fn(tScaled)*(tr.stop-tr.start) + tr.start, true
}
