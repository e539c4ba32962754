package tween

import (
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

func drain(tr *TimedRange, fc *clocktesting.FakeClock, step time.Duration) []float64 {
	var values []float64
	for {
		fc.Step(step)
		v, ok := tr.Next()
		if !ok {
			return values
		}
		values = append(values, v)
	}
}

func TestTimedRangeLinearIsMonotonic(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		start    float64
		stop     float64
		duration time.Duration
		step     time.Duration
	}{
		{0, 100, time.Second, 50 * time.Millisecond},
		{0, 2000, 250 * time.Millisecond, time.Millisecond},
		{4095, 0, time.Second, 25 * time.Millisecond},
	}

	for _, testCase := range testCases {
		fc := clocktesting.NewFakeClock(time.Now())
		tr := NewTimedRange(fc, testCase.start, testCase.stop, testCase.duration, ease.Linear)

		values := drain(tr, fc, testCase.step)
		require.NotEmpty(t, values)

		span := testCase.stop - testCase.start
		rising := span > 0
		for i := 1; i < len(values); i++ {
			if rising {
				assert.GreaterOrEqual(t, values[i], values[i-1])
			} else {
				assert.LessOrEqual(t, values[i], values[i-1])
			}
		}

		// Every value stays inside [start, stop] for the identity curve, and
		// the last one lands within a single step's worth of progress from
		// the stop value.
		stepProgress := span * testCase.step.Seconds() / testCase.duration.Seconds()
		for _, v := range values {
			if rising {
				assert.GreaterOrEqual(t, v, testCase.start)
				assert.LessOrEqual(t, v, testCase.stop)
			} else {
				assert.LessOrEqual(t, v, testCase.start)
				assert.GreaterOrEqual(t, v, testCase.stop)
			}
		}
		last := values[len(values)-1]
		assert.InDelta(t, testCase.stop, last, abs(stepProgress))
	}
}

func TestTimedRangeTerminates(t *testing.T) {
	t.Parallel()

	fc := clocktesting.NewFakeClock(time.Now())
	tr := NewTimedRange(fc, 0, 1, 100*time.Millisecond, ease.OutCubic)

	// One step per millisecond: production must stop once elapsed time
	// reaches the duration, never later.
	steps := 0
	for {
		fc.Step(time.Millisecond)
		if _, ok := tr.Next(); !ok {
			break
		}
		steps++
	}
	assert.LessOrEqual(t, steps, 100)
}

func TestTimedRangeEmptyWhenDurationAlreadyElapsed(t *testing.T) {
	t.Parallel()

	fc := clocktesting.NewFakeClock(time.Now())
	tr := NewTimedRange(fc, 0, 100, 10*time.Millisecond, ease.Linear)

	// The consumer's first read can legally happen after the whole duration
	// has passed; the sequence is then empty.
	fc.Step(time.Second)
	_, ok := tr.Next()
	assert.False(t, ok)

	// And it stays done.
	fc.Step(time.Second)
	_, ok = tr.Next()
	assert.False(t, ok)
}

func TestTimedRangeElapsedExactlyDurationIsDone(t *testing.T) {
	t.Parallel()

	fc := clocktesting.NewFakeClock(time.Now())
	tr := NewTimedRange(fc, 0, 100, time.Second, ease.Linear)

	fc.Step(time.Second)
	_, ok := tr.Next()
	assert.False(t, ok)
}

func TestTimedRangeNonPositiveDurationIsDone(t *testing.T) {
	t.Parallel()

	fc := clocktesting.NewFakeClock(time.Now())
	tr := NewTimedRange(fc, 0, 100, 0, ease.Linear)

	_, ok := tr.Next()
	assert.False(t, ok)
}

func TestTimedRangeOvershootIsNotClamped(t *testing.T) {
	t.Parallel()

	fc := clocktesting.NewFakeClock(time.Now())
	tr := NewTimedRange(fc, 0, 100, time.Second, ease.OutBack)

	// OutBack swings past 1.0 late in the curve; the raw overshoot must come
	// through untouched.
	fc.Step(800 * time.Millisecond)
	v, ok := tr.Next()
	require.True(t, ok)
	assert.Greater(t, v, 100.0)
}

func TestTimedRangeStartValueAtZeroElapsed(t *testing.T) {
	t.Parallel()

	fc := clocktesting.NewFakeClock(time.Now())
	tr := NewTimedRange(fc, 42, 100, time.Second, ease.Linear)

	v, ok := tr.Next()
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
