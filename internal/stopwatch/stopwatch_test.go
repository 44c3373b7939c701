package stopwatch

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestUnitString(t *testing.T) {
	assert.Equal(t, "s", Seconds.String())
	assert.Equal(t, "ms", Milliseconds.String())
	assert.Equal(t, "μs", Microseconds.String())
	assert.Equal(t, "ns", Nanoseconds.String())
}

func TestOptimalUnit(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected Unit
	}{
		{2 * time.Second, Seconds},
		{time.Second, Seconds},
		{999 * time.Millisecond, Milliseconds},
		{time.Millisecond, Milliseconds},
		{999 * time.Microsecond, Microseconds},
		{time.Microsecond, Microseconds},
		{999 * time.Nanosecond, Nanoseconds},
		{0, Nanoseconds},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, OptimalUnit(tt.d))
		})
	}
}

func TestConvert(t *testing.T) {
	v := Convert(1500 * time.Millisecond)
	assert.Equal(t, Seconds, v.Unit)
	assert.Equal(t, int64(1), v.Int)
	assert.False(t, v.IsFloat)
	assert.Equal(t, "1s", v.String())

	assert.Equal(t, "250μs", Convert(250*time.Microsecond).String())
	assert.Equal(t, "42ns", Convert(42).String())
}

func TestConvertFloat(t *testing.T) {
	v := ConvertFloat(1500*time.Millisecond, 3)
	assert.Equal(t, Seconds, v.Unit)
	assert.InDelta(t, 1.5, v.Float, 1e-9)
	assert.Equal(t, "1.5s", v.String())

	v = ConvertFloat(1234567*time.Nanosecond, -1)
	assert.Equal(t, Milliseconds, v.Unit)
	assert.InDelta(t, 1.235, v.Float, 1e-9)
}

func TestIn(t *testing.T) {
	d := 2*time.Second + 346*time.Millisecond

	assert.Equal(t, int64(2), In(d, Seconds).Int)
	assert.Equal(t, int64(2346), In(d, Milliseconds).Int)
	assert.Equal(t, int64(2346000), In(d, Microseconds).Int)
	assert.Equal(t, int64(d), In(d, Nanoseconds).Int)
	assert.InDelta(t, 2.35, InFloat(d, Seconds, 2).Float, 1e-9)
}

func TestValueNumber(t *testing.T) {
	assert.Equal(t, 3.0, Value{Int: 3}.Number())
	assert.Equal(t, 3.25, Value{Float: 3.25, IsFloat: true}.Number())
}

func TestRound(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		expected float64
	}{
		{1.23456, 3, 1.235},
		{1.23449, 3, 1.234},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{10.0, 2, 10.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Round(tt.v, tt.decimals), 1e-9)
	}
}

func TestStopwatch(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	sw := StartWithClock(clock.now)

	clock.advance(12*time.Millisecond + 500*time.Microsecond)

	assert.Equal(t, 12*time.Millisecond+500*time.Microsecond, sw.Duration())
	assert.Equal(t, "12ms", sw.Elapsed().String())
	assert.Equal(t, int64(12500), sw.ElapsedIn(Microseconds).Int)
	assert.InDelta(t, 12.5, sw.ElapsedMS(), 1e-9)
	assert.Equal(t, "12.5ms", sw.ElapsedFloat(1).String())

	sw.Restart()
	assert.Zero(t, sw.Duration())
}

func TestStopwatch_LogValue(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	sw := StartWithClock(clock.now)
	clock.advance(3 * time.Millisecond)

	var valuer slog.LogValuer = sw
	v := valuer.LogValue()

	assert.Equal(t, slog.KindFloat64, v.Kind())
	assert.InDelta(t, 3.0, v.Float64(), 1e-9)
}

func TestStart_UsesWallClock(t *testing.T) {
	sw := Start()
	assert.GreaterOrEqual(t, sw.Duration(), time.Duration(0))
}
