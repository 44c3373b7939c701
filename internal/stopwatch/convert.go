package stopwatch

import (
	"math"
	"strconv"
	"time"
)

// DefaultPrecision is the number of decimals kept by the float conversions
// when a negative precision is requested.
const DefaultPrecision = 3

// Unit is a display unit for a duration.
type Unit int

const (
	// Seconds unit.
	Seconds Unit = iota
	// Milliseconds unit.
	Milliseconds
	// Microseconds unit.
	Microseconds
	// Nanoseconds unit.
	Nanoseconds
)

// String returns the unit suffix.
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "μs"
	case Nanoseconds:
		return "ns"
	default:
		return "?"
	}
}

func (u Unit) divisor() float64 {
	switch u {
	case Seconds:
		return float64(time.Second)
	case Milliseconds:
		return float64(time.Millisecond)
	case Microseconds:
		return float64(time.Microsecond)
	default:
		return 1
	}
}

// Value is a duration expressed in a Unit, either as a whole number or as a
// rounded float.
type Value struct {
	Unit    Unit
	Int     int64
	Float   float64
	IsFloat bool
}

// Number returns the value as a float regardless of its kind.
func (v Value) Number() float64 {
	if v.IsFloat {
		return v.Float
	}
	return float64(v.Int)
}

// String formats the value followed by its unit, e.g. "12ms" or "1.5s".
func (v Value) String() string {
	if v.IsFloat {
		return strconv.FormatFloat(v.Float, 'f', -1, 64) + v.Unit.String()
	}
	return strconv.FormatInt(v.Int, 10) + v.Unit.String()
}

// OptimalUnit picks the largest unit in which d is at least one.
func OptimalUnit(d time.Duration) Unit {
	switch {
	case d >= time.Second:
		return Seconds
	case d >= time.Millisecond:
		return Milliseconds
	case d >= time.Microsecond:
		return Microseconds
	default:
		return Nanoseconds
	}
}

// In converts d to a whole number of unit, truncating.
func In(d time.Duration, unit Unit) Value {
	return Value{Unit: unit, Int: int64(float64(d) / unit.divisor())}
}

// InFloat converts d to unit and rounds to precision decimals.
func InFloat(d time.Duration, unit Unit, precision int) Value {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return Value{
		Unit:    unit,
		Float:   Round(float64(d)/unit.divisor(), precision),
		IsFloat: true,
	}
}

// Convert expresses d as a whole number in its optimal unit.
func Convert(d time.Duration) Value {
	return In(d, OptimalUnit(d))
}

// ConvertFloat expresses d in its optimal unit, rounded to precision
// decimals.
func ConvertFloat(d time.Duration, precision int) Value {
	return InFloat(d, OptimalUnit(d), precision)
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
