package record

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/daylog/internal/level"
)

// msValuer stands in for a stopwatch attached to an event.
type msValuer float64

func (m msValuer) LogValue() slog.Value { return slog.Float64Value(float64(m)) }

func TestKindOf(t *testing.T) {
	tests := []struct {
		key      string
		expected Kind
	}{
		{"category", KindCategory},
		{"cat", KindCategory},
		{"message", KindMessage},
		{"msg", KindMessage},
		{"ms", KindElapsed},
		{"stopwatch", KindElapsed},
		{"error", KindError},
		{"err", KindError},
		{"user", KindNone},
		{"Category", KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.key))
		})
	}
}

func TestFields_Set(t *testing.T) {
	var f Fields

	assert.True(t, f.Set(slog.String("cat", "db")))
	assert.True(t, f.Set(slog.String("msg", "conn failed")))
	assert.True(t, f.Set(slog.Any("err", errors.New("refused"))))
	assert.False(t, f.Set(slog.Int("attempt", 3)))

	require.NotNil(t, f.Category)
	assert.Equal(t, "DB", *f.Category)
	assert.Equal(t, "conn failed", *f.Message)
	assert.Equal(t, "refused", *f.Error)
	assert.Nil(t, f.Elapsed)
}

func TestFields_SetElapsed(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected float64
		ok       bool
	}{
		{"float", slog.Float64("ms", 12.5), 12.5, true},
		{"int", slog.Int("ms", 7), 7, true},
		{"uint", slog.Uint64("ms", 9), 9, true},
		{"duration", slog.Duration("stopwatch", 1500*time.Microsecond), 1.5, true},
		{"string", slog.String("ms", "3.25"), 3.25, true},
		{"string with unit", slog.String("ms", "4 ms"), 4, true},
		{"valuer", slog.Any("stopwatch", msValuer(2.5)), 2.5, true},
		{"garbage", slog.String("ms", "soon"), 0, false},
		{"bool", slog.Bool("ms", true), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Fields
			assert.Equal(t, tt.ok, f.Set(tt.attr))
			if tt.ok {
				require.NotNil(t, f.Elapsed)
				assert.InDelta(t, tt.expected, *f.Elapsed, 1e-9)
			} else {
				assert.Nil(t, f.Elapsed)
			}
		})
	}
}

func TestFields_Merge(t *testing.T) {
	base := Fields{Category: String("OLD"), Message: String("kept")}
	base.Merge(Fields{Category: String("NEW"), Elapsed: Float(1)})

	assert.Equal(t, "NEW", *base.Category)
	assert.Equal(t, "kept", *base.Message)
	assert.Equal(t, 1.0, *base.Elapsed)
	assert.Nil(t, base.Error)
}

func TestNewEntry(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 59, 59, 500*int(time.Millisecond), time.UTC)
	e := NewEntry(ts, level.Error, Fields{Category: String("DB"), Message: String("conn failed")})

	assert.Equal(t, ts.UnixMilli(), e.Timestamp)
	assert.Equal(t, level.Error, e.Level)
	assert.Equal(t, "20240309", e.Day())
	assert.True(t, e.Time().Equal(ts))
	assert.Equal(t, "DB", Deref(e.Category))
	assert.Equal(t, "", Deref(e.Error))
}

func TestDayOf_UsesUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2024, 1, 2, 1, 0, 0, 0, zone)

	assert.Equal(t, "20240101", DayOf(local))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("20240229")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("2024-02-29")
	assert.Error(t, err)
}

func TestEntry_JSON(t *testing.T) {
	e := Entry{Timestamp: 1700000000000, Level: level.Error, Category: String("DB"), Message: String("conn failed")}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"timestamp":1700000000000,"level":"error","category":"DB","message":"conn failed","error":null,"ms":null}`,
		string(data))

	var decoded Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, e, decoded)
}
