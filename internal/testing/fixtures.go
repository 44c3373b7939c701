package testing

import (
	"time"

	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
)

// ============================================================================
// Times
// ============================================================================

// Day1 is 2024-01-15 10:30:00 UTC.
var Day1 = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// Day1LastSecond is the final second of Day1's UTC day.
var Day1LastSecond = time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)

// Day2 is the UTC day after Day1, shortly after midnight.
var Day2 = time.Date(2024, 1, 16, 0, 0, 1, 0, time.UTC)

// Day1Bucket and Day2Bucket are the day buckets of Day1 and Day2.
const (
	Day1Bucket = "20240115"
	Day2Bucket = "20240116"
)

// ============================================================================
// Entries
// ============================================================================

// EntryAt returns an Info entry stamped with t carrying msg.
func EntryAt(t time.Time, msg string) record.Entry {
	return record.Entry{
		Timestamp: t.UnixMilli(),
		Level:     level.Info,
		Message:   record.String(msg),
	}
}

// SampleEntries returns one entry per level on the day of t, one second
// apart, exercising every optional field.
func SampleEntries(t time.Time) []record.Entry {
	return []record.Entry{
		{
			Timestamp: t.UnixMilli(),
			Level:     level.Error,
			Category:  record.String("DB"),
			Message:   record.String("conn failed"),
			Error:     record.String("dial tcp 127.0.0.1:5432: connection refused"),
		},
		{
			Timestamp: t.Add(time.Second).UnixMilli(),
			Level:     level.Warn,
			Category:  record.String("CACHE"),
			Message:   record.String("miss ratio high"),
		},
		{
			Timestamp: t.Add(2 * time.Second).UnixMilli(),
			Level:     level.Info,
			Message:   record.String("request served"),
			Elapsed:   record.Float(12.5),
		},
		{
			Timestamp: t.Add(3 * time.Second).UnixMilli(),
			Level:     level.Debug,
			Category:  record.String("HTTP"),
			Message:   record.String("headers, parsed \"ok\""),
		},
		{
			Timestamp: t.Add(4 * time.Second).UnixMilli(),
			Level:     level.Trace,
		},
	}
}

// ============================================================================
// Day-file content
// ============================================================================

// DayFileJSON is a valid JSON day file with two entries on 2023-11-14.
const DayFileJSON = `{
  "logs": [
    {
      "timestamp": 1700000000000,
      "level": "error",
      "category": "DB",
      "message": "conn failed",
      "error": null,
      "ms": null
    },
    {
      "timestamp": 1700000001000,
      "level": "info",
      "category": null,
      "message": "recovered",
      "error": null,
      "ms": 3.5
    }
  ]
}`

// DayFileCSV is DayFileJSON in the CSV layout.
const DayFileCSV = `timestamp,level,category,message,error,ms
1700000000000,error,DB,conn failed,,
1700000001000,info,,recovered,,3.5
`

// DayFileBucket is the day of DayFileJSON and DayFileCSV.
const DayFileBucket = "20231114"
