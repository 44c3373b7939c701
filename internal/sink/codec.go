package sink

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tungetti/daylog/internal/level"
	"github.com/tungetti/daylog/internal/record"
)

// Format names a day-file encoding.
type Format string

const (
	// FormatJSON stores {"logs": [...]} pretty-printed with two spaces.
	FormatJSON Format = "json"
	// FormatCSV stores a header row followed by one row per entry.
	FormatCSV Format = "csv"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown file format %q", s)
	}
}

// Codec encodes and decodes the full content of a day file.
type Codec interface {
	// Ext is the file extension without the dot.
	Ext() string
	Encode(entries []record.Entry) ([]byte, error)
	// Decode parses non-empty file content.
	Decode(data []byte) ([]record.Entry, error)
}

// CodecFor returns the codec of f.
func CodecFor(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return JSONCodec{}, nil
	case FormatCSV:
		return CSVCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown file format %q", string(f))
	}
}

// JSONCodec is the default day-file encoding.
type JSONCodec struct{}

type jsonFile struct {
	Logs []record.Entry `json:"logs"`
}

// Ext implements Codec.
func (JSONCodec) Ext() string { return "json" }

// Encode implements Codec.
func (JSONCodec) Encode(entries []record.Entry) ([]byte, error) {
	if entries == nil {
		entries = []record.Entry{}
	}
	return json.MarshalIndent(jsonFile{Logs: entries}, "", "  ")
}

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) ([]record.Entry, error) {
	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Logs, nil
}

// CSVCodec stores entries as comma-separated rows. Absent values are empty
// cells, so an empty string decodes as absent: unlike JSON, CSV does not
// keep "" apart from null.
type CSVCodec struct{}

var csvHeader = []string{"timestamp", "level", "category", "message", "error", "ms"}

// Ext implements Codec.
func (CSVCodec) Ext() string { return "csv" }

// Encode implements Codec.
func (CSVCodec) Encode(entries []record.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		ms := ""
		if e.Elapsed != nil {
			ms = strconv.FormatFloat(*e.Elapsed, 'f', -1, 64)
		}
		row := []string{
			strconv.FormatInt(e.Timestamp, 10),
			e.Level.String(),
			record.Deref(e.Category),
			record.Deref(e.Message),
			record.Deref(e.Error),
			ms,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode implements Codec.
func (CSVCodec) Decode(data []byte) ([]record.Entry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if rows[0][0] != csvHeader[0] {
		return nil, fmt.Errorf("missing csv header")
	}

	entries := make([]record.Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		e, err := csvEntry(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func csvEntry(row []string) (record.Entry, error) {
	ts, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return record.Entry{}, fmt.Errorf("invalid timestamp %q", row[0])
	}
	lv, ok := level.Parse(row[1])
	if !ok {
		return record.Entry{}, fmt.Errorf("invalid level %q", row[1])
	}
	e := record.Entry{
		Timestamp: ts,
		Level:     lv,
		Category:  optional(row[2]),
		Message:   optional(row[3]),
		Error:     optional(row[4]),
	}
	if row[5] != "" {
		ms, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return record.Entry{}, fmt.Errorf("invalid ms %q", row[5])
		}
		e.Elapsed = record.Float(ms)
	}
	return e, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return record.String(s)
}
