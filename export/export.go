package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// EXPORT SERIALIZER — Byte-correct CSV / JSON download artifacts
// ============================================================================
// CSV: UTF-8 BOM, CRLF row separators, RFC 4180 escaping, no trailing
// separator. JSON: metadata envelope, 2-space pretty print. The serializer
// builds bytes only — delivery (browser download, file write) is the
// caller's concern.
//
// Records are assumed flat and JSON-serializable. Non-serializable field
// types are a programmer error upstream — not handled defensively.
// ============================================================================

// MIME types of the produced artifacts.
const (
	MIMECSV  = "text/csv;charset=utf-8"
	MIMEJSON = "application/json"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Field is one key/value pair of a Record. Records are ordered field lists
// rather than maps so header order is deterministic.
type Field struct {
	Key   string
	Value any
}

// Record is a flat, ordered export record.
type Record []Field

// MarshalJSON emits the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value for key, nil when absent.
func (r Record) Get(key string) any {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Options configure an export.
type Options struct {
	Product string         // product name, used in filenames and envelopes
	Page    string         // page id the export came from
	Columns []string       // explicit CSV header; empty → first record's keys
	Meta    map[string]any // extra envelope fields (JSON only)
	Now     time.Time      // export moment; zero → time.Now().UTC()
}

func (o Options) at() time.Time {
	if o.Now.IsZero() {
		return time.Now().UTC()
	}
	return o.Now
}

// Artifact is a named byte blob ready for an external download mechanism.
type Artifact struct {
	Name string
	MIME string
	Data []byte
}

// ============================================================================
// CSV
// ============================================================================

// CSV serializes records as RFC 4180 CSV with a UTF-8 BOM and CRLF rows.
// Returns nil for an empty record list — export is a no-op, nothing is
// created or downloaded.
func CSV(records []Record, opts Options) *Artifact {
	if len(records) == 0 {
		return nil
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = make([]string, 0, len(records[0]))
		for _, f := range records[0] {
			columns = append(columns, f.Key)
		}
	}

	var buf bytes.Buffer
	buf.Write(bom)

	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escapeCSV(col))
	}

	for _, rec := range records {
		buf.WriteString("\r\n")
		for i, col := range columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(escapeCSV(stringify(rec.Get(col))))
		}
	}

	return &Artifact{
		Name: Filename(opts.Product, opts.Page, "csv", opts.at()),
		MIME: MIMECSV,
		Data: buf.Bytes(),
	}
}

// escapeCSV applies RFC 4180 quoting: a field containing a comma, double
// quote, or newline is wrapped in double quotes with internal quotes doubled.
func escapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// stringify renders a CSV cell. nil renders as the empty string — the
// "not applicable" marker, distinct from a real zero.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case *float64:
		if t == nil {
			return ""
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// ============================================================================
// JSON
// ============================================================================

// JSON serializes records inside a metadata envelope, pretty-printed with
// 2-space indentation. Unlike CSV, an empty record list still produces a
// full envelope with record_count 0 and data [].
func JSON(records []Record, opts Options) (*Artifact, error) {
	if records == nil {
		records = []Record{}
	}
	at := opts.at()

	envelope := make(map[string]any, len(opts.Meta)+5)
	for k, v := range opts.Meta {
		envelope[k] = v
	}
	// Core fields win over colliding metadata keys.
	envelope["exported_at"] = at.Format(time.RFC3339)
	envelope["source"] = opts.Product
	envelope["page"] = opts.Page
	envelope["record_count"] = len(records)
	envelope["data"] = records

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export envelope: %w", err)
	}

	return &Artifact{
		Name: Filename(opts.Product, opts.Page, "json", at),
		MIME: MIMEJSON,
		Data: data,
	}, nil
}

// ============================================================================
// FILE NAMING
// ============================================================================

// Filename builds "<product>-<page>-<YYYY-MM-DD>.<ext>" from the moment of
// export, zero-padded.
func Filename(product, page, ext string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s.%s", product, page, at.Format("2006-01-02"), ext)
}
