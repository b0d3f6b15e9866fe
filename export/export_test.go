package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// EXPORT SERIALIZER TESTS — byte-exact artifacts
// ============================================================================

var exportedAt = time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

func TestCSVRoundTrip(t *testing.T) {
	records := []Record{
		{{Key: "a", Value: `hello, "world"`}, {Key: "b", Value: nil}},
	}

	artifact := CSV(records, Options{Product: "usagelens", Page: "explorer", Now: exportedAt})
	require.NotNil(t, artifact)

	require.True(t, bytes.HasPrefix(artifact.Data, []byte{0xEF, 0xBB, 0xBF}), "output starts with a UTF-8 BOM")
	body := bytes.TrimPrefix(artifact.Data, []byte{0xEF, 0xBB, 0xBF})
	assert.Equal(t, "a,b\r\n\"hello, \"\"world\"\"\",", string(body))
}

func TestCSVNoTrailingSeparator(t *testing.T) {
	records := []Record{
		{{Key: "x", Value: 1.0}},
		{{Key: "x", Value: 2.0}},
	}

	artifact := CSV(records, Options{Product: "usagelens", Page: "lab", Now: exportedAt})
	require.NotNil(t, artifact)
	assert.False(t, bytes.HasSuffix(artifact.Data, []byte("\r\n")), "no trailing row separator")
	assert.Equal(t, 2, bytes.Count(artifact.Data, []byte("\r\n")), "CRLF between rows only")
}

func TestCSVExplicitColumns(t *testing.T) {
	records := []Record{
		{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}},
	}

	artifact := CSV(records, Options{Columns: []string{"a", "b"}, Now: exportedAt})
	require.NotNil(t, artifact)
	body := bytes.TrimPrefix(artifact.Data, []byte{0xEF, 0xBB, 0xBF})
	assert.Equal(t, "a,b\r\n1,2", string(body))
}

func TestCSVValueFormatting(t *testing.T) {
	ratio := 2.5
	records := []Record{{
		{Key: "f", Value: 12.5},
		{Key: "whole", Value: 3.0},
		{Key: "ptr", Value: &ratio},
		{Key: "none", Value: (*float64)(nil)},
		{Key: "flag", Value: true},
		{Key: "newline", Value: "a\nb"},
	}}

	artifact := CSV(records, Options{Now: exportedAt})
	require.NotNil(t, artifact)
	body := bytes.TrimPrefix(artifact.Data, []byte{0xEF, 0xBB, 0xBF})
	lines := bytes.SplitN(body, []byte("\r\n"), 2)
	require.Len(t, lines, 2)
	assert.Equal(t, "12.5,3,2.5,,true,\"a\nb\"", string(lines[1]),
		"floats trim trailing zeros, nil renders empty, newlines quote")
}

func TestCSVEmptyIsNoOp(t *testing.T) {
	assert.Nil(t, CSV(nil, Options{Product: "usagelens", Page: "explorer"}))
	assert.Nil(t, CSV([]Record{}, Options{Product: "usagelens", Page: "explorer"}))
}

func TestCSVMIMEAndName(t *testing.T) {
	artifact := CSV([]Record{{{Key: "a", Value: "1"}}},
		Options{Product: "usagelens", Page: "productivity", Now: exportedAt})
	require.NotNil(t, artifact)
	assert.Equal(t, MIMECSV, artifact.MIME)
	assert.Equal(t, "usagelens-productivity-2026-08-30.csv", artifact.Name)
}

func TestJSONEnvelopeEmpty(t *testing.T) {
	artifact, err := JSON(nil, Options{Product: "usagelens", Page: "explorer", Now: exportedAt})
	require.NoError(t, err)
	assert.Equal(t, MIMEJSON, artifact.MIME)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(artifact.Data, &envelope))

	assert.Equal(t, float64(0), envelope["record_count"])
	assert.Equal(t, "usagelens", envelope["source"])
	assert.Equal(t, "explorer", envelope["page"])

	data, ok := envelope["data"].([]any)
	require.True(t, ok, "data is present even when empty")
	assert.Empty(t, data)

	at, ok := envelope["exported_at"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339, at)
	require.NoError(t, err)
	assert.Equal(t, at, parsed.Format(time.RFC3339), "timestamp round-trips to the identical string")
}

func TestJSONEnvelopeRecordsAndMeta(t *testing.T) {
	records := []Record{
		{{Key: "model", Value: "opus"}, {Key: "cost", Value: 1.25}},
	}
	artifact, err := JSON(records, Options{
		Product: "usagelens",
		Page:    "comparison",
		Now:     exportedAt,
		Meta:    map[string]any{"metric": "cost", "record_count": "tampered"},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("{\n  ")), "pretty-printed with 2-space indent")

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(artifact.Data, &envelope))
	assert.Equal(t, "cost", envelope["metric"], "metadata spreads into the envelope")
	assert.Equal(t, float64(1), envelope["record_count"], "core fields win over colliding metadata")

	data := envelope["data"].([]any)
	require.Len(t, data, 1)
	rec := data[0].(map[string]any)
	assert.Equal(t, "opus", rec["model"])
	assert.Equal(t, 1.25, rec["cost"])
}

func TestRecordJSONPreservesFieldOrder(t *testing.T) {
	rec := Record{{Key: "z", Value: 1}, {Key: "a", Value: 2}}
	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2}`, string(out))
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "usagelens-explorer-2026-01-05.json", Filename("usagelens", "explorer", "json", at),
		"date components are zero-padded")
}
