package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/usagelens/usagelens/engine"
)

// ============================================================================
// ROWSET HELPERS — Load RowSets from CSV for the CLI and tests
// ============================================================================
// The aggregation API is the canonical RowSet source; this helper exists so
// exported aggregation results (or fixtures) can be fed back through the
// engine offline. Column layout: group,value or group,split,value, with an
// optional header row.
// ============================================================================

// ParseRowsCSV parses CSV bytes into a RowSet for the named metric.
// The key universes are derived from the data, since an offline file has
// no authoritative metadata from the API.
func ParseRowsCSV(data []byte, metric, groupBy, splitBy string) (*engine.RowSet, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	hasSplit := splitBy != ""
	rs := &engine.RowSet{
		Metadata: engine.RowSetMetadata{
			Metric:  metric,
			GroupBy: groupBy,
			SplitBy: splitBy,
		},
	}

	groupSeen := make(map[string]bool)
	splitSeen := make(map[string]bool)
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		want := 2
		if hasSplit {
			want = 3
		}
		if len(record) < want {
			return nil, fmt.Errorf("csv row has %d fields, want %d", len(record), want)
		}

		valueField := strings.TrimSpace(record[want-1])
		value, err := strconv.ParseFloat(valueField, 64)
		if err != nil {
			if first {
				// Header row.
				first = false
				continue
			}
			return nil, fmt.Errorf("parse value %q: %w", valueField, err)
		}
		first = false

		row := engine.Row{
			Group: strings.TrimSpace(record[0]),
			Value: value,
		}
		if hasSplit {
			row.Split = strings.TrimSpace(record[1])
		}
		rs.Rows = append(rs.Rows, row)
		rs.Metadata.Total += value

		if !groupSeen[row.Group] {
			groupSeen[row.Group] = true
			rs.Metadata.Groups = append(rs.Metadata.Groups, row.Group)
		}
		if hasSplit && !splitSeen[row.Split] {
			splitSeen[row.Split] = true
			rs.Metadata.Splits = append(rs.Metadata.Splits, row.Split)
		}
	}

	rs.Metadata.RowCount = len(rs.Rows)
	return rs, nil
}
