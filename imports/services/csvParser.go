package services

import (
	"encoding/csv"
	"errors"
	"strings"
)

// ErrMalformedInput is returned when the uploaded text has no header row
// followed by at least one data line.
var ErrMalformedInput = errors.New("No valid data found in file.")

// ImportRow is one parsed CSV line keyed by header name. Rows are ephemeral:
// they exist only between parsing and transformation.
type ImportRow map[string]string

// Get looks a column up case-insensitively, so "Email" and "email" headers
// behave identically. The returned value is whitespace-trimmed.
func (r ImportRow) Get(key string) string {
	if v, ok := r[key]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ParseCSV parses CSV text into rows keyed by the header line. The header's
// column names are trimmed; every subsequent non-empty line becomes one row
// unless its field count differs from the header's, in which case the line is
// silently dropped. Quoted fields lose their surrounding quotes. The whole
// input is materialized in memory; batches are hundreds of rows, not millions.
func ParseCSV(text string) ([]ImportRow, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.TrimPrefix(text, "\uFEFF"), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, ErrMalformedInput
	}

	header, err := parseLine(lines[0])
	if err != nil {
		return nil, ErrMalformedInput
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]ImportRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields, err := parseLine(line)
		if err != nil || len(fields) != len(header) {
			// Structurally invalid line; drop it and keep going.
			continue
		}
		row := make(ImportRow, len(header))
		for i, key := range header {
			row[key] = fields[i]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.TrimLeadingSpace = true
	return r.Read()
}
