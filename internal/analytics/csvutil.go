// Package analytics holds the small statistical collaborators behind the
// prediction, anomaly, forecast and water-quality endpoints.
package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrNoRows      = errors.New("no training rows")
	ErrMissingCols = errors.New("missing required column")
)

func readAll(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrNoRows
	}
	header = make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return header, records[1:], nil
}

// flag reads a 0/1 cell; any non-zero number is set.
func flag(cell string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	return err == nil && f != 0
}

// encode builds a presence vector over columns from symptom names,
// compared case-insensitively. Unknown symptoms are ignored.
func encode(columns []string, symptoms []string) []bool {
	vec := make([]bool, len(columns))
	for _, s := range symptoms {
		s = strings.TrimSpace(s)
		for i, c := range columns {
			if strings.EqualFold(c, s) {
				vec[i] = true
				break
			}
		}
	}
	return vec
}

func hamming(a, b []bool) int {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// nearest returns the index of the row closest to vec; the first row wins ties.
func nearest(rows [][]bool, vec []bool) (int, int) {
	best, bestDist := -1, 0
	for i, row := range rows {
		d := hamming(row, vec)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
