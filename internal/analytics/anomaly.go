package analytics

import (
	"fmt"
	"io"
	"os"
)

const DefaultAnomalyThreshold = 2

// AnomalyDetector flags symptom sets that differ from every known normal
// profile in more than threshold positions.
type AnomalyDetector struct {
	columns   []string
	rows      [][]bool
	threshold int
}

func LoadAnomalyDetector(path string, threshold int) (*AnomalyDetector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening normal symptoms: %w", err)
	}
	defer f.Close()
	return ParseAnomalyDetector(f, threshold)
}

func ParseAnomalyDetector(r io.Reader, threshold int) (*AnomalyDetector, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if threshold < 0 {
		threshold = DefaultAnomalyThreshold
	}

	d := &AnomalyDetector{columns: header, threshold: threshold}
	for _, rec := range records {
		row := make([]bool, len(header))
		for i := range header {
			if i < len(rec) {
				row[i] = flag(rec[i])
			}
		}
		d.rows = append(d.rows, row)
	}
	if len(d.rows) == 0 {
		return nil, ErrNoRows
	}
	return d, nil
}

func (d *AnomalyDetector) IsAnomaly(symptoms []string) bool {
	_, dist := nearest(d.rows, encode(d.columns, symptoms))
	return dist > d.threshold
}
