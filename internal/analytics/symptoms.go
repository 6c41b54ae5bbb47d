package analytics

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const DiseaseColumn = "disease"

// SymptomModel predicts a disease from reported symptoms using the label of
// the nearest training row.
type SymptomModel struct {
	symptoms []string
	rows     [][]bool
	labels   []string
}

func LoadSymptomModel(path string) (*SymptomModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening disease data: %w", err)
	}
	defer f.Close()
	return ParseSymptomModel(f)
}

// ParseSymptomModel reads 0/1 symptom columns plus a "disease" label column.
func ParseSymptomModel(r io.Reader) (*SymptomModel, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	labelIdx := -1
	var symptomIdx []int
	m := &SymptomModel{}
	for i, h := range header {
		if strings.EqualFold(h, DiseaseColumn) {
			labelIdx = i
			continue
		}
		symptomIdx = append(symptomIdx, i)
		m.symptoms = append(m.symptoms, h)
	}
	if labelIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrMissingCols, DiseaseColumn)
	}

	for _, rec := range records {
		if labelIdx >= len(rec) {
			continue
		}
		row := make([]bool, len(symptomIdx))
		for j, idx := range symptomIdx {
			if idx < len(rec) {
				row[j] = flag(rec[idx])
			}
		}
		m.rows = append(m.rows, row)
		m.labels = append(m.labels, strings.TrimSpace(rec[labelIdx]))
	}
	if len(m.rows) == 0 {
		return nil, ErrNoRows
	}
	return m, nil
}

// Symptoms returns the known symptom names in column order.
func (m *SymptomModel) Symptoms() []string {
	out := make([]string, len(m.symptoms))
	copy(out, m.symptoms)
	return out
}

func (m *SymptomModel) Predict(symptoms []string) string {
	idx, _ := nearest(m.rows, encode(m.symptoms, symptoms))
	return m.labels[idx]
}
