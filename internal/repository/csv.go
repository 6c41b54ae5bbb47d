package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

// Column names of the hospitals CSV.
const (
	ColName          = "hospital_name"
	ColType          = "type"
	ColLat           = "lat"
	ColLon           = "lon"
	ColICUBeds       = "icu_beds_available"
	ColEmergencyBeds = "emergency_beds_available"
	ColAmbulances    = "ambulances_available"
)

var hospitalColumns = []string{ColName, ColType, ColLat, ColLon, ColICUBeds, ColEmergencyBeds, ColAmbulances}

type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("error opening hospitals csv: %w", err)
	}
	defer f.Close()

	return ParseHospitalsCSV(f)
}

func (s *CSVSource) Close() error {
	return nil
}

// ParseHospitalsCSV reads hospitals from r. Header names are trimmed;
// missing columns are logged and read as absent values. Capacity counters
// that are not numbers become nil. Coordinates are kept as raw text.
func ParseHospitalsCSV(r io.Reader) ([]models.Hospital, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range hospitalColumns {
		if _, ok := index[col]; !ok {
			slog.Warn("hospitals csv missing column, treating as empty", "column", col)
		}
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var hospitals []models.Hospital
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv line %d: %w", line, err)
		}

		hospitals = append(hospitals, models.Hospital{
			Name:                   field(row, ColName),
			Type:                   field(row, ColType),
			Latitude:               models.RawCoord(field(row, ColLat)),
			Longitude:              models.RawCoord(field(row, ColLon)),
			ICUBedsAvailable:       parseCount(field(row, ColICUBeds)),
			EmergencyBedsAvailable: parseCount(field(row, ColEmergencyBeds)),
			AmbulancesAvailable:    parseCount(field(row, ColAmbulances)),
		})
	}

	return hospitals, nil
}

// parseCount accepts integers and integral-looking floats ("5.0").
// Fractions are truncated. Anything else is absent.
func parseCount(s string) *int {
	if s == "" {
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return &i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	i := int(f)
	return &i
}
