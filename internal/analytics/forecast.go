package analytics

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	ForecastHorizon = 7
)

type ForecastPoint struct {
	DS   string  `json:"ds"`
	YHat float64 `json:"yhat"`
}

// Forecaster extrapolates daily case counts with a least-squares line.
type Forecaster struct {
	last      time.Time
	first     time.Time
	intercept float64
	slope     float64
}

func LoadForecaster(path string) (*Forecaster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening historical cases: %w", err)
	}
	defer f.Close()
	return ParseForecaster(f)
}

// ParseForecaster reads "ds" (date) and "y" (count) columns. Rows that do
// not parse are skipped.
func ParseForecaster(r io.Reader) (*Forecaster, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	dsIdx, yIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(h) {
		case "ds":
			dsIdx = i
		case "y":
			yIdx = i
		}
	}
	if dsIdx == -1 || yIdx == -1 {
		return nil, fmt.Errorf("%w: ds, y", ErrMissingCols)
	}

	type point struct {
		t time.Time
		y float64
	}
	var points []point
	for _, rec := range records {
		if dsIdx >= len(rec) || yIdx >= len(rec) {
			continue
		}
		t, err := parseDate(rec[dsIdx])
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[yIdx]), 64)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, point{t: t, y: y})
	}
	if len(points) == 0 {
		return nil, ErrNoRows
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].t.Before(points[j].t) })

	f := &Forecaster{first: points[0].t, last: points[len(points)-1].t}
	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(points))
	for _, p := range points {
		x := f.days(p.t)
		sumX += x
		sumY += p.y
		sumXY += x * p.y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom != 0 {
		f.slope = (n*sumXY - sumX*sumY) / denom
	}
	f.intercept = (sumY - f.slope*sumX) / n
	return f, nil
}

// Forecast returns one point per day for the periods days after the last
// observation.
func (f *Forecaster) Forecast(periods int) []ForecastPoint {
	out := make([]ForecastPoint, 0, periods)
	for i := 1; i <= periods; i++ {
		t := f.last.AddDate(0, 0, i)
		out = append(out, ForecastPoint{
			DS:   t.Format(DateLayout),
			YHat: f.intercept + f.slope*f.days(t),
		})
	}
	return out
}

func (f *Forecaster) days(t time.Time) float64 {
	return t.Sub(f.first).Hours() / 24
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
