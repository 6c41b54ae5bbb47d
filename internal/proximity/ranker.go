package proximity

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

var ErrUndefinedDistance = errors.New("distance undefined")

// Ranked is a hospital within the search radius. Position is 1-based in
// ascending distance order.
type Ranked struct {
	Hospital   models.Hospital
	DistanceKm float64
	Position   int
}

// Skipped is a record whose distance could not be computed.
type Skipped struct {
	Index    int
	Hospital models.Hospital
	Reason   error
}

// Outcome splits the input records into ranked results, defective records
// and a count of valid records that fell outside the radius.
type Outcome struct {
	Results    []Ranked
	Skipped    []Skipped
	OutOfRange int
}

func (o Outcome) Empty() bool {
	return len(o.Results) == 0
}

type Option func(*Ranker)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) {
		r.logger = logger
	}
}

// Observer receives per-call counts from Rank.
type Observer interface {
	AddSkippedRecords(n int)
	ObserveRankedResults(n int)
}

func WithObserver(o Observer) Option {
	return func(r *Ranker) {
		r.observer = o
	}
}

type Ranker struct {
	logger   *slog.Logger
	observer Observer
}

func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Measure returns the distance from origin to the record, or an error when
// the record's coordinates are unusable.
func Measure(origin models.Coordinates, h *models.Hospital) (float64, error) {
	coords, err := h.Coordinates()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUndefinedDistance, err)
	}
	d := Distance(origin, coords)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: computed %v", ErrUndefinedDistance, d)
	}
	return d, nil
}

// Rank keeps the records within radiusKm of origin, sorted by distance with
// ties left in input order. Records with bad coordinates are logged and
// reported in Outcome.Skipped. records is never modified.
func (r *Ranker) Rank(origin models.Coordinates, records []models.Hospital, radiusKm float64) Outcome {
	var out Outcome

	for i := range records {
		d, err := Measure(origin, &records[i])
		if err != nil {
			r.logger.Warn("skipping hospital record", "index", i, "error", err, "record", records[i])
			out.Skipped = append(out.Skipped, Skipped{Index: i, Hospital: records[i], Reason: err})
			continue
		}
		if !(d <= radiusKm) {
			out.OutOfRange++
			continue
		}
		out.Results = append(out.Results, Ranked{Hospital: records[i], DistanceKm: d})
	}

	sort.SliceStable(out.Results, func(i, j int) bool {
		return out.Results[i].DistanceKm < out.Results[j].DistanceKm
	})
	for i := range out.Results {
		out.Results[i].Position = i + 1
	}

	if r.observer != nil {
		r.observer.AddSkippedRecords(len(out.Skipped))
		r.observer.ObserveRankedResults(len(out.Results))
	}

	return out
}
