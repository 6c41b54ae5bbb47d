package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mr1hm/go-health-hotspots/internal/models"
	"github.com/mr1hm/go-health-hotspots/internal/repository"
)

type Loader struct {
	name   string
	source repository.HospitalSource
	now    func() time.Time
}

func NewLoader(name string, source repository.HospitalSource) *Loader {
	return &Loader{
		name:   name,
		source: source,
		now:    time.Now,
	}
}

// Load reads the source and drops rows whose coordinates cannot be used.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := l.source.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading hospitals from %s: %w", l.name, err)
	}

	kept := make([]models.Hospital, 0, len(rows))
	for i := range rows {
		if _, err := rows[i].Coordinates(); err != nil {
			slog.Debug("dropping hospital row", "source", l.name, "index", i, "error", err)
			continue
		}
		kept = append(kept, rows[i])
	}

	snap := &Snapshot{
		Hospitals: kept,
		Source:    l.name,
		LoadedAt:  l.now(),
		Dropped:   len(rows) - len(kept),
	}
	slog.Info("loaded hospitals", "source", l.name, "count", len(kept), "dropped", snap.Dropped)
	return snap, nil
}

// LoadOrEmpty never fails: a load error is logged and an empty snapshot
// returned, so the process can still start.
func (l *Loader) LoadOrEmpty(ctx context.Context) *Snapshot {
	snap, err := l.Load(ctx)
	if err != nil {
		slog.Error("failed to load hospitals, serving empty dataset", "source", l.name, "error", err)
		return &Snapshot{Source: l.name, LoadedAt: l.now()}
	}
	return snap
}
