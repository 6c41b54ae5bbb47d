package analytics

import (
	"context"
	"log/slog"

	"github.com/mr1hm/go-health-hotspots/internal/worker"
)

type Paths struct {
	DiseaseData      string
	NormalSymptoms   string
	HistoricalCases  string
	AnomalyThreshold int
}

// Models holds whichever collaborators trained successfully; a nil field
// means that endpoint is unavailable.
type Models struct {
	Symptoms *SymptomModel
	Anomaly  *AnomalyDetector
	Forecast *Forecaster
}

type trainJob struct {
	name string
	path string
	run  func() error
}

// Train fits every model concurrently. Failures are logged and leave the
// corresponding field nil; Train itself never fails.
func Train(ctx context.Context, paths Paths) Models {
	var m Models

	jobs := []trainJob{
		{name: "symptom", path: paths.DiseaseData, run: func() (err error) {
			m.Symptoms, err = LoadSymptomModel(paths.DiseaseData)
			return err
		}},
		{name: "anomaly", path: paths.NormalSymptoms, run: func() (err error) {
			m.Anomaly, err = LoadAnomalyDetector(paths.NormalSymptoms, paths.AnomalyThreshold)
			return err
		}},
		{name: "forecast", path: paths.HistoricalCases, run: func() (err error) {
			m.Forecast, err = LoadForecaster(paths.HistoricalCases)
			return err
		}},
	}

	pool := worker.NewPool(len(jobs), len(jobs), func(ctx context.Context, job trainJob) error {
		if job.path == "" {
			slog.Info("model disabled, no training data configured", "model", job.name)
			return nil
		}
		if err := job.run(); err != nil {
			slog.Warn("could not train model", "model", job.name, "path", job.path, "error", err)
			return err
		}
		slog.Info("model trained", "model", job.name, "path", job.path)
		return nil
	})
	pool.Start(ctx)
	for _, j := range jobs {
		pool.Submit(j)
	}
	if err := pool.Stop(); err != nil {
		slog.Debug("some models unavailable", "error", err)
	}

	return m
}
