package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
	ReloadEmpty   = "empty"
)

// ReloadObserver receives reload results. *metrics.Metrics satisfies it.
type ReloadObserver interface {
	IncDatasetReload(status string)
	SetDatasetSize(n int)
}

// Reloader periodically reloads the dataset and swaps it into the store.
// A failed or empty load keeps the current snapshot.
type Reloader struct {
	loader   *Loader
	store    *Store
	interval time.Duration
	observer ReloadObserver
	wg       sync.WaitGroup
}

func NewReloader(loader *Loader, store *Store, interval time.Duration, observer ReloadObserver) *Reloader {
	return &Reloader{
		loader:   loader,
		store:    store,
		interval: interval,
		observer: observer,
	}
}

func (r *Reloader) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.run(ctx)
}

func (r *Reloader) run(ctx context.Context) {
	defer r.wg.Done()
	slog.Info("starting dataset reloader", "source", r.loader.name, "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("dataset reloader shutting down", "source", r.loader.name)
			return
		case <-ticker.C:
			r.Reload(ctx)
		}
	}
}

// Reload performs one reload and reports whether the store was updated.
func (r *Reloader) Reload(ctx context.Context) bool {
	snap, err := r.loader.Load(ctx)
	switch {
	case err != nil:
		slog.Error("dataset reload failed, keeping current snapshot", "source", r.loader.name, "error", err)
		r.observe(ReloadFailure, -1)
		return false
	case snap.Empty():
		slog.Warn("dataset reload returned no hospitals, keeping current snapshot", "source", r.loader.name)
		r.observe(ReloadEmpty, -1)
		return false
	}

	prev := r.store.Swap(snap)
	slog.Info("dataset reloaded", "source", r.loader.name, "previous", prev.Len(), "current", snap.Len())
	r.observe(ReloadSuccess, snap.Len())
	return true
}

// Stop waits for the reload goroutine; cancel the context passed to Start first.
func (r *Reloader) Stop() {
	r.wg.Wait()
	slog.Info("dataset reloader stopped")
}

func (r *Reloader) observe(status string, size int) {
	if r.observer == nil {
		return
	}
	r.observer.IncDatasetReload(status)
	if size >= 0 {
		r.observer.SetDatasetSize(size)
	}
}
