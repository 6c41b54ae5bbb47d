package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-health-hotspots/internal/analytics"
	"github.com/mr1hm/go-health-hotspots/internal/api"
	"github.com/mr1hm/go-health-hotspots/internal/config"
	"github.com/mr1hm/go-health-hotspots/internal/dataset"
	"github.com/mr1hm/go-health-hotspots/internal/hotspot"
	"github.com/mr1hm/go-health-hotspots/internal/logging"
	"github.com/mr1hm/go-health-hotspots/internal/metrics"
	"github.com/mr1hm/go-health-hotspots/internal/proximity"
	"github.com/mr1hm/go-health-hotspots/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logger := logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	registry, err := loadRegistry(cfg.Hotspots.File)
	if err != nil {
		logging.Fatalf("Failed to build hotspot registry: %v", err)
	}
	slog.Info("hotspot registry ready", "hotspots", registry.Len())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics()
	if err := m.Register(reg); err != nil {
		logging.Fatalf("Failed to register metrics: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, loader, closeSource := openDataset(ctx, cfg.Dataset.Path)
	defer closeSource()
	m.SetDatasetSize(store.Snapshot().Len())

	var reloader *dataset.Reloader
	if loader != nil && cfg.Dataset.ReloadInterval > 0 {
		reloader = dataset.NewReloader(loader, store, cfg.Dataset.ReloadInterval, m)
		reloader.Start(ctx)
	}

	models := analytics.Train(ctx, analytics.Paths{
		DiseaseData:      cfg.Models.DiseaseDataPath,
		NormalSymptoms:   cfg.Models.NormalSymptomsPath,
		HistoricalCases:  cfg.Models.HistoricalCasesPath,
		AnomalyThreshold: cfg.Models.AnomalyThreshold,
	})

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestID())
	router.Use(api.Recovery(logger))
	router.Use(api.RequestLogger(logger, m))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", api.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", api.RequestIDHeader},
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS, m))

	ranker := proximity.NewRanker(proximity.WithLogger(logger), proximity.WithObserver(m))
	handler := api.NewHandler(hotspot.NewResolver(registry), ranker, store, models, m)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	if reloader != nil {
		reloader.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}

// openDataset loads the hospitals at path into a new store. A source that
// cannot be opened is logged and leaves the store empty with a nil loader.
func openDataset(ctx context.Context, path string) (*dataset.Store, *dataset.Loader, func()) {
	source, err := repository.Open(path)
	if err != nil {
		slog.Error("failed to open hospitals dataset, serving empty dataset", "source", path, "error", err)
		return dataset.NewStore(nil), nil, func() {}
	}

	loader := dataset.NewLoader(path, source)
	store := dataset.NewStore(loader.LoadOrEmpty(ctx))
	return store, loader, func() {
		if err := source.Close(); err != nil {
			slog.Error("failed to close hospitals dataset", "source", path, "error", err)
		}
	}
}

func loadRegistry(path string) (*hotspot.Registry, error) {
	if path == "" {
		return hotspot.Default(), nil
	}
	hotspots, err := config.LoadHotspots(path)
	if err != nil {
		return nil, err
	}
	return hotspot.NewRegistry(hotspots)
}
