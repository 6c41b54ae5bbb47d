// Command hotspot-lookup resolves a location against the hotspot registry
// and prints the hospitals within range as JSON.
//
//	hotspot-lookup "sector 14, rewari"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-health-hotspots/internal/config"
	"github.com/mr1hm/go-health-hotspots/internal/dataset"
	"github.com/mr1hm/go-health-hotspots/internal/hotspot"
	"github.com/mr1hm/go-health-hotspots/internal/logging"
	"github.com/mr1hm/go-health-hotspots/internal/proximity"
	"github.com/mr1hm/go-health-hotspots/internal/repository"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 on lookup or dataset
// failure, 2 on bad usage or configuration.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Fatal while loading config: %v\n", err)
		return 2
	}
	// Logs go to stderr so stdout stays valid JSON.
	logger := logging.New(stderr, cfg.Logging.Level)

	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(stderr, "usage: hotspot-lookup <location>")
		return 2
	}

	registry := hotspot.Default()
	if cfg.Hotspots.File != "" {
		hotspots, err := config.LoadHotspots(cfg.Hotspots.File)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load hotspots: %v\n", err)
			return 2
		}
		if registry, err = hotspot.NewRegistry(hotspots); err != nil {
			fmt.Fprintf(stderr, "Invalid hotspots: %v\n", err)
			return 2
		}
	}

	res, ok := hotspot.NewResolver(registry).Resolve(query)
	if !ok {
		fmt.Fprintf(stderr, "Location '%s' not recognized. Try one of: %s\n", query, strings.Join(registry.Names(), ", "))
		return 1
	}

	source, err := repository.Open(cfg.Dataset.Path)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open hospitals dataset: %v\n", err)
		return 1
	}
	defer source.Close()

	snap := dataset.NewLoader(cfg.Dataset.Path, source).LoadOrEmpty(ctx)
	if snap.Empty() {
		fmt.Fprintln(stderr, "Hospitals dataset is empty or failed to load.")
		return 1
	}

	out := proximity.NewRanker(proximity.WithLogger(logger)).Rank(res.Hotspot.Coordinates, snap.Hospitals, proximity.DefaultRadiusKm)
	logger.Info("lookup complete",
		"query", query,
		"hotspot", res.Hotspot.Name,
		"strategy", res.Strategy.String(),
		"results", len(out.Results),
		"skipped", len(out.Skipped),
		"out_of_range", out.OutOfRange,
	)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"location":  res.Hotspot.Name,
		"count":     len(out.Results),
		"hospitals": proximity.SanitizeAll(out.Results),
	}); err != nil {
		fmt.Fprintf(stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}
