package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-health-hotspots/internal/analytics"
	"github.com/mr1hm/go-health-hotspots/internal/dataset"
	"github.com/mr1hm/go-health-hotspots/internal/hotspot"
	"github.com/mr1hm/go-health-hotspots/internal/metrics"
	"github.com/mr1hm/go-health-hotspots/internal/proximity"
)

type Handler struct {
	resolver *hotspot.Resolver
	ranker   *proximity.Ranker
	store    *dataset.Store
	models   analytics.Models
	metrics  *metrics.Metrics
	radiusKm float64
}

func NewHandler(resolver *hotspot.Resolver, ranker *proximity.Ranker, store *dataset.Store, models analytics.Models, m *metrics.Metrics) *Handler {
	return &Handler{
		resolver: resolver,
		ranker:   ranker,
		store:    store,
		models:   models,
		metrics:  m,
		radiusKm: proximity.DefaultRadiusKm,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/hospitals-near-hotspot/", h.hospitalsNearHotspot)
	r.GET("/hospitals-near-hotspot/:location_name", h.hospitalsNearHotspot)
	r.GET("/iot-water-data/", h.waterData)
	r.GET("/iot-water-data/:location", h.waterData)
	r.GET("/hotspots", h.hotspots)
	r.GET("/hotspots.geojson", h.hotspotsGeoJSON)
	r.POST("/predict-disease", h.predictDisease)
	r.POST("/check-anomaly", h.checkAnomaly)
	r.GET("/forecast-outbreak", h.forecastOutbreak)
	r.GET("/health", h.health)
}

type nearbyResponse struct {
	Location  string                   `json:"location"`
	Count     int                      `json:"count"`
	Hospitals []proximity.HospitalView `json:"hospitals"`
}

func (h *Handler) hospitalsNearHotspot(c *gin.Context) {
	resp, err := h.findNearby(c.Param("location_name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) findNearby(raw string) (nearbyResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return nearbyResponse{}, newRequestError(ErrLocationRequired, "Location name required.")
	}

	res, ok := h.resolve(raw)
	if !ok {
		names := h.resolver.Registry().Names()
		return nearbyResponse{}, newRequestError(ErrLocationNotFound,
			fmt.Sprintf("Location '%s' not recognized. Try one of: %s", raw, strings.Join(names, ", ")))
	}

	snap := h.store.Snapshot()
	if snap.Empty() {
		return nearbyResponse{}, newRequestError(ErrDatasetEmpty, "Hospitals dataset is empty or failed to load.")
	}

	out := h.ranker.Rank(res.Hotspot.Coordinates, snap.Hospitals, h.radiusKm)
	if out.Empty() {
		return nearbyResponse{}, newRequestError(ErrNoResults,
			fmt.Sprintf("No hospitals within %g km of %s.", h.radiusKm, res.Hotspot.Name))
	}

	return nearbyResponse{
		Location:  res.Hotspot.Name,
		Count:     len(out.Results),
		Hospitals: proximity.SanitizeAll(out.Results),
	}, nil
}

func (h *Handler) resolve(raw string) (hotspot.Resolution, bool) {
	res, ok := h.resolver.Resolve(raw)
	h.metrics.IncResolution(res.Strategy.String())
	slog.Debug("resolved location",
		"query", raw,
		"normalized", res.Normalized,
		"hotspot", res.Hotspot.Name,
		"strategy", res.Strategy.String(),
	)
	return res, ok
}

func (h *Handler) waterData(c *gin.Context) {
	raw := c.Param("location")
	if strings.TrimSpace(raw) == "" {
		writeError(c, newRequestError(ErrLocationRequired, "Location required."))
		return
	}

	// Unknown locations still get readings, keyed by the normalized name.
	res, ok := h.resolve(raw)
	loc := res.Normalized
	if ok {
		loc = res.Hotspot.Name
	}

	c.JSON(http.StatusOK, analytics.SimulateWater(loc))
}

func (h *Handler) hotspots(c *gin.Context) {
	names := h.resolver.Registry().Names()
	counts := make(hotspotCounts, 0, len(names))
	for _, name := range names {
		counts = append(counts, hotspotCount{name: name, count: analytics.HotspotCount(name)})
	}
	c.JSON(http.StatusOK, counts)
}

func (h *Handler) hotspotsGeoJSON(c *gin.Context) {
	fc := toGeoJSON(h.resolver.Registry().Hotspots())
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

type symptomRequest struct {
	Symptoms []string `json:"symptoms"`
}

func bindSymptoms(c *gin.Context) ([]string, error) {
	var req symptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, newRequestError(ErrInvalidRequest, "Request body must be {\"symptoms\": [...]}.")
	}
	return req.Symptoms, nil
}

func (h *Handler) predictDisease(c *gin.Context) {
	if h.models.Symptoms == nil {
		writeError(c, newRequestError(ErrModelUnavailable, "Prediction model not available."))
		return
	}
	symptoms, err := bindSymptoms(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predicted_disease": h.models.Symptoms.Predict(symptoms)})
}

func (h *Handler) checkAnomaly(c *gin.Context) {
	if h.models.Anomaly == nil {
		writeError(c, newRequestError(ErrModelUnavailable, "Anomaly model not available."))
		return
	}
	symptoms, err := bindSymptoms(c)
	if err != nil {
		writeError(c, err)
		return
	}
	flag := 0
	if h.models.Anomaly.IsAnomaly(symptoms) {
		flag = 1
	}
	c.JSON(http.StatusOK, gin.H{"is_anomaly": flag})
}

func (h *Handler) forecastOutbreak(c *gin.Context) {
	if h.models.Forecast == nil {
		writeError(c, newRequestError(ErrModelUnavailable, "Forecast model not available."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": h.models.Forecast.Forecast(analytics.ForecastHorizon)})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"hospitals": h.store.Snapshot().Len(),
	})
}
