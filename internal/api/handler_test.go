package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-health-hotspots/internal/analytics"
	"github.com/mr1hm/go-health-hotspots/internal/dataset"
	"github.com/mr1hm/go-health-hotspots/internal/hotspot"
	"github.com/mr1hm/go-health-hotspots/internal/models"
	"github.com/mr1hm/go-health-hotspots/internal/proximity"
)

var delhi = models.Coordinates{Latitude: 28.70, Longitude: 77.10}

const kmPerDegree = 6371.0 * math.Pi / 180

func hospitalNorthOf(origin models.Coordinates, name string, km float64) models.Hospital {
	return models.Hospital{
		Name:             name,
		Type:             "Public",
		Latitude:         models.CoordOf(origin.Latitude + km/kmPerDegree),
		Longitude:        models.CoordOf(origin.Longitude),
		ICUBedsAvailable: models.IntPtr(4),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func setupTestRouter(hospitals []models.Hospital, m analytics.Models) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(
		hotspot.NewResolver(hotspot.Default()),
		proximity.NewRanker(proximity.WithLogger(quietLogger())),
		dataset.NewStore(&dataset.Snapshot{Hospitals: hospitals}),
		m,
		nil,
	)
	handler.RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	router.ServeHTTP(w, req)
	return w
}

func doRaw(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error body %q: %v", w.Body.String(), err)
	}
	return resp["error"]
}

func TestHospitalsNearHotspot_UnknownLocationListsKeys(t *testing.T) {
	router := setupTestRouter([]models.Hospital{hospitalNorthOf(delhi, "AIIMS", 10)}, analytics.Models{})

	w := doRequest(router, "GET", "/hospitals-near-hotspot/Gurgaon", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	msg := errorMessage(t, w)
	for _, name := range hotspot.Default().Names() {
		if !strings.Contains(msg, name) {
			t.Errorf("expected message to list %q, got %q", name, msg)
		}
	}
	if strings.Index(msg, "Kamrup") > strings.Index(msg, "Dehradun") {
		t.Errorf("expected keys in registry order, got %q", msg)
	}
}

func TestHospitalsNearHotspot_FiltersByRadius(t *testing.T) {
	router := setupTestRouter([]models.Hospital{
		hospitalNorthOf(delhi, "Far", 60),
		hospitalNorthOf(delhi, "Near", 10),
	}, analytics.Models{})

	w := doRequest(router, "GET", "/hospitals-near-hotspot/delhi", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp nearbyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Location != "Delhi" {
		t.Errorf("expected location Delhi, got %s", resp.Location)
	}
	if resp.Count != 1 || len(resp.Hospitals) != 1 {
		t.Fatalf("expected 1 hospital, got count=%d len=%d", resp.Count, len(resp.Hospitals))
	}
	if resp.Hospitals[0].Name != "Near" {
		t.Errorf("expected Near, got %s", resp.Hospitals[0].Name)
	}
	if math.Abs(resp.Hospitals[0].Distance-10) > 1e-6 {
		t.Errorf("expected ~10 km, got %v", resp.Hospitals[0].Distance)
	}
}

func TestHospitalsNearHotspot_RadiusBoundary(t *testing.T) {
	router := setupTestRouter([]models.Hospital{
		hospitalNorthOf(delhi, "Outside", 50.03),
		hospitalNorthOf(delhi, "Inside", 49.97),
	}, analytics.Models{})

	w := doRequest(router, "GET", "/hospitals-near-hotspot/Delhi", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp nearbyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Count != 1 || resp.Hospitals[0].Name != "Inside" {
		t.Fatalf("expected only Inside, got %+v", resp.Hospitals)
	}
	if math.Abs(resp.Hospitals[0].Distance-49.97) > 1e-6 {
		t.Errorf("expected 49.97 km, got %v", resp.Hospitals[0].Distance)
	}
}

func TestHospitalsNearHotspot_NullCapacities(t *testing.T) {
	router := setupTestRouter([]models.Hospital{
		{Name: "Clinic", Latitude: "28.70", Longitude: "77.10"},
	}, analytics.Models{})

	w := doRequest(router, "GET", "/hospitals-near-hotspot/Delhi", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Hospitals []map[string]any `json:"hospitals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	h := resp.Hospitals[0]
	for _, field := range []string{"icu_beds_available", "emergency_beds_available", "ambulances_available"} {
		v, present := h[field]
		if !present || v != nil {
			t.Errorf("expected %s to be null, got %v (present=%v)", field, v, present)
		}
	}
	if h["type"] != "Unknown" {
		t.Errorf("expected type Unknown, got %v", h["type"])
	}
}

func TestHospitalsNearHotspot_Errors(t *testing.T) {
	tests := []struct {
		name      string
		hospitals []models.Hospital
		path      string
		status    int
		contains  string
	}{
		{"blank name", []models.Hospital{hospitalNorthOf(delhi, "a", 1)}, "/hospitals-near-hotspot/%20%20", http.StatusBadRequest, "required"},
		{"missing name", []models.Hospital{hospitalNorthOf(delhi, "a", 1)}, "/hospitals-near-hotspot/", http.StatusBadRequest, "required"},
		{"empty dataset", nil, "/hospitals-near-hotspot/Delhi", http.StatusInternalServerError, "dataset is empty"},
		{"nothing in radius", []models.Hospital{hospitalNorthOf(delhi, "far", 120)}, "/hospitals-near-hotspot/Delhi", http.StatusNotFound, "No hospitals within 50 km of Delhi"},
		{"only bad rows", []models.Hospital{{Name: "bad", Latitude: "N/A", Longitude: "77.1"}}, "/hospitals-near-hotspot/Delhi", http.StatusNotFound, "No hospitals within"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(tt.hospitals, analytics.Models{})
			w := doRequest(router, "GET", tt.path, "")

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if msg := errorMessage(t, w); !strings.Contains(msg, tt.contains) {
				t.Errorf("expected message containing %q, got %q", tt.contains, msg)
			}
		})
	}
}

func TestWaterData(t *testing.T) {
	router := setupTestRouter(nil, analytics.Models{})

	w := doRequest(router, "GET", "/iot-water-data/kamrup", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var reading analytics.WaterReading
	json.Unmarshal(w.Body.Bytes(), &reading)
	if reading != analytics.SimulateWater("Kamrup") {
		t.Errorf("expected readings for Kamrup, got %+v", reading)
	}

	w = doRequest(router, "GET", "/iot-water-data/atlantis", "")
	json.Unmarshal(w.Body.Bytes(), &reading)
	if reading.Location != "Atlantis" {
		t.Errorf("expected fallback to normalized name, got %s", reading.Location)
	}

	w = doRequest(router, "GET", "/iot-water-data/", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing location, got %d", w.Code)
	}
}

func TestHotspots_KeepsRegistryOrder(t *testing.T) {
	router := setupTestRouter(nil, analytics.Models{})

	w := doRequest(router, "GET", "/hotspots", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	last := -1
	for _, name := range hotspot.Default().Names() {
		idx := strings.Index(body, `"`+name+`"`)
		if idx <= last {
			t.Fatalf("expected %q after previous key in %s", name, body)
		}
		last = idx
	}

	var counts map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &counts); err != nil {
		t.Fatalf("expected a JSON object: %v", err)
	}
	if counts["Delhi"] != analytics.HotspotCount("Delhi") {
		t.Errorf("unexpected Delhi count %d", counts["Delhi"])
	}
}

func TestHotspotsGeoJSON(t *testing.T) {
	router := setupTestRouter(nil, analytics.Models{})

	w := doRequest(router, "GET", "/hotspots.geojson", "")
	if ct := w.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("expected content-type application/geo+json, got %s", ct)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != hotspot.Default().Len() {
		t.Fatalf("unexpected collection %s with %d features", fc.Type, len(fc.Features))
	}
	first := fc.Features[0]
	if first.Properties["name"] != "Kamrup" || first.Geometry.Coordinates[0] != 91.73 {
		t.Errorf("unexpected first feature %+v", first)
	}
}

func TestModelEndpoints_Unavailable(t *testing.T) {
	router := setupTestRouter(nil, analytics.Models{})

	tests := []struct {
		method, path, body string
	}{
		{"POST", "/predict-disease", `{"symptoms":["fever"]}`},
		{"POST", "/check-anomaly", `{"symptoms":["fever"]}`},
		{"GET", "/forecast-outbreak", ""},
	}
	for _, tt := range tests {
		w := doRequest(router, tt.method, tt.path, tt.body)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: expected status 503, got %d", tt.path, w.Code)
		}
	}
}

func TestModelEndpoints(t *testing.T) {
	symptoms, err := analytics.ParseSymptomModel(strings.NewReader("fever,cough,rash,disease\n1,1,0,Flu\n0,0,1,Measles\n"))
	if err != nil {
		t.Fatalf("ParseSymptomModel failed: %v", err)
	}
	anomaly, err := analytics.ParseAnomalyDetector(strings.NewReader("fever,cough,rash\n0,0,0\n"), 2)
	if err != nil {
		t.Fatalf("ParseAnomalyDetector failed: %v", err)
	}
	forecast, err := analytics.ParseForecaster(strings.NewReader("ds,y\n2024-01-01,10\n2024-01-02,12\n"))
	if err != nil {
		t.Fatalf("ParseForecaster failed: %v", err)
	}
	router := setupTestRouter(nil, analytics.Models{Symptoms: symptoms, Anomaly: anomaly, Forecast: forecast})

	w := doRequest(router, "POST", "/predict-disease", `{"symptoms":["Fever","cough"]}`)
	var predicted map[string]string
	json.Unmarshal(w.Body.Bytes(), &predicted)
	if predicted["predicted_disease"] != "Flu" {
		t.Errorf("expected Flu, got %v", predicted)
	}

	w = doRequest(router, "POST", "/check-anomaly", `{"symptoms":["fever","cough","rash"]}`)
	var anomalous map[string]int
	json.Unmarshal(w.Body.Bytes(), &anomalous)
	if anomalous["is_anomaly"] != 1 {
		t.Errorf("expected anomaly, got %v", anomalous)
	}

	w = doRequest(router, "POST", "/check-anomaly", `{"symptoms":["fever"]}`)
	json.Unmarshal(w.Body.Bytes(), &anomalous)
	if anomalous["is_anomaly"] != 0 {
		t.Errorf("expected no anomaly, got %v", anomalous)
	}

	w = doRequest(router, "POST", "/predict-disease", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for bad body, got %d", w.Code)
	}

	w = doRequest(router, "GET", "/forecast-outbreak", "")
	var fc struct {
		Forecast []analytics.ForecastPoint `json:"forecast"`
	}
	json.Unmarshal(w.Body.Bytes(), &fc)
	if len(fc.Forecast) != analytics.ForecastHorizon {
		t.Fatalf("expected %d forecast points, got %d", analytics.ForecastHorizon, len(fc.Forecast))
	}
	if fc.Forecast[0].DS != "2024-01-03" {
		t.Errorf("expected forecast to start after last date, got %s", fc.Forecast[0].DS)
	}
}

func TestHealth(t *testing.T) {
	router := setupTestRouter([]models.Hospital{hospitalNorthOf(delhi, "a", 1)}, analytics.Models{})

	w := doRequest(router, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
	if resp["hospitals"] != float64(1) {
		t.Errorf("expected 1 hospital, got %v", resp["hospitals"])
	}
}
