package repository

import (
	"context"
	"testing"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func TestSQLiteDB_AddAndListHospitals(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	hospitals := []*models.Hospital{
		{
			Name:                   "AIIMS",
			Type:                   "Government",
			Latitude:               "28.5672",
			Longitude:              "77.2100",
			ICUBedsAvailable:       models.IntPtr(12),
			EmergencyBedsAvailable: models.IntPtr(30),
			AmbulancesAvailable:    models.IntPtr(4),
		},
		{Name: "Clinic", Latitude: "28.70", Longitude: "77.10"},
	}
	for _, h := range hospitals {
		if err := db.AddHospital(ctx, h); err != nil {
			t.Fatalf("AddHospital failed: %v", err)
		}
	}

	got, err := db.ListHospitals(ctx)
	if err != nil {
		t.Fatalf("ListHospitals failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(got))
	}

	if got[0].Name != "AIIMS" || got[1].Name != "Clinic" {
		t.Errorf("expected insertion order, got %s, %s", got[0].Name, got[1].Name)
	}
	if got[0].Latitude != "28.5672" {
		t.Errorf("expected raw latitude 28.5672, got %q", got[0].Latitude)
	}
	if got[0].ICUBedsAvailable == nil || *got[0].ICUBedsAvailable != 12 {
		t.Errorf("expected 12 icu beds, got %v", got[0].ICUBedsAvailable)
	}
	if got[1].Type != "" {
		t.Errorf("expected empty type, got %q", got[1].Type)
	}
	if got[1].AmbulancesAvailable != nil {
		t.Errorf("expected nil ambulances, got %v", *got[1].AmbulancesAvailable)
	}
}

func TestSQLiteDB_KeepsMalformedCoordinates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	if err := db.AddHospital(ctx, &models.Hospital{Name: "Bad", Latitude: "N/A", Longitude: "77.1"}); err != nil {
		t.Fatalf("AddHospital failed: %v", err)
	}

	got, err := db.ListHospitals(ctx)
	if err != nil {
		t.Fatalf("ListHospitals failed: %v", err)
	}
	if got[0].Latitude != "N/A" {
		t.Errorf("expected latitude N/A to survive, got %q", got[0].Latitude)
	}
	if _, err := got[0].Coordinates(); err == nil {
		t.Error("expected coordinates error for N/A latitude")
	}
}

func TestSQLiteDB_CoercesNonNumericCapacities(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	// Mimic a database built outside AddHospital with text in INTEGER columns.
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO hospitals (hospital_name, type, lat, lon, icu_beds_available, emergency_beds_available, ambulances_available)
		VALUES ('Civil', 'Public', '28.70', '77.10', 'N/A', '5.0', 3)
	`)
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	db.AddHospital(ctx, &models.Hospital{Name: "Max", Latitude: "28.6", Longitude: "77.2"})

	got, err := db.ListHospitals(ctx)
	if err != nil {
		t.Fatalf("ListHospitals failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(got))
	}

	civil := got[0]
	if civil.ICUBedsAvailable != nil {
		t.Errorf("expected N/A icu beds to be nil, got %d", *civil.ICUBedsAvailable)
	}
	if civil.EmergencyBedsAvailable == nil || *civil.EmergencyBedsAvailable != 5 {
		t.Errorf("expected 5 emergency beds, got %v", civil.EmergencyBedsAvailable)
	}
	if civil.AmbulancesAvailable == nil || *civil.AmbulancesAvailable != 3 {
		t.Errorf("expected 3 ambulances, got %v", civil.AmbulancesAvailable)
	}
	if got[1].AmbulancesAvailable != nil {
		t.Errorf("expected missing ambulances to be nil, got %v", got[1].AmbulancesAvailable)
	}
}

func TestSQLiteDB_Count(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	n, err := db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 hospitals, got %d", n)
	}

	db.AddHospital(ctx, &models.Hospital{Name: "One", Latitude: "1", Longitude: "1"})
	db.AddHospital(ctx, &models.Hospital{Name: "Two", Latitude: "2", Longitude: "2"})

	n, err = db.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 hospitals, got %d", n)
	}
}

func TestOpen_PicksSourceByExtension(t *testing.T) {
	dir := t.TempDir()

	src, err := Open(dir + "/hospitals.csv")
	if err != nil {
		t.Fatalf("Open csv failed: %v", err)
	}
	if _, ok := src.(*CSVSource); !ok {
		t.Errorf("expected *CSVSource, got %T", src)
	}

	src, err = Open(dir + "/hospitals.db")
	if err != nil {
		t.Fatalf("Open db failed: %v", err)
	}
	defer src.Close()
	if _, ok := src.(*SQLiteDB); !ok {
		t.Errorf("expected *SQLiteDB, got %T", src)
	}
}
