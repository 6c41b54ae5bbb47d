package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// :memory: databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	// lat/lon are untyped so malformed source values survive for the
	// ranker to reject.
	schema := `
		CREATE TABLE IF NOT EXISTS hospitals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hospital_name TEXT,
			type TEXT,
			lat,
			lon,
			icu_beds_available INTEGER,
			emergency_beds_available INTEGER,
			ambulances_available INTEGER
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) AddHospital(ctx context.Context, h *models.Hospital) error {
	query := `
		INSERT INTO hospitals (hospital_name, type, lat, lon, icu_beds_available, emergency_beds_available, ambulances_available)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		nullString(h.Name),
		nullString(h.Type),
		nullString(string(h.Latitude)),
		nullString(string(h.Longitude)),
		nullInt(h.ICUBedsAvailable),
		nullInt(h.EmergencyBedsAvailable),
		nullInt(h.AmbulancesAvailable),
	)
	if err != nil {
		return fmt.Errorf("error inserting hospital %q: %w", h.Name, err)
	}
	return nil
}

// ListHospitals returns every hospital in insertion order.
func (s *SQLiteDB) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hospital_name, type, CAST(lat AS TEXT), CAST(lon AS TEXT),
		       CAST(icu_beds_available AS TEXT),
		       CAST(emergency_beds_available AS TEXT),
		       CAST(ambulances_available AS TEXT)
		FROM hospitals
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying hospitals: %w", err)
	}
	defer rows.Close()

	// Capacities are read as text because externally built databases may
	// hold non-numeric values; they are coerced like the CSV counters.
	var hospitals []models.Hospital
	for rows.Next() {
		var (
			name, typ, lat, lon   sql.NullString
			icu, emergency, ambul sql.NullString
		)
		if err := rows.Scan(&name, &typ, &lat, &lon, &icu, &emergency, &ambul); err != nil {
			return nil, fmt.Errorf("error scanning hospital: %w", err)
		}
		hospitals = append(hospitals, models.Hospital{
			Name:                   name.String,
			Type:                   typ.String,
			Latitude:               models.RawCoord(lat.String),
			Longitude:              models.RawCoord(lon.String),
			ICUBedsAvailable:       parseCount(strings.TrimSpace(icu.String)),
			EmergencyBedsAvailable: parseCount(strings.TrimSpace(emergency.String)),
			AmbulancesAvailable:    parseCount(strings.TrimSpace(ambul.String)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hospitals: %w", err)
	}

	return hospitals, nil
}

func (s *SQLiteDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting hospitals: %w", err)
	}
	return n, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
