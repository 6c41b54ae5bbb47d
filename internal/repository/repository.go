package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mr1hm/go-health-hotspots/internal/models"
)

// HospitalSource supplies the hospitals dataset in source order.
type HospitalSource interface {
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	Close() error
}

// Open picks a source by file extension: .db, .sqlite and .sqlite3 open a
// SQLite database, anything else is read as CSV.
func Open(path string) (HospitalSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		db, err := NewSQLiteDB(path)
		if err != nil {
			return nil, fmt.Errorf("error opening hospitals database: %w", err)
		}
		return db, nil
	default:
		return NewCSVSource(path), nil
	}
}
