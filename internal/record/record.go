// Package record persists decoded telemetry to a SQLite file so a tracking
// session can be replayed or analysed after the fact.
package record

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Recorder appends decoded records to a single telemetry table.
type Recorder struct {
	*sql.DB
}

// Open opens (creating if needed) the recording database at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open recording database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS telemetry (
			kind TEXT,
			x DOUBLE,
			y DOUBLE,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create telemetry table: %w", err)
	}

	return &Recorder{db}, nil
}

// Record appends one decoded record. kind is the wire prefix ("n" or "p").
func (r *Recorder) Record(kind string, x, y float64) error {
	_, err := r.Exec("INSERT INTO telemetry (kind, x, y) VALUES (?, ?, ?)", kind, x, y)
	return err
}

// Count returns the number of records stored for the given kind.
func (r *Recorder) Count(kind string) (int, error) {
	var n int
	err := r.QueryRow("SELECT COUNT(*) FROM telemetry WHERE kind = ?", kind).Scan(&n)
	return n, err
}
