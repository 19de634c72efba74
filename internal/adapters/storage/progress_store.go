// Package storage provides the SQLite implementation of the progress
// store port.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
	"github.com/ForgeBytez-Official/ZenFlowz/internal/ports"
)

// Storage keys for the cycle progression. The final-stretch flag is
// runtime-only and deliberately has no key.
const (
	keyZones          = "completed_zones"
	keyDrifts         = "completed_drifts"
	keyZoneQualities  = "zone_qualities"
	keyDriftQualities = "drift_qualities"
)

// progressStore implements ports.ProgressStore using SQLite.
type progressStore struct {
	db *sql.DB
}

// Ensure progressStore implements ports.ProgressStore.
var _ ports.ProgressStore = (*progressStore)(nil)

// New creates a new SQLite progress store at the given path.
func New(dbPath string) (ports.ProgressStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	store := &progressStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// NewMemory creates an in-memory progress store for testing.
func NewMemory() (ports.ProgressStore, error) {
	return New(":memory:")
}

// migrate creates the database schema.
func (s *progressStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS progress (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Load reads the persisted progression. Missing or unparsable values
// fall back to their zero/default — a corrupt row reverts that field,
// nothing more.
func (s *progressStore) Load(ctx context.Context) (domain.CycleProgress, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM progress")
	if err != nil {
		return domain.CycleProgress{}, fmt.Errorf("failed to load progress: %w", err)
	}
	defer rows.Close()

	var p domain.CycleProgress
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		switch key {
		case keyZones:
			p.CompletedZones = parseCount(value)
		case keyDrifts:
			p.CompletedDrifts = parseCount(value)
		case keyZoneQualities:
			p.ZoneQualities = parseQualities(value)
		case keyDriftQualities:
			p.DriftQualities = parseQualities(value)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.CycleProgress{}, fmt.Errorf("failed to load progress: %w", err)
	}

	return p, nil
}

// Save writes the full progression in one transaction.
func (s *progressStore) Save(ctx context.Context, p domain.CycleProgress) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO progress (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	pairs := map[string]string{
		keyZones:          strconv.Itoa(p.CompletedZones),
		keyDrifts:         strconv.Itoa(p.CompletedDrifts),
		keyZoneQualities:  encodeQualities(p.ZoneQualities),
		keyDriftQualities: encodeQualities(p.DriftQualities),
	}

	for key, value := range pairs {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *progressStore) Close() error {
	return s.db.Close()
}

// parseCount decodes a counter value, falling back to zero.
func parseCount(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseQualities decodes a JSON float list, falling back to empty.
func parseQualities(value string) []float64 {
	var qualities []float64
	if err := json.Unmarshal([]byte(value), &qualities); err != nil {
		return nil
	}
	return qualities
}

// encodeQualities serializes a quality list as a JSON float array.
func encodeQualities(qualities []float64) string {
	if qualities == nil {
		qualities = []float64{}
	}
	data, _ := json.Marshal(qualities)
	return string(data)
}
