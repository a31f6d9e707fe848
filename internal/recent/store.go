package recent

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ngmaloney/weather-terminal/internal/database"
)

// storageKey is the kv row holding the JSON-encoded city list.
const storageKey = "recentCities"

// Store persists the list of recently searched cities.
//
// List and Add never return errors: unreadable or malformed state is treated
// as an empty list, and failed writes are logged and dropped.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store backed by the database at dbPath
func Open(dbPath string) (*Store, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening recent cities store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the persisted cities in insertion order
func (s *Store) List() []string {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", storageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}
	}
	if err != nil {
		slog.Warn("reading recent cities", "error", err)
		return []string{}
	}
	return decodeOr([]byte(raw), []string{})
}

// Add appends city unless it is already stored (exact match).
func (s *Store) Add(city string) {
	cities := s.List()
	for _, c := range cities {
		if c == city {
			return
		}
	}
	cities = append(cities, city)

	data, err := json.Marshal(cities)
	if err != nil {
		slog.Warn("encoding recent cities", "error", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, storageKey, string(data))
	if err != nil {
		slog.Warn("saving recent cities", "city", city, "error", err)
		return
	}
	slog.Debug("recent city added", "city", city, "count", len(cities))
}

// decodeOr decodes raw into a T, returning fallback on any decode failure
// or when the payload decodes to a null value.
func decodeOr[T any](raw []byte, fallback T) T {
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Debug("discarding unparseable stored value", "error", err)
		return fallback
	}
	if v == nil {
		return fallback
	}
	return *v
}
