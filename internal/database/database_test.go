package database

import (
	"path/filepath"
	"testing"
)

func TestDBPath(t *testing.T) {
	expected := filepath.Join("data", "weather-terminal.db")
	if got := DBPath(); got != expected {
		t.Errorf("DBPath() = %v, want %v", got, expected)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "state.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
