package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"mdr-twin-gateway/internal/adapters/storage/sqlite"
	"mdr-twin-gateway/internal/config"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql"})
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestOpen_SQLiteMissingFileIsFatal(t *testing.T) {
	_, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "missing.db"),
	})
	if !errors.Is(err, sqlite.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestOpen_PostgresBadDSN(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: config.DriverPostgres}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestStore_CloseNil(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Fatalf("nil store close: %v", err)
	}
}
