package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrStoreNotFound = errors.New("sqlite: database file not found")
)

// Open abre un archivo SQLite existente en modo read-only.
// Nunca lo crea: si falta, está bloqueado o no es una base válida, devuelve error
// y el proceso no debe empezar a servir.
func Open(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
		}
		return nil, fmt.Errorf("sqlite: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("sqlite: %s is a directory", path)
	}

	db, err := gorm.Open(sqlite.Open(ReadOnlyDSN(path)), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}

	// Un único handle compartido durante toda la vida del proceso.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Leer el catálogo fuerza a SQLite a validar el header del archivo
	// (detecta archivos corruptos o que no son SQLite).
	var n int64
	if err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM sqlite_master`).Scan(&n).Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: read catalog %s: %w", path, err)
	}

	return db, nil
}

// ReadOnlyDSN arma la URI file: con mode=ro. El motor rechaza cualquier escritura.
func ReadOnlyDSN(path string) string {
	p := filepath.ToSlash(path)
	p = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(p)
	return "file:" + p + "?mode=ro&_busy_timeout=5000"
}
