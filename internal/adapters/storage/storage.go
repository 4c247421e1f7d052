package storage

import (
	"errors"
	"fmt"
	"io"

	pg "mdr-twin-gateway/internal/adapters/storage/postgres"
	"mdr-twin-gateway/internal/adapters/storage/sqlite"
	"mdr-twin-gateway/internal/config"
	"mdr-twin-gateway/internal/domain/twin"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

// Store es el handle read-only abierto al arrancar y retenido toda la vida del proceso.
type Store struct {
	Repo     twin.Repository
	Driver   string
	Location string

	closer io.Closer
}

// Open abre el almacenamiento configurado. Cualquier error aquí es fatal:
// el caller no debe abrir el puerto si Open falla.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:     sqlite.NewPatientsRepo(db),
			Driver:   config.DriverSQLite,
			Location: cfg.Path,
			closer:   sqlDB,
		}, nil

	case config.DriverPostgres:
		pgCfg, err := pg.ReadOnlyConfig(cfg.DSN)
		if err != nil {
			return nil, err
		}
		db, err := pg.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:   pg.NewPatientsRepo(db),
			Driver: config.DriverPostgres,
			// sin credenciales en logs
			Location: fmt.Sprintf("%s:%d/%s", pgCfg.Host, pgCfg.Port, pgCfg.Database),
			closer:   db,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
