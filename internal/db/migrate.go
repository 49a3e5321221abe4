package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationSource serves the embedded NNNNNN_name.{up,down}.sql files.
func MigrationSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Migrator applies the embedded migrations and tracks the applied version in
// schema_migrations.
type Migrator struct {
	m *migrate.Migrate
}

// OpenMigrator connects to a postgres:// address through the lib/pq based
// postgres driver.
func OpenMigrator(addr string) (*Migrator, error) {
	src, err := MigrationSource()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return nil, fmt.Errorf("open migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Version reports the applied version; 0 means no migration has run.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Up applies every pending migration. It reports whether anything changed and
// the version the database ends on.
func (m *Migrator) Up() (uint, bool, error) {
	err := m.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		version, _, verr := m.Version()
		return version, false, verr
	}
	if err != nil {
		return 0, false, err
	}

	version, _, err := m.Version()
	return version, true, err
}

// Down rolls back the most recently applied migration and returns its
// version, or 0 when nothing was applied.
func (m *Migrator) Down() (uint, error) {
	version, dirty, err := m.Version()
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("database is dirty at version %d, fix it and force the version first", version)
	}
	if version == 0 {
		return 0, nil
	}

	if err := m.m.Steps(-1); err != nil {
		return 0, fmt.Errorf("rollback %d: %w", version, err)
	}
	return version, nil
}
