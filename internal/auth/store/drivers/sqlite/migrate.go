package sqlite

import (
	"errors"

	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// newMigrator wires golang-migrate to the embedded migration files and the
// store's connection pool. The returned instance must not be closed, doing
// so would close the shared *sql.DB.
func (m *Store) newMigrator() (*migrate.Migrate, error) {
	driver, err := sqlite.WithInstance(m.db, &sqlite.Config{})
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, "sqlite", driver)
}

// ApplyMigrations brings the schema up to the latest embedded version.
func (m *Store) ApplyMigrations() error {
	instance, err := m.newMigrator()
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// SchemaVersion reports the applied migration version and whether the last
// migration left the schema dirty.
func (m *Store) SchemaVersion() (uint, bool, error) {
	instance, err := m.newMigrator()
	if err != nil {
		return 0, false, err
	}

	version, dirty, err := instance.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
