package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"summarizer-agent/internal/config"
	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/repository/db"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Ensure PostgresDB implements db.Database interface
var _ db.Database = (*PostgresDB)(nil)

// PostgresDB implements the db.Database interface
type PostgresDB struct {
	conn *sql.DB
}

// NewPostgresDB opens the version's database, verifies it and applies migrations
func NewPostgresDB(dbConfig config.DatabaseConfig) (*PostgresDB, error) {
	logger.Log.WithField("env_key", dbConfig.EnvKey).Info("Connecting to PostgreSQL")

	conn, err := sql.Open("postgres", dbConfig.URL)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// One connection held for the whole run
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	// Test the connection
	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	logger.Log.Info("Successfully connected to PostgreSQL")

	pg := &PostgresDB{conn: conn}

	if dbConfig.SkipMigrations {
		logger.Log.Info("Skipping migrations")
		return pg, nil
	}

	if err = pg.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return pg, nil
}

// Close closes the database connection
func (p *PostgresDB) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// RunMigrations applies the embedded migrations using golang-migrate
func (p *PostgresDB) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("error opening migration source: %w", err)
	}

	driver, err := postgres.WithInstance(p.conn, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Database migrations applied successfully")
	return nil
}
