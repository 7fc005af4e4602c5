package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"digitomize/internal/config"
	"digitomize/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// connParams are applied by the driver to every pooled connection, so the
// sync writers and the API readers see the same settings.
var connParams = [][2]string{
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
	{"_busy_timeout", "5000"},
	{"_foreign_keys", "on"},
	// write transactions take the lock up front, so concurrent bulk
	// inserts wait on busy_timeout instead of failing on upgrade
	{"_txlock", "immediate"},
	{"_cache_size", "-32000"},
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range connParams {
		q.Set(p[0], p[1])
	}
	return "file:" + path + "?" + q.Encode()
}

// New opens the store and brings the schema up to date.
func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	log := logger.With().Str("component", "database").Str("path", cfg.DBPath).Logger()

	sqlDB, err := sql.Open("sqlite3", dsn(cfg.DBPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DBPath, err)
	}

	sqlDB.SetMaxOpenConns(constants.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(constants.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach database %s: %w", cfg.DBPath, err)
	}

	version, err := migrate(sqlDB)
	if err != nil {
		log.Error().Err(err).Msg("schema migration failed")
		sqlDB.Close()
		return nil, err
	}

	log.Info().
		Int64("schema_version", version).
		Int("max_open_conns", constants.DBMaxOpenConns).
		Msg("database ready")
	return sqlDB, nil
}

// migrate applies pending embedded migrations and returns the schema version.
func migrate(sqlDB *sql.DB) (int64, error) {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
