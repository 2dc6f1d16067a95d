package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"perftrack/internal/platform/config"
)

// DB is a bounded connection pool that hands out one connection per
// data-access operation.
type DB struct {
	SQL     *sql.DB
	Dialect goqu.DialectWrapper
	driver  string
}

func Connect(cfg config.Config) (*DB, error) {
	driverName, err := sqlDriverName(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DatabaseURL
	if cfg.DatabaseDriver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(2)
	return New(sqlDB, cfg.DatabaseDriver), nil
}

// New wraps an already opened *sql.DB. driver is one of config.DriverPostgres
// or config.DriverSQLite and selects the SQL dialect.
func New(sqlDB *sql.DB, driver string) *DB {
	return &DB{SQL: sqlDB, Dialect: goqu.Dialect(dialectName(driver)), driver: driver}
}

func (d *DB) Driver() string {
	return d.driver
}

// Acquire returns a dedicated connection; the caller must Close it.
func (d *DB) Acquire(ctx context.Context) (*sql.Conn, error) {
	return d.SQL.Conn(ctx)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "pgx", nil
	case config.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqliteDSN turns on foreign key enforcement unless the DSN already sets
// _foreign_keys (or its _fk alias) explicitly. go-sqlite3 leaves it off.
func sqliteDSN(dsn string) string {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	params, err := url.ParseQuery(rawQuery)
	if err == nil && (params.Has("_foreign_keys") || params.Has("_fk")) {
		return dsn
	}
	if rawQuery == "" {
		return base + "?_foreign_keys=on"
	}
	return dsn + "&_foreign_keys=on"
}

func dialectName(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}
