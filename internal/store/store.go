package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/datallboy/gofetch/internal/infra/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// PersistentStore keeps batch reports in SQLite or PostgreSQL.
type PersistentStore struct {
	db     *sql.DB
	driver string
}

// New opens the configured database and migrates it. It returns (nil, nil)
// when persistence is disabled.
func New(cfg config.StoreConfig) (*PersistentStore, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case DriverPostgres:
		return NewPostgresStore(cfg.PostgresDSN)
	case "none", "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func NewSQLiteStore(dbPath string) (*PersistentStore, error) {
	// Ensure the database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	return open(db, DriverSQLite)
}

func NewPostgresStore(dsn string) (*PersistentStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	return open(db, DriverPostgres)
}

func open(db *sql.DB, driver string) (*PersistentStore, error) {
	// Ping makes sure the database is actually reachable and the DSN is valid
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	s := &PersistentStore{db: db, driver: driver}

	if err := s.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate database: %w", err)
	}

	return s, nil
}

// rebind rewrites ? placeholders into $n for postgres.
func (s *PersistentStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *PersistentStore) Close() error {
	return s.db.Close()
}
