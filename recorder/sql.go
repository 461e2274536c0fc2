package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

const schema = `CREATE TABLE IF NOT EXISTS observations (
	key TEXT NOT NULL,
	field TEXT NOT NULL,
	raw TEXT NOT NULL,
	canonical TEXT NOT NULL,
	error TEXT NOT NULL,
	observed_at BIGINT NOT NULL,
	PRIMARY KEY (key, field)
)`

// SQLStore is a Recorder on top of database/sql. Writes are serialized.
type SQLStore struct {
	db         *sql.DB
	driver     string
	writeMutex *sync.Mutex
}

var _ Recorder = (*SQLStore)(nil)

// Open opens a store with the given driver, see DriverSQLite and DriverPostgres.
func Open(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteStore(dsn)
	case DriverPostgres, "postgres":
		return NewPostgresStore(dsn)
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// NewSQLiteStore creates a store with the given filename as the db.
// If file name is empty, a new in-memory db is opened.
func NewSQLiteStore(filename string) (*SQLStore, error) {
	if filename == "" {
		filename = "file::memory:?cache=shared"
	}
	db, err := sql.Open(DriverSQLite, filename)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLStore{db: db, driver: DriverSQLite, writeMutex: &sync.Mutex{}}
	if err := s.init(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore connects to the PostgreSQL database at dsn.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty postgres dsn")
	}
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(8)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &SQLStore{db: db, driver: DriverPostgres, writeMutex: &sync.Mutex{}}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) init(ctx context.Context, pragmas ...string) error {
	for _, stmt := range append([]string{schema}, pragmas...) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init %s store: %w", s.driver, err)
		}
	}
	return nil
}

// query rewrites "?" placeholders for drivers that number them.
func (s *SQLStore) query(q string) string {
	if s.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (s *SQLStore) Record(ctx context.Context, o Observation) error {
	// JSON keeps empty field lines apart from no lines at all
	raw, err := json.Marshal(o.Raw)
	if err != nil {
		return fmt.Errorf("record %s %s: %w", o.Key, o.Field, err)
	}
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err = s.db.ExecContext(ctx, s.query(`INSERT INTO observations
		(key, field, raw, canonical, error, observed_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (key, field) DO UPDATE SET
		raw = excluded.raw, canonical = excluded.canonical,
		error = excluded.error, observed_at = excluded.observed_at`),
		o.Key, o.Field, string(raw), o.Canonical, o.Error, o.ObservedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("record %s %s: %w", o.Key, o.Field, err)
	}
	return nil
}

func (s *SQLStore) All(ctx context.Context, prefix string) ([]Observation, error) {
	entries := make([]Observation, 0)
	rows, err := s.db.QueryContext(ctx, s.query(`SELECT
		key, field, raw, canonical, error, observed_at
		FROM observations WHERE key LIKE ? ESCAPE '\'
		ORDER BY key, field`), escapeLike(prefix)+"%")
	if err != nil {
		return entries, err
	}
	defer rows.Close()
	for rows.Next() {
		var o Observation
		var raw string
		var observedAt int64
		if err := rows.Scan(&o.Key, &o.Field, &raw, &o.Canonical, &o.Error, &observedAt); err != nil {
			return entries, err
		}
		if err := json.Unmarshal([]byte(raw), &o.Raw); err != nil {
			return entries, fmt.Errorf("decode raw %s %s: %w", o.Key, o.Field, err)
		}
		o.ObservedAt = time.UnixMilli(observedAt)
		entries = append(entries, o)
	}
	return entries, rows.Err()
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
