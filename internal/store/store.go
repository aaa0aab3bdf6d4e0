package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("not found")

// Store persists members, profiles, the menu catalog, and intake history.
// Timestamps are stored as unix seconds so both drivers behave identically.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and runs migrations. Supported drivers:
// "sqlite" (default, file path DSN) and "postgres" (lib/pq DSN).
func Open(driver, dsn string) (*Store, error) {
	if driver == "" {
		driver = "sqlite"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver}
	if driver == "sqlite" {
		// WAL mode for better concurrent read performance.
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] store opened: driver=%s", driver)
	return s, nil
}

func (s *Store) Close() error {
	log.Println("[INFO] closing store")
	return s.db.Close()
}

func (s *Store) migrate() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS members (
			member_id %s,
			username  TEXT UNIQUE NOT NULL,
			password  TEXT NOT NULL,
			name      TEXT NOT NULL,
			point     INTEGER NOT NULL DEFAULT 0
		)`, serial),

		`CREATE TABLE IF NOT EXISTS members_caffeine (
			member_id        BIGINT PRIMARY KEY,
			birth_date       TEXT NOT NULL,
			weight_kg        REAL NOT NULL,
			gender           TEXT NOT NULL,
			current_caffeine INTEGER NOT NULL DEFAULT 0,
			max_caffeine     INTEGER NOT NULL DEFAULT 400,
			updated_at       BIGINT NOT NULL
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS brand (
			brand_id   %s,
			brand_name TEXT UNIQUE NOT NULL
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS menu (
			menu_id     %s,
			brand_id    BIGINT NOT NULL,
			menu_name   TEXT NOT NULL,
			category    TEXT NOT NULL,
			size        TEXT NOT NULL,
			caffeine_mg INTEGER NOT NULL
		)`, serial),
		`CREATE INDEX IF NOT EXISTS idx_menu_brand ON menu(brand_id)`,

		`CREATE TABLE IF NOT EXISTS caffeine_history (
			id          TEXT PRIMARY KEY,
			member_id   BIGINT NOT NULL,
			menu_id     BIGINT,
			brand_name  TEXT NOT NULL,
			menu_name   TEXT NOT NULL,
			caffeine_mg INTEGER NOT NULL,
			drinked_at  BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_member_ts ON caffeine_history(member_id, drinked_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// q rewrites ? placeholders to $n for the postgres driver.
func (s *Store) q(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
