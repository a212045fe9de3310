package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"golang.org/x/crypto/bcrypt"
)

var DB *sql.DB

// InitDB initializes the database connection, applies pending migrations and
// seeds the demonstration shop.
func InitDB(host, port, user, password, dbname, sslmode string, seedDemoShop bool) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	err = DB.Ping()
	if err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error applying migrations: %q", err)
	}

	if seedDemoShop {
		if err := SeedDemoShop(DB); err != nil {
			log.Fatalf("Error seeding demo shop: %q", err)
		}
	}
}

// migrations is the ordered, versioned schema history. Migrations run once
// at startup; the applied version is tracked in schema_migrations, so a
// restart never re-runs or re-checks individual columns.
var migrations = []string{
	// 1: shop accounts
	`CREATE TABLE IF NOT EXISTS shops (
		shop_id       TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		location      TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// 2: per-shop inventory, one row per medicine name
	`CREATE TABLE IF NOT EXISTS inventory (
		shop_id     TEXT NOT NULL,
		med_name    TEXT NOT NULL,
		stock_count INTEGER NOT NULL DEFAULT 0 CHECK (stock_count >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (shop_id, med_name)
	)`,
	// 3: price column, retrofitted after the initial inventory schema
	`ALTER TABLE inventory ADD COLUMN IF NOT EXISTS price DOUBLE PRECISION NOT NULL DEFAULT 0.0`,
}

// Migrate applies all pending schema migrations in order.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("could not create schema_migrations table: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("could not read current schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("could not begin migration %d: %w", version, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("could not apply migration %d: %w", version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("could not record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("could not commit migration %d: %w", version, err)
		}
		log.Printf("Applied schema migration %d", version)
	}
	return nil
}

// SeedDemoShop inserts the demonstration shop on first startup. The insert
// is ignored when the shop already exists.
func SeedDemoShop(db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash demo shop password: %w", err)
	}
	_, err = db.Exec(`INSERT INTO shops (shop_id, name, location, password_hash)
	                  VALUES ('shop101', 'City Pharmacy', 'https://goo.gl/maps/example', $1)
	                  ON CONFLICT (shop_id) DO NOTHING`, string(hash))
	if err != nil {
		return fmt.Errorf("could not seed demo shop: %w", err)
	}
	return nil
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return DB
}
