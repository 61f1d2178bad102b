package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a global variable to hold the database connection pool.
var DB *pgxpool.Pool

// Connect sets up the database connection pool.
func Connect(databaseURL string) {
	var err error
	DB, err = pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	// Optional: Check if the connection is actually working
	err = DB.Ping(context.Background())
	if err != nil {
		log.Fatalf("Database ping failed: %v\n", err)
	}

	log.Println("Successfully connected to the database")
}

// GetDB returns the shared connection pool.
func GetDB() *pgxpool.Pool {
	return DB
}

// Close closes the database connection pool.
func Close() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection pool closed")
	}
}

// EnsureSchema creates the tables the app needs if they do not exist yet.
func EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id BIGSERIAL PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			time_of_day TEXT NOT NULL,
			store_name TEXT NOT NULL DEFAULT 'default'
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_counts (
			id BIGSERIAL PRIMARY KEY,
			snapshot_id BIGINT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			product_type TEXT NOT NULL,
			count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_counts_product ON inventory_counts(product_type)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'staff',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	log.Println("Database schema ensured")
	return nil
}
