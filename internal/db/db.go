package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

func InitDB(driver, dbURL string, logger zerolog.Logger) (*sql.DB, error) {
	if driver != DriverMySQL && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported audit driver %q", driver)
	}

	db, err := sql.Open(driver, dbURL)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", driver, err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info().Str("driver", driver).Msg("Connected to audit database")
	return db, nil
}

var migrations = map[string][]string{
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			entity_type VARCHAR(50) NOT NULL,
			entity_id BIGINT,
			action VARCHAR(50) NOT NULL,
			actor VARCHAR(100),
			details TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_entity (entity_type, entity_id),
			INDEX idx_created_at (created_at)
		);`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id SERIAL PRIMARY KEY,
			entity_type VARCHAR(50) NOT NULL,
			entity_id BIGINT,
			action VARCHAR(50) NOT NULL,
			actor VARCHAR(100),
			details TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_logs (entity_type, entity_id);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_logs (created_at);`,
	},
}

func RunMigrations(db *sql.DB, driver string, logger zerolog.Logger) error {
	queries, ok := migrations[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}
	logger.Info().Int("statements", len(queries)).Msg("Audit migrations complete")
	return nil
}

// Rebind rewrites "?" placeholders to "$n" for Postgres.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
