package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Migrator applies the SQL files in a directory in version order, tracking
// what has been applied in a migrations table.
type Migrator struct {
	DB            *sql.DB
	MigrationsDir string
}

type Migration struct {
	Version   string
	Name      string
	FilePath  string
	AppliedAt *time.Time
}

func NewMigrator(db *sql.DB, migrationsDir string) *Migrator {
	return &Migrator{DB: db, MigrationsDir: migrationsDir}
}

func (m *Migrator) ensureTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`
	if _, err := m.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) applied() (map[string]Migration, error) {
	rows, err := m.DB.Query(`SELECT version, name, applied_at FROM migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]Migration)
	for rows.Next() {
		var mig Migration
		if err := rows.Scan(&mig.Version, &mig.Name, &mig.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		applied[mig.Version] = mig
	}
	return applied, rows.Err()
}

func (m *Migrator) pending() ([]Migration, error) {
	applied, err := m.applied()
	if err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(m.MigrationsDir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migration files: %w", err)
	}

	var pending []Migration
	for _, file := range files {
		version, name := splitFilename(filepath.Base(file))
		if _, exists := applied[version]; !exists {
			pending = append(pending, Migration{Version: version, Name: name, FilePath: file})
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	return pending, nil
}

// RunMigrations applies all pending migrations, each inside its own transaction.
func (m *Migrator) RunMigrations() error {
	if err := m.ensureTable(); err != nil {
		return err
	}

	pending, err := m.pending()
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		log.Println("No pending migrations to apply")
		return nil
	}

	log.Printf("Applying %d migrations...", len(pending))
	for _, mig := range pending {
		if err := m.apply(mig); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", mig.Version, err)
		}
		log.Printf("Applied migration: %s - %s", mig.Version, mig.Name)
	}

	return nil
}

func (m *Migrator) apply(mig Migration) error {
	content, err := os.ReadFile(mig.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err = tx.Exec(`INSERT INTO migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// Status prints applied and pending migrations.
func (m *Migrator) Status() error {
	if err := m.ensureTable(); err != nil {
		return err
	}

	applied, err := m.applied()
	if err != nil {
		return err
	}
	pending, err := m.pending()
	if err != nil {
		return err
	}

	fmt.Printf("Applied migrations: %d\n", len(applied))
	for _, mig := range applied {
		fmt.Printf("  applied: %s - %s (%s)\n", mig.Version, mig.Name, mig.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Pending migrations: %d\n", len(pending))
	for _, mig := range pending {
		fmt.Printf("  pending: %s - %s\n", mig.Version, mig.Name)
	}

	return nil
}

// splitFilename extracts version and name from "001_create_events.sql".
func splitFilename(filename string) (version, name string) {
	base := strings.TrimSuffix(filename, ".sql")
	parts := strings.SplitN(base, "_", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return base, base
}
