// Package migration applies the embedded SQL schema files to Postgres.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
)

// File is one numbered schema migration, e.g. 0002_projects.sql.
type File struct {
	Version int
	Name    string
	SQL     string
}

// Migrator applies migration files in version order and records each one in
// schema_migrations.
type Migrator struct {
	DB    *sql.DB
	Files fs.FS
}

// NewMigrator creates a new migrator reading *.sql files from the root of
// files.
func NewMigrator(db *sql.DB, files fs.FS) *Migrator {
	return &Migrator{DB: db, Files: files}
}

// Open connects to Postgres through lib/pq.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// InitializeSchema creates the version table if it doesn't exist.
func (m *Migrator) InitializeSchema(ctx context.Context) error {
	_, err := m.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the highest applied version, 0 when none.
func (m *Migrator) GetCurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations
	`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Up applies every migration newer than the current version and returns the
// ones it applied.
func (m *Migrator) Up(ctx context.Context) ([]File, error) {
	files, err := Load(m.Files)
	if err != nil {
		return nil, err
	}
	if err := m.InitializeSchema(ctx); err != nil {
		return nil, err
	}
	current, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	var applied []File
	for _, f := range Pending(files, current) {
		if err := m.apply(ctx, f); err != nil {
			return applied, err
		}
		slog.InfoContext(ctx, "migration applied", "version", f.Version, "name", f.Name)
		applied = append(applied, f)
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, f File) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", f.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, f.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %s: %w", f.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		f.Version, f.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", f.Name, err)
	}
	return tx.Commit()
}

// Load reads every *.sql file under the root of fsys, ordered by version.
// File names must start with a numeric version followed by an underscore.
func Load(fsys fs.FS) ([]File, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var files []File
	seen := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		version, err := parseVersion(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", prev, e.Name(), version)
		}
		seen[version] = e.Name()

		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", e.Name(), err)
		}
		files = append(files, File{Version: version, Name: e.Name(), SQL: string(data)})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

// Pending returns the files with a version above current.
func Pending(files []File, current int) []File {
	var out []File
	for _, f := range files {
		if f.Version > current {
			out = append(out, f)
		}
	}
	return out
}

func parseVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s: name must look like 0001_description.sql", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("migration %s: invalid version %q", name, prefix)
	}
	return version, nil
}
