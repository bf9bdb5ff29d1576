package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations executes every embedded script in file name order. Scripts
// are written to be safe to re-run.
func RunMigrations(ctx context.Context, conn *sqlx.DB) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("db.RunMigrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("db.RunMigrations: cannot read %s: %w", name, err)
		}

		if _, err := conn.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("db.RunMigrations: %s: %w", name, err)
		}
	}

	return nil
}
