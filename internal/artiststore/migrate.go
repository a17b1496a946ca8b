package artiststore

import (
	"context"
	"fmt"
)

const baseSchema = `CREATE TABLE IF NOT EXISTS artists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    song_name TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`

// columnMigrations are applied in order on every open. Each adds one nullable
// column when absent, so databases created by any earlier version upgrade in
// place without losing rows.
var columnMigrations = []struct {
	column     string
	definition string
}{
	{"channel_url", "TEXT"},
	{"auto_verified", "INTEGER"},
	{"manually_verified", "INTEGER"},
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, baseSchema); err != nil {
		return fmt.Errorf("create artists table: %w", err)
	}

	existing, err := s.tableColumns(ctx, "artists")
	if err != nil {
		return err
	}
	for _, m := range columnMigrations {
		if _, ok := existing[m.column]; ok {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE artists ADD COLUMN %s %s", m.column, m.definition)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s: %w", m.column, err)
		}
	}
	return nil
}

func (s *Store) tableColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]struct{})
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal any
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &primaryKey); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		columns[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}
