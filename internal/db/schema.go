package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// Table names a table and the columns the service reads from it.
type Table struct {
	Name    string
	Columns []string
}

// VerifySchema checks that every table exists and carries the listed columns.
// The dataset is built elsewhere; this only guards against pointing the
// service at the wrong file.
func VerifySchema(ctx context.Context, db *sql.DB, tables ...Table) error {
	for _, t := range tables {
		have, err := tableColumns(ctx, db, t.Name)
		if err != nil {
			return fmt.Errorf("inspect table %s: %w", t.Name, err)
		}
		if len(have) == 0 {
			return fmt.Errorf("table %s not found", t.Name)
		}
		var missing []string
		for _, c := range t.Columns {
			if !have[strings.ToLower(c)] {
				missing = append(missing, c)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("table %s missing columns: %s", t.Name, strings.Join(missing, ", "))
		}
		slog.Debug("schema verified", "table", t.Name, "columns", len(have))
	}
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	// PRAGMA arguments cannot be bound; the table function form can.
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close table info rows", "table", table, "error", err)
		}
	}()
	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[strings.ToLower(name)] = true
	}
	return out, rows.Err()
}
