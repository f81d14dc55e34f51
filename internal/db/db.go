package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"surfsup-server/internal/config"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Open opens the dataset read-only. It never creates the file: a missing
// dataset is a startup error, not an empty database.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.LogQueries && cfg.Driver == "sqlite3" {
		connector, err := NewQueryLogConnector(dsn, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("db connector: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		if cfg.LogQueries {
			slog.Warn("query logging is only available with the sqlite3 driver", "driver", cfg.Driver)
		}
		db, err = sql.Open(cfg.Driver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	path := cfg.Path
	if path == "" {
		return "", errors.New("dataset path is empty")
	}
	if !strings.HasPrefix(path, "file:") {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("dataset %s not found", path)
			}
			return "", fmt.Errorf("stat dataset %s: %w", path, err)
		}
	}

	params, err := readOnlyParams(cfg.Driver)
	if err != nil {
		return "", err
	}

	// Callers may pass "file:/data/hawaii.sqlite?x=y"; append rather than re-wrap.
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}

// readOnlyParams returns the URI parameters that open the file read-only and
// reject writes on every connection, in each driver's own syntax.
func readOnlyParams(driver string) ([]string, error) {
	switch driver {
	case "sqlite3":
		return []string{
			"mode=ro",
			"_query_only=on",
			"_busy_timeout=5000",
		}, nil
	case "sqlite":
		return []string{
			"mode=ro",
			"_pragma=query_only(1)",
			"_pragma=busy_timeout(5000)",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
