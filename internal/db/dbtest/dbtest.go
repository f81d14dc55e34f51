// Package dbtest builds throwaway climate datasets for tests. The schema
// mirrors the published hawaii.sqlite layout so the same files exercise the
// production open path.
package dbtest

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"surfsup-server/internal/modules/climate/types"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/schema.sql
var Schema string

type Fixture struct {
	Stations     []types.Station
	Measurements []types.Measurement
}

func Float(v float64) *float64 { return &v }

// Hawaii is a small dataset shaped like the real one: the most recent date is
// 2017-08-23 and USC00519281 has the most measurements.
func Hawaii() Fixture {
	return Fixture{
		Stations: []types.Station{
			{ID: "USC00519397", Name: "WAIKIKI 717.2, HI US", Latitude: 21.2716, Longitude: -157.8168, Elevation: 3.0},
			{ID: "USC00513117", Name: "KANEOHE 838.1, HI US", Latitude: 21.4234, Longitude: -157.8015, Elevation: 14.6},
			{ID: "USC00519281", Name: "WAIHEE 837.5, HI US", Latitude: 21.45167, Longitude: -157.84889, Elevation: 32.9},
			{ID: "USC00516128", Name: "MANOA LYON ARBO 785.2, HI US", Latitude: 21.3331, Longitude: -157.8025, Elevation: 152.4},
		},
		Measurements: []types.Measurement{
			{StationID: "USC00519281", Date: "2010-10-09", Prcp: Float(0.1), Temperature: 60},
			{StationID: "USC00519281", Date: "2010-10-10", Prcp: Float(0.0), Temperature: 62},
			{StationID: "USC00519281", Date: "2016-08-22", Prcp: nil, Temperature: 70},
			{StationID: "USC00519281", Date: "2016-08-23", Prcp: Float(0.05), Temperature: 76},
			{StationID: "USC00519281", Date: "2017-01-01", Prcp: Float(0.0), Temperature: 68},
			{StationID: "USC00519281", Date: "2017-08-23", Prcp: Float(0.45), Temperature: 77},

			{StationID: "USC00519397", Date: "2010-12-24", Prcp: Float(0.0), Temperature: 70},
			{StationID: "USC00519397", Date: "2010-12-25", Prcp: Float(0.2), Temperature: 71},
			{StationID: "USC00519397", Date: "2016-09-01", Prcp: Float(0.02), Temperature: 80},
			{StationID: "USC00519397", Date: "2017-08-23", Prcp: Float(0.0), Temperature: 81},

			{StationID: "USC00513117", Date: "2010-11-15", Prcp: nil, Temperature: 65},
			{StationID: "USC00513117", Date: "2017-08-22", Prcp: Float(0.5), Temperature: 75},
		},
	}
}

// SeedSQL renders the fixture as INSERT statements, usable both through
// database/sql and through the sqlite3 command line shell.
func SeedSQL(f Fixture) string {
	var b strings.Builder
	for i, s := range f.Stations {
		fmt.Fprintf(&b, "INSERT INTO station (id, station, name, latitude, longitude, elevation) VALUES (%d, %s, %s, %s, %s, %s);\n",
			i+1, quote(s.ID), quote(s.Name), num(s.Latitude), num(s.Longitude), num(s.Elevation))
	}
	for i, m := range f.Measurements {
		prcp := "NULL"
		if m.Prcp != nil {
			prcp = num(*m.Prcp)
		}
		fmt.Fprintf(&b, "INSERT INTO measurement (id, station, date, prcp, tobs) VALUES (%d, %s, %s, %s, %s);\n",
			i+1, quote(m.StationID), quote(m.Date), prcp, num(m.Temperature))
	}
	return b.String()
}

// Open returns a writable database holding the schema and f, backed by a file
// in t.TempDir so every pooled connection sees the same data.
func Open(t *testing.T, f Fixture) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	db := create(t, path, f)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

// WriteFile creates a dataset file holding f and returns its path.
func WriteFile(t *testing.T, f Fixture) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	db := create(t, path, f)
	if err := db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	return path
}

func create(t *testing.T, path string, f Fixture) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		t.Fatalf("exec schema: %v", err)
	}
	if seed := SeedSQL(f); seed != "" {
		if _, err := db.Exec(seed); err != nil {
			_ = db.Close()
			t.Fatalf("exec seed: %v", err)
		}
	}
	return db
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
