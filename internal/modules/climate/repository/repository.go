package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"surfsup-server/internal/db"
	"surfsup-server/internal/modules/climate/types"
)

//go:embed sql/get-most-recent-date.sql
var getMostRecentDateSQL string

//go:embed sql/get-precipitation-since.sql
var getPrecipitationSinceSQL string

//go:embed sql/get-station-ids.sql
var getStationIDsSQL string

//go:embed sql/get-most-active-station.sql
var getMostActiveStationSQL string

//go:embed sql/get-temperatures-since.sql
var getTemperaturesSinceSQL string

//go:embed sql/get-temperature-stats-from.sql
var getTemperatureStatsFromSQL string

//go:embed sql/get-temperature-stats-between.sql
var getTemperatureStatsBetweenSQL string

// ErrNoData reports that an aggregate found no matching measurement rows.
var ErrNoData = errors.New("no data")

// Tables lists the columns the queries below read; checked once at startup.
var Tables = []db.Table{
	{Name: "station", Columns: []string{"station", "name", "latitude", "longitude", "elevation"}},
	{Name: "measurement", Columns: []string{"station", "date", "prcp", "tobs"}},
}

type ClimateRepository interface {
	MostRecentDate(ctx context.Context) (time.Time, error)
	PrecipitationSince(ctx context.Context, since time.Time) ([]types.Precipitation, error)
	StationIDs(ctx context.Context) ([]string, error)
	MostActiveStation(ctx context.Context) (string, error)
	TemperaturesSince(ctx context.Context, stationID string, since time.Time) ([]types.TemperatureObservation, error)
	TemperatureStatsFrom(ctx context.Context, start time.Time) (types.TemperatureStats, error)
	TemperatureStatsBetween(ctx context.Context, start, end time.Time) (types.TemperatureStats, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

// MostRecentDate returns ErrNoData when the measurement table is empty.
func (r *repositoryImpl) MostRecentDate(ctx context.Context) (time.Time, error) {
	var raw sql.NullString
	if err := r.db.QueryRowContext(ctx, getMostRecentDateSQL).Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("most recent date: %w", err)
	}
	if !raw.Valid {
		return time.Time{}, ErrNoData
	}
	d, err := parseDate(raw.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("most recent date: %w", err)
	}
	return d, nil
}

func (r *repositoryImpl) PrecipitationSince(ctx context.Context, since time.Time) ([]types.Precipitation, error) {
	rows, err := r.db.QueryContext(ctx, getPrecipitationSinceSQL, formatDate(since))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close precipitation rows", "error", err)
		}
	}()
	out := []types.Precipitation{}
	for rows.Next() {
		var (
			rec  types.Precipitation
			raw  string
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&raw, &prcp); err != nil {
			return nil, err
		}
		if rec.Date, err = normalizeDate(raw); err != nil {
			return nil, err
		}
		if prcp.Valid {
			v := prcp.Float64
			rec.Prcp = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) StationIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, getStationIDsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close station rows", "error", err)
		}
	}()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// MostActiveStation returns the station with the most measurement rows.
// Ties are not broken deterministically. ErrNoData when there are no measurements.
func (r *repositoryImpl) MostActiveStation(ctx context.Context) (string, error) {
	var (
		id    string
		count int
	)
	err := r.db.QueryRowContext(ctx, getMostActiveStationSQL).Scan(&id, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoData
	}
	if err != nil {
		return "", fmt.Errorf("most active station: %w", err)
	}
	return id, nil
}

func (r *repositoryImpl) TemperaturesSince(ctx context.Context, stationID string, since time.Time) ([]types.TemperatureObservation, error) {
	rows, err := r.db.QueryContext(ctx, getTemperaturesSinceSQL, stationID, formatDate(since))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperature rows", "error", err)
		}
	}()
	out := []types.TemperatureObservation{}
	for rows.Next() {
		var (
			rec types.TemperatureObservation
			raw string
		)
		if err := rows.Scan(&raw, &rec.Temperature); err != nil {
			return nil, err
		}
		if rec.Date, err = normalizeDate(raw); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) TemperatureStatsFrom(ctx context.Context, start time.Time) (types.TemperatureStats, error) {
	return r.temperatureStats(ctx, getTemperatureStatsFromSQL, formatDate(start))
}

// TemperatureStatsBetween aggregates over [start, end], both bounds inclusive.
func (r *repositoryImpl) TemperatureStatsBetween(ctx context.Context, start, end time.Time) (types.TemperatureStats, error) {
	return r.temperatureStats(ctx, getTemperatureStatsBetweenSQL, formatDate(start), formatDate(end))
}

// temperatureStats returns ErrNoData when MIN is NULL: the three aggregates
// come from one query, so they are all NULL or all set.
func (r *repositoryImpl) temperatureStats(ctx context.Context, query string, args ...any) (types.TemperatureStats, error) {
	var lo, avg, hi sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&lo, &avg, &hi); err != nil {
		return types.TemperatureStats{}, fmt.Errorf("temperature stats: %w", err)
	}
	if !lo.Valid {
		return types.TemperatureStats{}, ErrNoData
	}
	return types.TemperatureStats{Min: lo.Float64, Avg: avg.Float64, Max: hi.Float64}, nil
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func parseDate(s string) (time.Time, error) {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// normalizeDate trims any time suffix a driver or dataset attached to a stored date.
func normalizeDate(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return formatDate(t), nil
}
