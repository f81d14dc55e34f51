package service

import (
	"context"
	"fmt"
	"time"

	"surfsup-server/internal/modules/climate/repository"
	"surfsup-server/internal/modules/climate/types"
)

// ErrNoData is returned when a query legitimately matched nothing.
var ErrNoData = repository.ErrNoData

// lookback is "one year" before the most recent observation. Leap years are
// not special-cased.
const lookback = 365 * 24 * time.Hour

// ActiveStationTemps holds the most active station and its observations for
// the final year of data.
type ActiveStationTemps struct {
	StationID    string
	Observations []types.TemperatureObservation
}

type Service struct {
	repository repository.ClimateRepository
}

func NewService(repository repository.ClimateRepository) *Service {
	return &Service{repository: repository}
}

// YearStart returns the inclusive start of the final year of data.
func (s *Service) YearStart(ctx context.Context) (time.Time, error) {
	latest, err := s.repository.MostRecentDate(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return latest.Add(-lookback), nil
}

func (s *Service) PrecipitationLastYear(ctx context.Context) ([]types.Precipitation, error) {
	since, err := s.YearStart(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.repository.PrecipitationSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("precipitation since %s: %w", since.Format(time.DateOnly), err)
	}
	return rows, nil
}

func (s *Service) StationIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repository.StationIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("station ids: %w", err)
	}
	return ids, nil
}

// MostActiveStationTemps picks the station with the most measurements (ties
// are resolved by the store, not here) and returns its final-year observations.
func (s *Service) MostActiveStationTemps(ctx context.Context) (ActiveStationTemps, error) {
	stationID, err := s.repository.MostActiveStation(ctx)
	if err != nil {
		return ActiveStationTemps{}, err
	}
	since, err := s.YearStart(ctx)
	if err != nil {
		return ActiveStationTemps{}, err
	}
	obs, err := s.repository.TemperaturesSince(ctx, stationID, since)
	if err != nil {
		return ActiveStationTemps{}, fmt.Errorf("temperatures for %s: %w", stationID, err)
	}
	return ActiveStationTemps{StationID: stationID, Observations: obs}, nil
}

// TempStatsForRange aggregates from start, through end when end is non-nil.
func (s *Service) TempStatsForRange(ctx context.Context, start time.Time, end *time.Time) (types.TemperatureStats, error) {
	if end == nil {
		return s.repository.TemperatureStatsFrom(ctx, start)
	}
	return s.repository.TemperatureStatsBetween(ctx, start, *end)
}
