package controller

import (
	"context"
	"net/http"
	"time"

	"surfsup-server/internal/modules/climate/service"
	"surfsup-server/internal/modules/climate/types"
)

// ClimateService is the query surface the handlers need; *service.Service implements it.
type ClimateService interface {
	PrecipitationLastYear(ctx context.Context) ([]types.Precipitation, error)
	StationIDs(ctx context.Context) ([]string, error)
	MostActiveStationTemps(ctx context.Context) (service.ActiveStationTemps, error)
	TempStatsForRange(ctx context.Context, start time.Time, end *time.Time) (types.TemperatureStats, error)
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service ClimateService
}

func NewClimateController(service ClimateService) ClimateController {
	return &climateControllerImpl{service: service}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleIndex)
	mux.HandleFunc("GET /api/v1.0/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/v1.0/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1.0/tobs", c.handleTobs)
	mux.HandleFunc("GET /api/v1.0/start/{start}", c.handleStart)
	mux.HandleFunc("GET /api/v1.0/start_end/{span}", c.handleStartEnd)
}
