package views

import (
	"math"
	"strconv"

	"surfsup-server/internal/modules/climate/types"
)

type PrecipitationJSON struct {
	Date string   `json:"date"`
	Prcp *float64 `json:"prcp"`
}

type TemperatureJSON struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
}

// OneDecimal marshals with exactly one digit after the point, so 73 is sent as 73.0.
type OneDecimal float64

func (d OneDecimal) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(d), 'f', 1, 64), nil
}

// StatsJSON is the start and start_end payload. EndDate is omitted for the
// start-only form.
type StatsJSON struct {
	StartDate string     `json:"start date"`
	EndDate   string     `json:"end date,omitempty"`
	TMin      float64    `json:"TMIN"`
	TAvg      OneDecimal `json:"TAVG"`
	TMax      float64    `json:"TMAX"`
}

type ErrorJSON struct {
	Error string `json:"error"`
}

func Precipitation(rows []types.Precipitation) []PrecipitationJSON {
	out := make([]PrecipitationJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, PrecipitationJSON{Date: r.Date, Prcp: r.Prcp})
	}
	return out
}

func Stations(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func Temperatures(rows []types.TemperatureObservation) []TemperatureJSON {
	out := make([]TemperatureJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, TemperatureJSON{Date: r.Date, Temperature: r.Temperature})
	}
	return out
}

// StartStats echoes the start date exactly as the client sent it.
func StartStats(start string, s types.TemperatureStats) StatsJSON {
	return StatsJSON{
		StartDate: start,
		TMin:      s.Min,
		TAvg:      OneDecimal(Round1(s.Avg)),
		TMax:      s.Max,
	}
}

func RangeStats(start, end string, s types.TemperatureStats) StatsJSON {
	out := StartStats(start, s)
	out.EndDate = end
	return out
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func NoData() ErrorJSON {
	return ErrorJSON{Error: "No data available."}
}

func NoDataForDate(start string) ErrorJSON {
	return ErrorJSON{Error: "No data found for the specified date " + start + "."}
}

func NoDataForRange(start, end string) ErrorJSON {
	return ErrorJSON{Error: "No data found for the specified date range " + start + " to " + end}
}
