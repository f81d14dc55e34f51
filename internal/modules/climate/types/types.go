package types

// Station is one row of the station table.
type Station struct {
	ID        string  `json:"station"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Measurement is one dated observation. Prcp is nil when precipitation was not recorded.
type Measurement struct {
	StationID   string   `json:"station"`
	Date        string   `json:"date"`
	Prcp        *float64 `json:"prcp"`
	Temperature float64  `json:"tobs"`
}

type Precipitation struct {
	Date string
	Prcp *float64
}

type TemperatureObservation struct {
	Date        string
	Temperature float64
}

// TemperatureStats is the MIN/AVG/MAX aggregate over a date window. Avg is unrounded.
type TemperatureStats struct {
	Min float64
	Avg float64
	Max float64
}
