package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"surfsup-server/internal/modules/climate/service"
	"surfsup-server/internal/modules/climate/views"
	"surfsup-server/internal/utils"
)

const indexTitle = "Hawaii Climate App"

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, &views.IndexData{Title: indexTitle, Routes: views.APIRoutes}); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("index: write response failed", "error", err)
	}
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.PrecipitationLastYear(r.Context())
	if err != nil {
		writeServiceError(w, r, err, views.NoData())
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.Precipitation(rows))
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	ids, err := c.service.StationIDs(r.Context())
	if err != nil {
		writeServiceError(w, r, err, views.NoData())
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.Stations(ids))
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	active, err := c.service.MostActiveStationTemps(r.Context())
	if err != nil {
		writeServiceError(w, r, err, views.NoData())
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.Temperatures(active.Observations))
}

func (c *climateControllerImpl) handleStart(w http.ResponseWriter, r *http.Request) {
	dr, err := parseStart(r.PathValue("start"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	stats, err := c.service.TempStatsForRange(r.Context(), dr.Start, nil)
	if err != nil {
		writeServiceError(w, r, err, views.NoDataForDate(dr.StartRaw))
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.StartStats(dr.StartRaw, stats))
}

func (c *climateControllerImpl) handleStartEnd(w http.ResponseWriter, r *http.Request) {
	dr, err := parseSpan(r.PathValue("span"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	stats, err := c.service.TempStatsForRange(r.Context(), dr.Start, dr.End)
	if err != nil {
		writeServiceError(w, r, err, views.NoDataForRange(dr.StartRaw, dr.EndRaw))
		return
	}
	utils.WriteJSON(w, http.StatusOK, views.RangeStats(dr.StartRaw, dr.EndRaw, stats))
}

// writeServiceError sends noData as a 404 for ErrNoData. Anything else is a
// store failure: logged in full, reported to the client generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, noData views.ErrorJSON) {
	if errors.Is(err, service.ErrNoData) {
		utils.WriteJSON(w, http.StatusNotFound, noData)
		return
	}
	slog.Error("climate query failed", "path", r.URL.Path, "error", err)
	utils.WriteError(w, http.StatusInternalServerError, "internal server error")
}
