package httpapi

import (
	"net/http"

	"surfsup-server/internal/config"
)

func NewServer(config config.Config, mux *http.ServeMux) *http.Server {
	return &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           Handler(mux),
		ReadHeaderTimeout: config.HTTPReadHeaderTimeout,
	}
}
