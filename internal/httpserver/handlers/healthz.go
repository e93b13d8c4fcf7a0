package handlers

import (
	"net/http"
	"time"

	"github.com/nikbrunner/nexus/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Bookmarks     int     `json:"bookmarks"`
	Origin        string  `json:"origin"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(start).Seconds(),
			Version:       d.Version,
			Bookmarks:     len(d.Library.Bookmarks()),
			Origin:        d.Library.Origin().String(),
		})
	}
}
