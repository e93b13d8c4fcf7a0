package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikbrunner/nexus/internal/library"
)

const maxBodyBytes = 1 << 20

// persistWarning is sent when a change was applied in memory but could not
// be written to storage.
const persistWarning = `199 nexus "change applied but not persisted"`

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// persisted turns a save failure into a Warning header. Any other error is
// returned unchanged.
func persisted(w http.ResponseWriter, err error) error {
	if errors.Is(err, library.ErrPersist) {
		w.Header().Set("Warning", persistWarning)
		return nil
	}
	return err
}
