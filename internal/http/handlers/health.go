package handlers

import (
	"net/http"
)

// Health is the liveness endpoint probed by deploy checks. It only reports
// the process as up; database reachability fails loudly at startup instead.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "subtrack"})
}
