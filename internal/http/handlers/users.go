package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// UsersList serves the admin user picker: optional search over name/email,
// bounded page size.
func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	limit := queryInt(r, "limit", 50)
	if limit > 200 {
		limit = 200
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}

	users, err := a.Users.List(r.Context(), search, limit, offset)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]userResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (a *App) UserSetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if id == a.currentUserID(r) && !req.Active {
		a.error(w, http.StatusBadRequest, "bad_request", "cannot deactivate own account")
		return
	}
	if err := a.Users.SetActive(r.Context(), id, req.Active); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "active": req.Active})
}

func (a *App) UserDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == a.currentUserID(r) {
		a.error(w, http.StatusBadRequest, "bad_request", "cannot delete own account here")
		return
	}
	if err := a.Users.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
