package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"subtrack/internal/domain"
)

type planResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Price        float64   `json:"price"`
	BillingCycle string    `json:"billing_cycle"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPlanResponse(p domain.Plan) planResponse {
	return planResponse{
		ID:           p.ID,
		Name:         p.Name,
		Type:         p.Type,
		Price:        p.Price,
		BillingCycle: string(p.BillingCycle),
		CreatedAt:    p.CreatedAt,
	}
}

func (a *App) PlansList(w http.ResponseWriter, r *http.Request) {
	plans, err := a.Plans.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type createPlanRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Price        float64 `json:"price"`
	BillingCycle string  `json:"billing_cycle"`
}

func (a *App) PlansCreate(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	if req.Price < 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "price must not be negative")
		return
	}
	cycle := domain.BillingCycle(req.BillingCycle)
	if !cycle.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "billing_cycle must be monthly, quarterly or yearly")
		return
	}
	plan, err := a.Plans.Create(r.Context(), &domain.Plan{
		Name:         req.Name,
		Type:         req.Type,
		Price:        req.Price,
		BillingCycle: cycle,
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"plan": toPlanResponse(*plan)})
}
