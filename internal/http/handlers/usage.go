package handlers

import (
	"net/http"
	"time"

	"subtrack/internal/domain"
)

type usageRecordResponse struct {
	ID        string  `json:"id"`
	Day       string  `json:"day"`
	DataUsed  float64 `json:"data_used"`
	AvgSpeed  float64 `json:"avg_speed"`
	PeakSpeed float64 `json:"peak_speed"`
}

func toUsageRecordResponse(u domain.UsageRecord) usageRecordResponse {
	return usageRecordResponse{
		ID:        u.ID,
		Day:       u.Day.Format(time.DateOnly),
		DataUsed:  u.DataUsed,
		AvgSpeed:  u.AvgSpeed,
		PeakSpeed: u.PeakSpeed,
	}
}

// UsageHistory returns the caller's recent usage records plus a summary
// computed over the same window.
func (a *App) UsageHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 30)
	if limit > 365 {
		limit = 365
	}
	history, summary, err := a.Analytics.UsageSummaryForUser(r.Context(), a.currentUserID(r), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]usageRecordResponse, 0, len(history))
	for _, u := range history {
		items = append(items, toUsageRecordResponse(u))
	}
	a.json(w, http.StatusOK, map[string]any{"usage_history": items, "summary": summary})
}
