package domain

import "time"

// UsageRecord is one append-only row of metered activity for a user.
type UsageRecord struct {
	ID        string
	UserID    string
	Day       time.Time
	DataUsed  float64
	AvgSpeed  float64
	PeakSpeed float64
	CreatedAt time.Time
}

// UsageSummary aggregates a set of usage records.
type UsageSummary struct {
	TotalDataUsed     float64 `json:"total_data_used"`
	AverageDailyUsage float64 `json:"average_daily_usage"`
	PeakUsage         float64 `json:"peak_usage"`
	AverageSpeed      float64 `json:"average_speed"`
}
