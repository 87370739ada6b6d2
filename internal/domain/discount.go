package domain

import "time"

// DiscountType enumerates how a discount value is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is an offer that can be attached to notifications. Read-only from
// the notification and aggregation core's perspective.
type Discount struct {
	ID        string
	Code      string
	Name      string
	Type      DiscountType
	Value     float64
	Active    bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Snapshot copies the fields embedded into notifications at send time.
func (d Discount) Snapshot() OfferSnapshot {
	return OfferSnapshot{
		ID:    d.ID,
		Code:  d.Code,
		Name:  d.Name,
		Type:  string(d.Type),
		Value: d.Value,
	}
}

// DiscountUsage is an append-only record of one applied discount event.
type DiscountUsage struct {
	ID             string
	UserID         string
	Code           string
	AmountBefore   float64
	DiscountAmount float64
	AmountAfter    float64
	AppliedAt      time.Time
}
