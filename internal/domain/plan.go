package domain

import "time"

// BillingCycle enumerates supported billing cadences.
type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the known values.
func (c BillingCycle) Valid() bool {
	return c == BillingCycleMonthly || c == BillingCycleQuarterly || c == BillingCycleYearly
}

// Plan is immutable reference data consumed by subscriptions and reporting.
type Plan struct {
	ID           string
	Name         string
	Type         string
	Price        float64
	BillingCycle BillingCycle
	CreatedAt    time.Time
}

// MonthlyPrice normalizes the plan price to a monthly cadence.
func (p Plan) MonthlyPrice() float64 {
	return NormalizeMonthly(p.Price, p.BillingCycle)
}

// NormalizeMonthly converts a price in the given billing cycle to its monthly
// equivalent. Unknown cycles are treated as monthly.
func NormalizeMonthly(price float64, cycle BillingCycle) float64 {
	switch cycle {
	case BillingCycleQuarterly:
		return price / 3
	case BillingCycleYearly:
		return price / 12
	default:
		return price
	}
}
