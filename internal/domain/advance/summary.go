package advance

import (
	"time"

	"github.com/shopspring/decimal"

	"adelanta/internal/domain/entity"
)

// MonthTotal aggregates the advances created in one calendar month.
type MonthTotal struct {
	Month          time.Month      `json:"month"`
	Count          int             `json:"count"`
	RequestedTotal decimal.Decimal `json:"requested_total"`
	Total          decimal.Decimal `json:"total"`
}

// MonthlySummary buckets advances by the UTC month they were created
// in, for the given year. Denied and cancelled requests are excluded;
// they never reach payroll. Always returns twelve buckets, January
// first.
func MonthlySummary(advances []*entity.Advance, year int) []MonthTotal {
	totals := make([]MonthTotal, 12)
	for i := range totals {
		totals[i] = MonthTotal{
			Month:          time.Month(i + 1),
			RequestedTotal: decimal.Zero,
			Total:          decimal.Zero,
		}
	}

	for _, adv := range advances {
		if adv.Status == entity.AdvanceDenied || adv.Status == entity.AdvanceCancelled {
			continue
		}

		at := time.UnixMilli(adv.CreatedAt).UTC()
		if at.Year() != year {
			continue
		}

		bucket := &totals[int(at.Month())-1]
		bucket.Count++
		bucket.RequestedTotal = bucket.RequestedTotal.Add(adv.RequestedAmount)
		bucket.Total = bucket.Total.Add(adv.TotalAmount)
	}
	return totals
}
