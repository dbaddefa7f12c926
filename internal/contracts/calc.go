package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysPerMonth is the billing convention: one month counts as 30 days for
// line end dates, not calendar-accurate month arithmetic.
const daysPerMonth = 30

// LineTotal computes quantity x duration x rate minus discount, where rate is
// the monthly rate for MONTHLY lines and the daily rate otherwise. Negative
// results clamp to zero.
func LineTotal(quantity, duration int, durationType DurationType, dailyRate, monthlyRate, discount decimal.Decimal) decimal.Decimal {
	rate := dailyRate
	if durationType == DurationMonthly {
		rate = monthlyRate
	}
	total := rate.Mul(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(int64(duration))).
		Sub(discount).
		Round(2)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// LineEndDate derives the rental end from the start plus the billed duration.
func LineEndDate(start time.Time, duration int, durationType DurationType) time.Time {
	days := duration
	if durationType == DurationMonthly {
		days = duration * daysPerMonth
	}
	return start.AddDate(0, 0, days)
}

// ContractTotals aggregates line totals into the contract subtotal and the
// discount-adjusted grand total (subtotal + transport - discount, clamped to
// zero).
func ContractTotals(lines []ContractLine, transport, totalDiscount decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total)
	}
	total = subtotal.Add(transport).Sub(totalDiscount).Round(2)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return subtotal, total
}
