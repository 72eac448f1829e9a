// internal/workers/statement/parse-statement/parsers/engine_table.go
package parsers

import (
	"strings"

	"credit-pipeline/internal/models"
)

// runTableMath extracts deposits from cargo/abono/saldo column layouts.
// The balance delta against the previous row decides whether the movement
// column is a charge or a deposit; when the row carries all three columns
// the abono value itself is used so column-merge artifacts don't inflate
// the total.
func runTableMath(pages []string, opts classifyOptions, minAmount float64) *Result {
	res := &Result{}
	var prevBalance *float64
	var observations []balanceObservation

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			upper := strings.ToUpper(line)
			amounts := findAmounts(line)

			if strings.Contains(upper, "SALDO ANTERIOR") && len(amounts) > 0 {
				seed := amounts[len(amounts)-1]
				prevBalance = &seed
				observations = append(observations, balanceObservation{day: dayToken(line), balance: seed})
				continue
			}

			if len(amounts) < 2 {
				continue
			}
			if containsAny(upper, opts.ignoreKeywords()) {
				continue
			}

			balance := amounts[len(amounts)-1]
			if balanceIsNegative(line) {
				res.Overdrafts++
			}
			observations = append(observations, balanceObservation{day: dayToken(line), balance: balance})

			if prevBalance == nil {
				prevBalance = &balance
				continue
			}

			diff := balance - *prevBalance
			prevBalance = &balance

			if diff <= 0.1 {
				continue
			}

			amount := diff
			if len(amounts) >= 3 {
				// [..., cargo, abono, saldo]
				abono := amounts[len(amounts)-2]
				if amountsClose(abono, diff) {
					amount = abono
				} else if !rowContainsAmount(movementAmounts(amounts), diff) {
					continue
				}
			} else if !rowContainsAmount(movementAmounts(amounts), diff) {
				continue
			}

			if amount < minAmount {
				continue
			}

			cat, isPOS := classify(upper, opts)
			res.record(models.Transaction{
				Description: strings.TrimSpace(line),
				Amount:      amount,
				Category:    cat,
				IsPOS:       isPOS,
			})
		}
	}

	if prevBalance != nil {
		res.Balance = prevBalance
	}
	res.observations = observations
	return res
}

// balanceObservation is one (day, running balance) point used for the
// day-weighted average fallback.
type balanceObservation struct {
	day     int
	balance float64
}

// weightedAverageBalance computes a day-weighted balance over a 30-day
// period from running-balance observations. Each observed balance holds
// until the next observation day. Used when the statement states no
// average balance of its own.
func weightedAverageBalance(observations []balanceObservation) *float64 {
	var points []balanceObservation
	for _, o := range observations {
		if o.day >= 1 && o.day <= 31 {
			points = append(points, o)
		}
	}
	if len(points) == 0 {
		return nil
	}

	const periodDays = 30.0
	total := 0.0
	for i, p := range points {
		var span float64
		if i+1 < len(points) {
			span = float64(points[i+1].day - p.day)
			if span < 0 {
				span = 0
			}
		} else {
			span = periodDays + 1 - float64(p.day)
		}
		total += p.balance * span
	}
	avg := total / periodDays
	return &avg
}
