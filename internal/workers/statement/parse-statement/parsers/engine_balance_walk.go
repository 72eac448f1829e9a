// internal/workers/statement/parse-statement/parsers/engine_balance_walk.go
package parsers

import (
	"strings"

	"credit-pipeline/internal/models"
)

// runBalanceWalk extracts deposits by walking the running-balance column.
// Every movement row ends in the running balance; a positive delta against
// the previous row is a deposit. The delta must also appear verbatim among
// the row's amount tokens, which rejects rows where extraction glued two
// columns together.
func runBalanceWalk(pages []string, opts classifyOptions, minAmount float64) *Result {
	res := &Result{}
	var prevBalance *float64

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			upper := strings.ToUpper(line)
			amounts := findAmounts(line)

			// opening balance row seeds the walk
			if strings.Contains(upper, "SALDO ANTERIOR") && len(amounts) > 0 {
				seed := amounts[len(amounts)-1]
				prevBalance = &seed
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

			if prevBalance == nil {
				prevBalance = &balance
				continue
			}

			diff := balance - *prevBalance
			prevBalance = &balance

			if diff <= 0.1 {
				continue
			}
			if !rowContainsAmount(movementAmounts(amounts), diff) {
				continue
			}
			if diff < minAmount {
				continue
			}

			cat, isPOS := classify(upper, opts)
			res.record(models.Transaction{
				Description: strings.TrimSpace(line),
				Amount:      diff,
				Category:    cat,
				IsPOS:       isPOS,
			})
		}
	}

	if prevBalance != nil {
		res.Balance = prevBalance
	}
	return res
}

// balanceIsNegative checks whether the row's final amount token is printed
// with a minus sign. Amount parsing itself keeps values non-negative.
func balanceIsNegative(line string) bool {
	locs := amountRe.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return false
	}
	start := locs[len(locs)-1][0]
	for i := start - 1; i >= 0; i-- {
		switch line[i] {
		case ' ', '$':
			continue
		case '-':
			return true
		default:
			return false
		}
	}
	return false
}
