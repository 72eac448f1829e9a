// internal/workers/statement/parse-statement/parsers/engine_linescan.go
package parsers

import (
	"fmt"
	"strings"

	"credit-pipeline/internal/models"
)

// lineScanConfig drives the keyword line-scan engine used by statements
// without a reliable running-balance column.
type lineScanConfig struct {
	// incomeKeywords gate candidate rows; empty means every row with an
	// amount is a candidate.
	incomeKeywords []string
	// afterHeader skips everything before this header appears, for
	// layouts where the movement table starts mid-document.
	afterHeader string
	// dropLastAmount excludes the final token of multi-amount rows,
	// which is the running balance on those layouts.
	dropLastAmount bool
	// dedupeByDay suppresses repeated (day, amount) pairs.
	dedupeByDay bool
	minAmount   float64
	opts        classifyOptions
}

// runLineScan extracts deposits by scanning rows for income wording.
func runLineScan(pages []string, cfg lineScanConfig) *Result {
	res := &Result{}
	seen := make(map[string]bool)
	inTable := cfg.afterHeader == ""

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			upper := strings.ToUpper(line)

			if !inTable {
				if strings.Contains(upper, cfg.afterHeader) {
					inTable = true
				}
				continue
			}

			if len(cfg.incomeKeywords) > 0 && !containsAny(upper, cfg.incomeKeywords) {
				continue
			}
			if containsAny(upper, cfg.opts.ignoreKeywords()) {
				continue
			}

			amounts := findAmounts(line)
			if len(amounts) == 0 {
				continue
			}
			if cfg.dropLastAmount {
				amounts = movementAmounts(amounts)
				if len(amounts) == 0 {
					continue
				}
			}

			amount := amounts[0]
			if amount < cfg.minAmount {
				continue
			}

			if cfg.dedupeByDay {
				key := fmt.Sprintf("%d|%.2f", dayToken(line), amount)
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			cat, isPOS := classify(upper, cfg.opts)
			res.record(models.Transaction{
				Description: strings.TrimSpace(line),
				Amount:      amount,
				Category:    cat,
				IsPOS:       isPOS,
			})
		}
	}
	return res
}
