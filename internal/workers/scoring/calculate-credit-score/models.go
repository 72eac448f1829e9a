// internal/workers/scoring/calculate-credit-score/models.go
package calculatecreditscore

import "credit-pipeline/internal/models"

type Input struct {
	Profile models.MonthlyFinancialProfile `json:"profile"`
	// AverageOutflow is optional; when untracked the cash flow falls
	// back to a proxy from net income.
	AverageOutflow *float64 `json:"average_outflow,omitempty"`
}

type Output struct {
	Score models.FinancialScore `json:"score"`
}
