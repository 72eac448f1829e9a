// internal/workers/statement/aggregate-profile/models.go
package aggregateprofile

import "credit-pipeline/internal/models"

type Input struct {
	Results []models.StatementResult `json:"results"`
}

type Output struct {
	Profile models.MonthlyFinancialProfile `json:"profile"`
}
