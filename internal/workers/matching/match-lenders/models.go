// internal/workers/matching/match-lenders/models.go
package matchlenders

import "credit-pipeline/internal/models"

type Input struct {
	Applicant models.ApplicantProfile        `json:"applicant"`
	Profile   models.MonthlyFinancialProfile `json:"profile"`
	Lenders   []models.LenderCriteria        `json:"lenders"`
}

type Output struct {
	Results []models.MatchResult `json:"results"`
	// PerfectMatches lists the lenders whose tier reached "perfecto";
	// each one triggers an outbound lender notification.
	PerfectMatches []models.LenderCriteria `json:"-"`
}
