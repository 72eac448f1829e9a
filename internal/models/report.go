package models

import "time"

// AnalysisReport is the document persisted once per run, keyed by
// applicant. It flattens the profile and score so downstream consumers
// see the exact field names they depend on.
type AnalysisReport struct {
	ApplicantID string `json:"applicant_id"`

	MonthlyFinancialProfile
	FinancialScore

	Resultados []MatchResult `json:"resultados"`

	Estados []StatementResult   `json:"estados_cuenta,omitempty"`
	Buro    *CreditBureauReport `json:"buro,omitempty"`
	Riesgo  *RiskAssessment     `json:"riesgo_buro,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal batch outcomes reported via notifications.
const (
	EventAnalysisCompleted = "ANALISIS_COMPLETADO"
	EventAnalysisNoResults = "ANALISIS_SIN_RESULTADOS"
	EventAnalysisError     = "ERROR_ANALISIS"
	EventSystemError       = "ERROR_SISTEMA"
	EventPerfectMatch      = "MATCH_PERFECTO"
)
