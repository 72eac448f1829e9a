// internal/workers/matching/match-lenders/handler.go
package matchlenders

import (
	"context"
	"fmt"
	"strings"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

const TaskType = "match-lenders"

// Mismatch reasons surfaced on MatchResult.
const (
	ReasonEntityType      = "Tipo de persona no admitido"
	ReasonAmountOverLimit = "Monto excede límite"
	ReasonIncomeAdjusted  = "Ingresos ajustados"
	ReasonIncomeShort     = "Ingresos insuficientes"
	ReasonBureauScore     = "Score de buró por debajo del mínimo"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute scores the applicant against every lender. Each run produces a
// fresh result set; nothing here mutates prior state.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{Results: make([]models.MatchResult, 0, len(input.Lenders))}

	for _, lender := range input.Lenders {
		result := h.matchOne(input.Applicant, input.Profile, lender)
		out.Results = append(out.Results, result)
		if result.Nivel == models.TierPerfecto {
			out.PerfectMatches = append(out.PerfectMatches, lender)
		}
	}

	h.logger.Info("lenders matched", map[string]interface{}{
		"lenders":   len(input.Lenders),
		"perfect":   len(out.PerfectMatches),
		"requested": input.Applicant.MontoSolicitado,
	})
	return out, nil
}

func (h *Handler) matchOne(applicant models.ApplicantProfile, profile models.MonthlyFinancialProfile, lender models.LenderCriteria) models.MatchResult {
	result := models.MatchResult{
		LenderID:   lender.ID,
		LenderName: lender.Nombre,
	}

	// hard rejections zero the score no matter what else matches
	if !entityTypeAccepted(applicant.TipoPersona, lender.TipoPersona) {
		result.Score = 0
		result.Nivel = models.TierBajo
		result.Razones = []string{ReasonEntityType}
		return result
	}
	if applicant.MontoSolicitado > lender.MontoMaximo {
		result.Score = 0
		result.Nivel = models.TierBajo
		result.Razones = []string{ReasonAmountOverLimit}
		return result
	}

	score := h.config.ProfileWeight

	if applicant.MontoSolicitado >= lender.MontoMinimo {
		score += h.config.AmountWeight
	} else {
		// under the floor forfeits the amount weight but is not a
		// rejection; the lender still sees the request with a note
		result.Razones = append(result.Razones, fmt.Sprintf("Monto bajo (Mín: $%.0f)", lender.MontoMinimo))
	}

	requirement := lender.DepositosMinimos
	if lender.SaldosPromediosM > requirement {
		requirement = lender.SaldosPromediosM
	}
	income := profile.IngresosPromedio
	switch {
	case requirement <= 0 || income >= requirement:
		score += h.config.IncomeWeight
	case income >= h.config.IncomeToleranceRatio*requirement:
		score += h.config.IncomeWeight / 2
		result.Razones = append(result.Razones, ReasonIncomeAdjusted)
	default:
		result.Razones = append(result.Razones, ReasonIncomeShort)
	}

	if applicant.ScoreBuro >= lender.ScoreBuroMinimo {
		score += h.config.BureauWeight
	} else {
		result.Razones = append(result.Razones, ReasonBureauScore)
	}

	// region weight reserved, never awarded

	result.Score = score
	switch {
	case score >= h.config.PerfectThreshold:
		result.Nivel = models.TierPerfecto
	case score >= h.config.PotentialThreshold:
		result.Nivel = models.TierPotencial
	default:
		result.Nivel = models.TierBajo
	}
	return result
}

// entityTypeAccepted compares applicant and lender entity types; lenders
// accepting "ambas" take either.
func entityTypeAccepted(applicant, accepted string) bool {
	a := strings.ToLower(strings.TrimSpace(applicant))
	l := strings.ToLower(strings.TrimSpace(accepted))
	if l == "" || l == "ambas" || l == "ambos" {
		return true
	}
	return a == l
}
