// internal/workers/statement/aggregate-profile/handler.go
package aggregateprofile

import (
	"context"

	"credit-pipeline/internal/common/errors"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

const TaskType = "aggregate-profile"

// Evaluation labels surfaced to downstream consumers.
const (
	EvaluationSolid  = "Perfil financiero sólido"
	EvaluationMedium = "Perfil financiero medio"
	EvaluationWeak   = "Perfil financiero débil"
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

// Execute averages the successful statements of a batch into a monthly
// profile. Zero successful statements is a distinct terminal outcome
// (ErrNoUsableData), never a zero-valued profile.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	var (
		months       int
		incomeTotal  float64
		balanceTotal float64
		balanceCount int
		overdrafts   int
	)

	for _, r := range input.Results {
		if !r.Success {
			continue
		}
		months++
		incomeTotal += r.Income
		overdrafts += r.Overdrafts
		if r.Balance != nil {
			balanceTotal += *r.Balance
			balanceCount++
		}
	}

	if months == 0 {
		h.logger.Warn("no usable statements in batch", map[string]interface{}{
			"documents": len(input.Results),
		})
		return nil, errors.ErrNoUsableData
	}

	avgIncome := incomeTotal / float64(months)
	avgBalance := 0.0
	if balanceCount > 0 {
		avgBalance = balanceTotal / float64(balanceCount)
	}

	profile := models.MonthlyFinancialProfile{
		PromedioDepositos: avgIncome,
		SaldoPromedio:     avgBalance,
		IngresosPromedio:  avgIncome,
		Evaluacion:        h.evaluate(avgIncome, avgBalance),
		MesesAnalizados:   months,
		Sobregiros:        overdrafts,
	}

	h.logger.Info("profile aggregated", map[string]interface{}{
		"months":     months,
		"avgIncome":  avgIncome,
		"avgBalance": avgBalance,
		"overdrafts": overdrafts,
		"evaluation": profile.Evaluacion,
	})
	return &Output{Profile: profile}, nil
}

func (h *Handler) evaluate(avgIncome, avgBalance float64) string {
	switch {
	case avgIncome > h.config.SolidIncomeThreshold && avgBalance > h.config.SolidBalanceThreshold:
		return EvaluationSolid
	case avgIncome > h.config.MediumIncomeThreshold:
		return EvaluationMedium
	default:
		return EvaluationWeak
	}
}
