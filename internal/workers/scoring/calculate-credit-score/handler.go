// internal/workers/scoring/calculate-credit-score/handler.go
package calculatecreditscore

import (
	"context"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

const TaskType = "calculate-credit-score"

// Score tiers with their guidance messages.
const (
	LevelExcellent = "Excelente"
	LevelGood      = "Bueno"
	LevelLow       = "Bajo"

	MessageExcellent = "Alta probabilidad de aprobación rápida."
	MessageGood      = "Aprobable con revisión manual estándar."
	MessageLow       = "Se requiere aval o garantía adicional."
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

// Execute computes the rule-based creditworthiness score. Deterministic:
// the same profile always yields the same score, tier and capacity.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.Profile
	income := profile.IngresosPromedio
	balance := profile.SaldoPromedio

	// free cash flow is income minus outflow; without outflow tracking
	// the net income itself is the proxy
	cashFlow := income
	if input.AverageOutflow != nil {
		cashFlow = income - *input.AverageOutflow
	}

	score := 0
	switch {
	case income > 0 && cashFlow > 0.20*income:
		score += 40
	case cashFlow > 0:
		score += 20
	}

	switch {
	case balance > h.config.HighBalanceThreshold:
		score += 30
	case balance > h.config.MediumBalanceThreshold:
		score += 15
	}

	switch {
	case income > h.config.HighIncomeThreshold:
		score += 30
	case income > h.config.MediumIncomeThreshold:
		score += 15
	}

	score -= profile.Sobregiros * h.config.OverdraftPenalty

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	capacity := cashFlow * h.config.CapacityRate
	if capacity < 0 {
		capacity = 0
	}

	level, message := h.tier(score)
	result := models.FinancialScore{
		Score:                score,
		Nivel:                level,
		Mensaje:              message,
		CapacidadPagoMensual: capacity,
		CashFlow:             cashFlow,
	}

	h.logger.Info("credit score calculated", map[string]interface{}{
		"score":    score,
		"nivel":    level,
		"cashFlow": cashFlow,
	})
	return &Output{Score: result}, nil
}

func (h *Handler) tier(score int) (string, string) {
	switch {
	case score >= 80:
		return LevelExcellent, MessageExcellent
	case score >= 50:
		return LevelGood, MessageGood
	default:
		return LevelLow, MessageLow
	}
}
