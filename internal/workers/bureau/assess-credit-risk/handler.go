// internal/workers/bureau/assess-credit-risk/handler.go
package assesscreditrisk

import (
	"context"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

const TaskType = "assess-credit-risk"

// MOP code buckets. Codes 0, U and * are placeholders with no payment
// information and are excluded before counting.
var (
	mopHighRisk = map[rune]bool{'5': true, '6': true, '7': true, '9': true}
	mopModerate = map[rune]bool{'3': true, '4': true}
	mopGood     = map[rune]bool{'1': true, '2': true}
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

// Execute grades payment behavior per account and overall. No detail data
// yields the explicit "No disponible" tier, never a default grade.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	details := input.Report.DetalleCreditos
	if len(details) == 0 {
		h.logger.Warn("no credit detail data for risk assessment", nil)
		return &Output{Assessment: models.RiskAssessment{
			NivelGeneral: models.RiskUnavailable,
		}}, nil
	}

	assessment := models.RiskAssessment{NivelGeneral: models.RiskGood}
	for _, d := range details {
		risk := h.assessAccount(d)
		assessment.Cuentas = append(assessment.Cuentas, risk)

		if risk.Nivel == models.RiskHigh {
			assessment.CuentasMOPRiesgo = append(assessment.CuentasMOPRiesgo, d.Otorgante)
		}
		assessment.NivelGeneral = worstTier(assessment.NivelGeneral, risk.Nivel)
	}

	h.logger.Info("risk assessed", map[string]interface{}{
		"accounts": len(details),
		"overall":  assessment.NivelGeneral,
	})
	return &Output{Assessment: assessment}, nil
}

func (h *Handler) assessAccount(d models.CreditDetailEntry) models.AccountRisk {
	risk := models.AccountRisk{Otorgante: d.Otorgante}
	for _, c := range d.MOPSequence {
		switch {
		case mopHighRisk[c]:
			risk.PagosAltos++
		case mopModerate[c]:
			risk.PagosModerado++
		case mopGood[c]:
			risk.PagosBuenos++
		}
	}

	threshold := h.config.HighRiskThreshold
	switch {
	case risk.PagosAltos >= threshold:
		risk.Nivel = models.RiskHigh
	case risk.PagosModerado >= threshold:
		risk.Nivel = models.RiskModerate
	default:
		risk.Nivel = models.RiskGood
	}
	return risk
}

func tierRank(tier string) int {
	switch tier {
	case models.RiskHigh:
		return 2
	case models.RiskModerate:
		return 1
	default:
		return 0
	}
}

func worstTier(a, b string) string {
	if tierRank(b) > tierRank(a) {
		return b
	}
	return a
}
