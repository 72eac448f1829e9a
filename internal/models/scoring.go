package models

// FinancialScore is the rule-based creditworthiness result. Always in
// [0,100] after clamping. Field names are consumed downstream and must
// not change.
type FinancialScore struct {
	Score                int     `json:"score"`
	Nivel                string  `json:"nivel"`
	Mensaje              string  `json:"mensaje"`
	CapacidadPagoMensual float64 `json:"capacidad_pago_mensual"`
	CashFlow             float64 `json:"cash_flow"`
}

// LenderCriteria is a lender's acceptance profile. Read-only to the
// pipeline; loaded from the lender catalog.
type LenderCriteria struct {
	ID               string  `json:"id"`
	Nombre           string  `json:"nombre"`
	Email            string  `json:"email,omitempty"`
	TipoPersona      string  `json:"tipo_persona"` // "fisica", "moral" or "ambas"
	MontoMinimo      float64 `json:"monto_minimo"`
	MontoMaximo      float64 `json:"monto_maximo"` // MaxFloat64 when open-ended
	DepositosMinimos float64 `json:"depositos_minimos"`
	SaldosPromediosM float64 `json:"saldos_promedios"`
	ScoreBuroMinimo  int     `json:"score_buro_minimo"`
	Region           string  `json:"region,omitempty"`
}

// Match tier labels.
const (
	TierPerfecto  = "perfecto"
	TierPotencial = "potencial"
	TierBajo      = "bajo"
)

// MatchResult is one (applicant, lender) comparison. A fresh set is
// produced each run; results are never mutated after computation.
type MatchResult struct {
	LenderID   string   `json:"financiera_id"`
	LenderName string   `json:"financiera"`
	Score      int      `json:"score"`
	Nivel      string   `json:"nivel"`
	Razones    []string `json:"razones,omitempty"`
}
