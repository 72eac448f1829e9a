package models

// TransactionCategory is the single classification every parsed movement
// receives. A transaction belongs to exactly one category.
type TransactionCategory string

const (
	// CategoryIncome counts toward the monthly deposit total.
	CategoryIncome TransactionCategory = "ingreso"
	// CategorySelfTransfer is money moved between the applicant's own
	// accounts; excluded from income.
	CategorySelfTransfer TransactionCategory = "traspaso_propio"
	// CategoryReversal is a refund or cancelled charge; excluded.
	CategoryReversal TransactionCategory = "devolucion"
	// CategoryCreditDisposition is borrowed money entering the account;
	// excluded from organic income.
	CategoryCreditDisposition TransactionCategory = "disposicion_credito"
	// CategoryIgnored covers fee, tax, summary and other non-movement rows.
	CategoryIgnored TransactionCategory = "ignorada"
)

// Transaction is a single classified credit movement from a statement.
type Transaction struct {
	Date        string              `json:"fecha,omitempty"`
	Description string              `json:"descripcion"`
	Amount      float64             `json:"monto"`
	Category    TransactionCategory `json:"categoria"`
	// IsPOS marks card-terminal sales revenue. Orthogonal to Category:
	// a POS deposit still counts as income.
	IsPOS bool `json:"es_tpv,omitempty"`
}

// DiscardTotals breaks down credit movements excluded from net income,
// by exclusion category.
type DiscardTotals struct {
	SelfTransfers      float64 `json:"traspasos"`
	CreditDispositions float64 `json:"creditos"`
	Reversals          float64 `json:"devoluciones"`
}

// Sum returns the total amount discarded across all categories.
func (d DiscardTotals) Sum() float64 {
	return d.SelfTransfers + d.CreditDispositions + d.Reversals
}

// StatementResult is the outcome of parsing one bank statement. Failed
// documents keep their error here and are excluded from aggregation.
type StatementResult struct {
	FileName    string `json:"archivo"`
	Institution string `json:"banco"`
	Success     bool   `json:"exito"`
	Error       string `json:"error,omitempty"`
	// Income is net of discards; GrossIncome counts every classified
	// credit movement, so GrossIncome = Income + Discards.Sum().
	Income      float64       `json:"ingresos"`
	GrossIncome float64       `json:"ingresos_brutos"`
	POSIncome   float64       `json:"tpv"`
	Discards    DiscardTotals `json:"descartes"`
	// Balance is nil when no balance pattern was found in the document.
	Balance *float64 `json:"saldo,omitempty"`
	// Period is nil when the statement period could not be located.
	Period       *string       `json:"periodo,omitempty"`
	Overdrafts   int           `json:"sobregiros"`
	Transactions []Transaction `json:"movimientos,omitempty"`
}

// MonthlyFinancialProfile aggregates the successful statements of a batch.
// Field names are consumed downstream and must not change.
type MonthlyFinancialProfile struct {
	PromedioDepositos float64 `json:"promedio_depositos"`
	SaldoPromedio     float64 `json:"saldo_promedio"`
	IngresosPromedio  float64 `json:"ingresos_promedio"`
	Evaluacion        string  `json:"evaluacion"`
	MesesAnalizados   int     `json:"meses_analizados"`
	Sobregiros        int     `json:"sobregiros"`
}
