// internal/workers/statement/parse-statement/parsers/keywords.go
package parsers

import "strings"

// Keyword families shared across institution strategies. Statements are
// uppercase Spanish; matching is done on uppercased row text.

// kwSelfTransfers marks money moved between the applicant's own accounts.
var kwSelfTransfers = []string{
	"TRASPASO ENTRE CUENTAS",
	"TRASPASO A CUENTA PROPIA",
	"CUENTAS PROPIAS",
	"MISMA CUENTA",
	"CUENTA PROPIA",
	"INVERSION",
	"MERCADO DE DINERO",
	"TEF",
}

// kwReversals marks refunds and cancelled charges.
var kwReversals = []string{
	"DEVOLUCION",
	"REVERSO",
	"CANCELACION",
	"RETORNO",
}

// kwCreditDispositions marks borrowed money entering the account.
var kwCreditDispositions = []string{
	"DISPOSICION",
	"CREDITO",
	"PRESTAMO",
	"FINANCIAMIENTO",
	"LINEA DE CREDITO",
}

// kwPOS marks card-terminal sales revenue. Not exclusive: a POS deposit
// still counts as income.
var kwPOS = []string{
	"TPV",
	"AFILIACION",
	"VENTA TERMINAL",
	"COMERCIOS",
	"CARGO POR TPV",
	"DEP POR TPV",
	"TERMINAL",
}

// kwCounterSignals override a self-transfer classification: a SPEI or cash
// deposit described with transfer wording is still third-party income.
var kwCounterSignals = []string{
	"SPEI",
	"EFECTIVO",
	"DEPOSITO EN EFECTIVO",
}

// kwIgnore covers summary, fee, tax and rate rows that are never
// movements regardless of amount.
var kwIgnore = []string{
	"TOTAL",
	"SALDO PROMEDIO",
	"SALDO ANTERIOR",
	"SALDO FINAL",
	"RESUMEN",
	"GAT",
	"TASA",
	"INTERES",
	"IMPUESTO",
	"ISR",
	"IVA",
	"COMISION",
	"RENDIMIENTO",
	"PROMEDIO",
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// firstMatch returns the earliest keyword position in text, or -1.
func firstMatch(text string, keywords []string) int {
	best := -1
	for _, kw := range keywords {
		if idx := strings.Index(text, kw); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}
