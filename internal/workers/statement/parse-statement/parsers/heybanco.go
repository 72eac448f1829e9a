// internal/workers/statement/parse-statement/parsers/heybanco.go
package parsers

// heyBancoParser reads Hey Banco movement rows through the balance
// delta. Credit products (automotriz, tarjeta) share the document with
// the deposit account, so the credit family is broadened and loan
// payments count as internal movements. Statements that state no
// average balance get a day-weighted average instead.
type heyBancoParser struct {
	opts classifyOptions
}

func newHeyBancoParser() *heyBancoParser {
	return &heyBancoParser{opts: classifyOptions{
		selfTransfers: []string{
			"TRASPASO",
			"CUENTAS PROPIAS",
			"MISMA CUENTA",
			"CUENTA PROPIA",
			"ENVIADO A CUENTA",
			"PAGO CAPITAL",
			"PAGO INTERES",
			"INVERSION",
			"MERCADO DE DINERO",
			"TEF",
		},
		creditDisp: []string{
			"DISPOSICION",
			"CREDITO",
			"PRESTAMO",
			"FINANCIAMIENTO",
			"LINEA DE CREDITO",
			"AUTOMOTRIZ",
			"TARJETA DE CREDITO",
		},
	}}
}

func (p *heyBancoParser) Institution() string { return InstitutionHeyBanco }

func (p *heyBancoParser) Parse(pages []string) (*Result, error) {
	res := runTableMath(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	} else if avg := weightedAverageBalance(res.observations); avg != nil {
		res.Balance = avg
	}
	return res, nil
}
