// internal/workers/statement/parse-statement/parsers/monex.go
package parsers

// monexParser scans Monex business statements. Monex mixes FX and
// investment sweep rows into the account table; the extended ignore list
// filters those before classification.
type monexParser struct {
	cfg lineScanConfig
}

func newMonexParser() *monexParser {
	return &monexParser{cfg: lineScanConfig{
		incomeKeywords: []string{
			"ABONO",
			"DEPOSITO",
			"SPEI RECIBIDO",
			"TRANSFERENCIA RECIBIDA",
			"RECEPCION",
		},
		dropLastAmount: true,
		minAmount:      0.01,
		opts: classifyOptions{
			ignore: append([]string{
				"COMPRA VENTA DE DIVISAS",
				"LIQUIDACION DE INVERSION",
				"POSICION",
			}, kwIgnore...),
		},
	}}
}

func (p *monexParser) Institution() string { return InstitutionMonex }

func (p *monexParser) Parse(pages []string) (*Result, error) {
	res := runLineScan(pages, p.cfg)
	res.Period = extractPeriod(pages)
	res.Balance = extractLabeledBalance(pages)
	return res, nil
}
