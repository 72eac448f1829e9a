// internal/workers/statement/parse-statement/parsers/inbursa.go
package parsers

// inbursaParser reads the movement table that starts at the CONCEPTO
// header. Inbursa statements bury small promotional credits among the
// movements, so deposits under 100 pesos are discarded.
type inbursaParser struct {
	cfg lineScanConfig
}

func newInbursaParser() *inbursaParser {
	return &inbursaParser{cfg: lineScanConfig{
		incomeKeywords: []string{
			"ABONO",
			"DEPOSITO",
			"SPEI",
			"TRASPASO",
			"TRANSFERENCIA",
		},
		afterHeader:    "CONCEPTO",
		dropLastAmount: true,
		minAmount:      100,
	}}
}

func (p *inbursaParser) Institution() string { return InstitutionInbursa }

func (p *inbursaParser) Parse(pages []string) (*Result, error) {
	res := runLineScan(pages, p.cfg)
	res.Period = extractPeriod(pages)
	res.Balance = extractLabeledBalance(pages)
	return res, nil
}
