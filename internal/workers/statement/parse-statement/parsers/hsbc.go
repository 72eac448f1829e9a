// internal/workers/statement/parse-statement/parsers/hsbc.go
package parsers

// hsbcParser scans for deposit wording line by line. HSBC repeats rows
// across page boundaries, so (day, amount) pairs are deduplicated.
type hsbcParser struct {
	cfg lineScanConfig
}

func newHSBCParser() *hsbcParser {
	return &hsbcParser{cfg: lineScanConfig{
		incomeKeywords: []string{
			"ABONO",
			"DEPOSITO",
			"SPEI RECIBIDO",
			"TRANSFERENCIA RECIBIDA",
			"TRANSF RECIBIDA",
		},
		dropLastAmount: true,
		dedupeByDay:    true,
		minAmount:      0.01,
	}}
}

func (p *hsbcParser) Institution() string { return InstitutionHSBC }

func (p *hsbcParser) Parse(pages []string) (*Result, error) {
	res := runLineScan(pages, p.cfg)
	res.Period = extractPeriod(pages)
	res.Balance = extractLabeledBalance(pages)
	return res, nil
}
