// internal/workers/statement/parse-statement/parsers/bancoppel.go
package parsers

// banCoppelParser scans for BanCoppel's deposit wording. Egress rows
// share the table, so rows with withdrawal wording are skipped outright
// before amount extraction.
type banCoppelParser struct {
	cfg lineScanConfig
}

func newBanCoppelParser() *banCoppelParser {
	return &banCoppelParser{cfg: lineScanConfig{
		incomeKeywords: []string{
			"DEPOSITO",
			"ABONO",
			"SPEI RECIBIDO",
			"TRANSFERENCIA RECIBIDA",
			"PAGO RECIBIDO",
		},
		dropLastAmount: true,
		minAmount:      0.01,
		opts: classifyOptions{
			ignore: append([]string{
				"RETIRO",
				"CARGO",
				"COMPRA",
				"PAGO DE SERVICIO",
			}, kwIgnore...),
		},
	}}
}

func (p *banCoppelParser) Institution() string { return InstitutionBanCoppel }

func (p *banCoppelParser) Parse(pages []string) (*Result, error) {
	res := runLineScan(pages, p.cfg)
	res.Period = extractPeriod(pages)
	res.Balance = extractLabeledBalance(pages)
	return res, nil
}
