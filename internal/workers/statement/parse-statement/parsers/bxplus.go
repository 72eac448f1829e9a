// internal/workers/statement/parse-statement/parsers/bxplus.go
package parsers

// bxPlusParser walks the running-balance column of BX+ (Ve por Más)
// statements. BX+ labels nearly every internal movement with some
// TRASPASO variant, so the self-transfer family is broadened beyond the
// shared defaults.
type bxPlusParser struct {
	opts classifyOptions
}

func newBXPlusParser() *bxPlusParser {
	return &bxPlusParser{opts: classifyOptions{
		selfTransfers: []string{
			"TRASPASO",
			"CUENTAS PROPIAS",
			"MISMA CUENTA",
			"DE LA CUENTA",
			"INVERSION",
			"MERCADO DE DINERO",
			"TEF",
		},
	}}
}

func (p *bxPlusParser) Institution() string { return InstitutionBXPlus }

func (p *bxPlusParser) Parse(pages []string) (*Result, error) {
	res := runBalanceWalk(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
