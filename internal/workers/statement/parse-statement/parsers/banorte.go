// internal/workers/statement/parse-statement/parsers/banorte.go
package parsers

// banorteParser walks the running-balance column of Banorte statements.
type banorteParser struct {
	opts classifyOptions
}

func newBanorteParser() *banorteParser {
	return &banorteParser{opts: classifyOptions{}}
}

func (p *banorteParser) Institution() string { return InstitutionBanorte }

func (p *banorteParser) Parse(pages []string) (*Result, error) {
	res := runBalanceWalk(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
