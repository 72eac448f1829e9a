// internal/workers/statement/parse-statement/parsers/banbajio.go
package parsers

type banBajioParser struct {
	opts classifyOptions
}

func newBanBajioParser() *banBajioParser {
	return &banBajioParser{opts: classifyOptions{}}
}

func (p *banBajioParser) Institution() string { return InstitutionBanBajio }

func (p *banBajioParser) Parse(pages []string) (*Result, error) {
	res := runBalanceWalk(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
