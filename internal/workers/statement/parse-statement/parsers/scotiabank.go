// internal/workers/statement/parse-statement/parsers/scotiabank.go
package parsers

type scotiabankParser struct {
	opts classifyOptions
}

func newScotiabankParser() *scotiabankParser {
	return &scotiabankParser{opts: classifyOptions{}}
}

func (p *scotiabankParser) Institution() string { return InstitutionScotiabank }

func (p *scotiabankParser) Parse(pages []string) (*Result, error) {
	res := runBalanceWalk(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
