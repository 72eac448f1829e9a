// internal/workers/statement/parse-statement/parsers/afirme.go
package parsers

type afirmeParser struct {
	opts classifyOptions
}

func newAfirmeParser() *afirmeParser {
	return &afirmeParser{opts: classifyOptions{}}
}

func (p *afirmeParser) Institution() string { return InstitutionAfirme }

func (p *afirmeParser) Parse(pages []string) (*Result, error) {
	res := runBalanceWalk(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
