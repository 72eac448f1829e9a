// internal/workers/statement/parse-statement/parsers/mifel.go
package parsers

type mifelParser struct {
	opts classifyOptions
}

func newMifelParser() *mifelParser {
	return &mifelParser{opts: classifyOptions{}}
}

func (p *mifelParser) Institution() string { return InstitutionMifel }

func (p *mifelParser) Parse(pages []string) (*Result, error) {
	res := runTableMath(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
