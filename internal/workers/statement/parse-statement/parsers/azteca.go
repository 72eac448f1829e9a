// internal/workers/statement/parse-statement/parsers/azteca.go
package parsers

// aztecaParser reads the cargo/abono/saldo table of Banco Azteca
// statements. Azteca omits the average-balance summary on most accounts,
// so a day-weighted average over the period is computed from the
// running-balance observations instead.
type aztecaParser struct {
	opts classifyOptions
}

func newAztecaParser() *aztecaParser {
	return &aztecaParser{opts: classifyOptions{}}
}

func (p *aztecaParser) Institution() string { return InstitutionAzteca }

func (p *aztecaParser) Parse(pages []string) (*Result, error) {
	res := runTableMath(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	} else if avg := weightedAverageBalance(res.observations); avg != nil {
		res.Balance = avg
	}
	return res, nil
}
