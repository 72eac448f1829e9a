// internal/workers/statement/parse-statement/parsers/banamex.go
package parsers

type banamexParser struct {
	opts classifyOptions
}

func newBanamexParser() *banamexParser {
	// Banamex prints "DEPOSITO POR DEVOLUCION" for merchant refunds paid
	// back to the account holder; those are reversals, not income.
	return &banamexParser{opts: classifyOptions{
		reversals: append([]string{"DEPOSITO POR DEVOLUCION"}, kwReversals...),
	}}
}

func (p *banamexParser) Institution() string { return InstitutionBanamex }

func (p *banamexParser) Parse(pages []string) (*Result, error) {
	res := runBalanceWalk(pages, p.opts, 0.01)
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	}
	return res, nil
}
