// internal/workers/statement/parse-statement/parsers/kapital.go
package parsers

import (
	"regexp"
	"strings"
)

// kapitalParser prefers the deposits summary block that Kapital Bank
// statements print before the movement table. When the summary is
// present it is authoritative for net income; the table then only
// contributes discard detail and balance observations. Statements
// without the summary fall back to the table math.
type kapitalParser struct {
	opts classifyOptions
}

var kapitalSummaryRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TRANSFERENCIAS\s+RECIBIDAS\s*\$?\s*([\d,]+\.\d{2})`),
	regexp.MustCompile(`(?i)OTROS\s+ABONOS\s+A\s+SU\s+CUENTA\s*\$?\s*([\d,]+\.\d{2})`),
	regexp.MustCompile(`(?i)INTERESES\s+GANADOS\s*\$?\s*([\d,]+\.\d{2})`),
}

func newKapitalParser() *kapitalParser {
	return &kapitalParser{opts: classifyOptions{}}
}

func (p *kapitalParser) Institution() string { return InstitutionKapital }

func (p *kapitalParser) Parse(pages []string) (*Result, error) {
	res := runTableMath(pages, p.opts, 0.01)
	if total, ok := kapitalSummaryIncome(pages); ok {
		res.Income = total
		res.GrossIncome = total + res.Discards.Sum()
	}
	res.Period = extractPeriod(pages)
	if b := extractLabeledBalance(pages); b != nil {
		res.Balance = b
	} else if avg := weightedAverageBalance(res.observations); avg != nil {
		res.Balance = avg
	}
	return res, nil
}

// kapitalSummaryIncome sums the deposit rows of the summary block.
// ok is false when none of the rows is present.
func kapitalSummaryIncome(pages []string) (float64, bool) {
	text := strings.Join(pages, "\n")
	total := 0.0
	found := false
	for _, re := range kapitalSummaryRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := parseAmountToken(m[1])
		if err != nil {
			continue
		}
		total += v
		found = true
	}
	return total, found
}
