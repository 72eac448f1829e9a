// internal/workers/statement/parse-statement/parsers/parser.go
package parsers

import (
	"regexp"
	"strings"

	"credit-pipeline/internal/models"
)

// Result is what a strategy extracts from one statement. Document-level
// fields (file name, institution, success) are filled by the caller.
type Result struct {
	// Income is net deposits; GrossIncome includes the discarded
	// categories, so GrossIncome = Income + Discards.Sum().
	Income       float64
	GrossIncome  float64
	POSIncome    float64
	Discards     models.DiscardTotals
	Balance      *float64
	Period       *string
	Overdrafts   int
	Transactions []models.Transaction

	// observations back the day-weighted balance fallback used by the
	// table-layout strategies.
	observations []balanceObservation
}

// record appends a classified movement and folds its amount into the
// gross, net, POS and discard totals.
func (r *Result) record(tx models.Transaction) {
	r.Transactions = append(r.Transactions, tx)
	if tx.Category == models.CategoryIgnored {
		return
	}
	r.GrossIncome += tx.Amount
	switch tx.Category {
	case models.CategoryIncome:
		r.Income += tx.Amount
		if tx.IsPOS {
			r.POSIncome += tx.Amount
		}
	case models.CategorySelfTransfer:
		r.Discards.SelfTransfers += tx.Amount
	case models.CategoryCreditDisposition:
		r.Discards.CreditDispositions += tx.Amount
	case models.CategoryReversal:
		r.Discards.Reversals += tx.Amount
	}
}

// Parser is one institution's extraction strategy.
type Parser interface {
	Institution() string
	Parse(pages []string) (*Result, error)
}

// Registry maps institution identifiers to strategies.
type Registry struct {
	byInstitution map[string]Parser
}

// NewRegistry builds a registry with every supported institution.
func NewRegistry() *Registry {
	r := &Registry{byInstitution: make(map[string]Parser)}
	for _, p := range []Parser{
		newBanorteParser(),
		newHSBCParser(),
		newAztecaParser(),
		newBanamexParser(),
		newBanBajioParser(),
		newBanCoppelParser(),
		newScotiabankParser(),
		newAfirmeParser(),
		newInbursaParser(),
		newMercadoPagoParser(),
		newMifelParser(),
		newMonexParser(),
		newBXPlusParser(),
		newHeyBancoParser(),
		newKapitalParser(),
	} {
		r.byInstitution[p.Institution()] = p
	}
	return r
}

// Get returns the strategy for an institution identifier.
func (r *Registry) Get(institution string) (Parser, bool) {
	p, ok := r.byInstitution[strings.ToUpper(institution)]
	return p, ok
}

// Supported lists the registered institution identifiers.
func (r *Registry) Supported() []string {
	out := make([]string, 0, len(r.byInstitution))
	for k := range r.byInstitution {
		out = append(out, k)
	}
	return out
}

var (
	periodRe = regexp.MustCompile(`(?i)PERIODO\s*(?:DEL)?\s*[:.]?\s*(\d{1,2}[/-]\w{3,9}[/-]\d{2,4}\s*(?:AL?|-)\s*\d{1,2}[/-]\w{3,9}[/-]\d{2,4}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*(?:AL?|-)\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

	finalBalanceKeywords = []string{"SALDO FINAL", "SALDO ACTUAL", "SALDO AL CORTE", "SALDO TOTAL"}
	avgBalanceKeywords   = []string{"SALDO PROMEDIO"}
)

// extractPeriod finds the statement period. Nil when the document carries
// no recognizable period pattern.
func extractPeriod(pages []string) *string {
	for _, page := range pages {
		if m := periodRe.FindStringSubmatch(page); m != nil {
			p := strings.TrimSpace(m[1])
			return &p
		}
	}
	return nil
}

// extractLabeledBalance scans for a labeled balance row and returns its
// amount. Average balance is preferred when present since scoring uses
// monthly averages.
func extractLabeledBalance(pages []string) *float64 {
	if b := balanceByKeywords(pages, avgBalanceKeywords); b != nil {
		return b
	}
	return balanceByKeywords(pages, finalBalanceKeywords)
}

func balanceByKeywords(pages []string, keywords []string) *float64 {
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			upper := strings.ToUpper(line)
			if !containsAny(upper, keywords) {
				continue
			}
			amounts := findAmounts(line)
			if len(amounts) == 0 {
				continue
			}
			b := amounts[len(amounts)-1]
			return &b
		}
	}
	return nil
}
