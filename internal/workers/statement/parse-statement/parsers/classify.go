// internal/workers/statement/parse-statement/parsers/classify.go
package parsers

import (
	"strings"

	"credit-pipeline/internal/models"
)

// classifyOptions lets a strategy extend or replace the shared keyword
// families. Empty slices fall back to the shared defaults.
type classifyOptions struct {
	selfTransfers  []string
	reversals      []string
	creditDisp     []string
	pos            []string
	counterSignals []string
	ignore         []string
}

func (o classifyOptions) selfTransferKeywords() []string {
	if len(o.selfTransfers) > 0 {
		return o.selfTransfers
	}
	return kwSelfTransfers
}

func (o classifyOptions) reversalKeywords() []string {
	if len(o.reversals) > 0 {
		return o.reversals
	}
	return kwReversals
}

func (o classifyOptions) creditKeywords() []string {
	if len(o.creditDisp) > 0 {
		return o.creditDisp
	}
	return kwCreditDispositions
}

func (o classifyOptions) posKeywords() []string {
	if len(o.pos) > 0 {
		return o.pos
	}
	return kwPOS
}

func (o classifyOptions) counterSignalKeywords() []string {
	if len(o.counterSignals) > 0 {
		return o.counterSignals
	}
	return kwCounterSignals
}

func (o classifyOptions) ignoreKeywords() []string {
	if len(o.ignore) > 0 {
		return o.ignore
	}
	return kwIgnore
}

// classify assigns exactly one category to a credit movement and flags
// POS revenue. Precedence: ignore, reversal, self-transfer (unless a
// counter-signal overrides it), credit disposition, income.
func classify(description string, opts classifyOptions) (models.TransactionCategory, bool) {
	desc := strings.ToUpper(description)

	if containsAny(desc, opts.ignoreKeywords()) {
		return models.CategoryIgnored, false
	}
	isPOS := containsAny(desc, opts.posKeywords())
	if containsAny(desc, opts.reversalKeywords()) {
		return models.CategoryReversal, isPOS
	}
	if containsAny(desc, opts.selfTransferKeywords()) {
		// SPEI and cash deposits described with transfer wording are
		// still third-party income.
		if !containsAny(desc, opts.counterSignalKeywords()) {
			return models.CategorySelfTransfer, isPOS
		}
	}
	if containsAny(desc, opts.creditKeywords()) {
		return models.CategoryCreditDisposition, isPOS
	}
	return models.CategoryIncome, isPOS
}
