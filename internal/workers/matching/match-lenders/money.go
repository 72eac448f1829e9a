// internal/workers/matching/match-lenders/money.go
package matchlenders

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Lender catalogs write amounts the way humans do: "$100 mil", "2 MDP",
// "$200,000 a $20,000,000". These helpers turn that into numbers.

var (
	moneyTokenRe = regexp.MustCompile(`(?i)\$?\s*([\d,]+(?:\.\d+)?)\s*(MDP|MILLONES|MILLON|MIL)?`)
	rangeSplitRe = regexp.MustCompile(`(?i)\s+(?:a|hasta)\s+|\s*-\s*`)
)

// ParseAmount reads one money token. Multipliers: "mil" thousands,
// "MDP"/"millones" millions.
func ParseAmount(token string) (float64, bool) {
	m := moneyTokenRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil || m[1] == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToUpper(m[2]) {
	case "MIL":
		v *= 1_000
	case "MDP", "MILLON", "MILLONES":
		v *= 1_000_000
	}
	return v, true
}

// NoCeiling marks an open-ended amount range. MaxFloat64 rather than
// +Inf so criteria stay JSON-serializable for the cache.
const NoCeiling = math.MaxFloat64

// ParseAmountRange reads "min a max" style ranges. A single amount is an
// open-ended range; a missing or unparsable max means no ceiling.
func ParseAmountRange(s string) (min, max float64, ok bool) {
	parts := rangeSplitRe.Split(strings.TrimSpace(s), 2)
	if len(parts) == 0 {
		return 0, 0, false
	}

	min, ok = ParseAmount(parts[0])
	if !ok {
		return 0, 0, false
	}

	max = NoCeiling
	if len(parts) == 2 {
		if v, vok := ParseAmount(parts[1]); vok {
			max = v
		}
	}
	return min, max, true
}
