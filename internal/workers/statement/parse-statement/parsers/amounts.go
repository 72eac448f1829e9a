// internal/workers/statement/parse-statement/parsers/amounts.go
package parsers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountRe matches monetary tokens as printed on Mexican statements:
// thousands separated by commas, always two decimals.
var amountRe = regexp.MustCompile(`[\d,]+\.\d{2}`)

// findAmounts returns every monetary token on the line, in order.
// Tokens that fail to parse are skipped; amounts are always non-negative.
func findAmounts(line string) []float64 {
	tokens := amountRe.FindAllString(line, -1)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := parseAmountToken(tok)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseAmountToken(tok string) (float64, error) {
	clean := strings.ReplaceAll(tok, ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, err
	}
	return math.Abs(v), nil
}

// movementAmounts drops the final token of a multi-amount row, assuming
// it is the running balance. This is a heuristic: on layouts that print
// the balance in an earlier column, or append a reference figure after
// it, the wrong token is dropped and the row is misread. The engines
// cross-check the surviving tokens against the balance delta to catch
// most of those rows.
func movementAmounts(amounts []float64) []float64 {
	if len(amounts) <= 1 {
		return amounts
	}
	return amounts[:len(amounts)-1]
}

// amountsClose treats two amounts as equal within a cent, which absorbs
// float noise from balance subtraction.
func amountsClose(a, b float64) bool {
	return math.Abs(a-b) < 0.011
}

// rowContainsAmount checks that the candidate amount is visually present
// among the row's monetary tokens. Balance-diff engines use this to
// reject interpolated values that never appear in the document.
func rowContainsAmount(amounts []float64, candidate float64) bool {
	for _, a := range amounts {
		if amountsClose(a, candidate) {
			return true
		}
	}
	return false
}

// dayToken extracts a leading day-of-month from a statement row, used for
// duplicate suppression. Returns -1 when the row has no leading day.
var dayRe = regexp.MustCompile(`^\s*(\d{1,2})\b`)

func dayToken(line string) int {
	m := dayRe.FindStringSubmatch(line)
	if m == nil {
		return -1
	}
	d, err := strconv.Atoi(m[1])
	if err != nil || d < 1 || d > 31 {
		return -1
	}
	return d
}
