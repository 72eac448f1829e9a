// internal/workers/bureau/parse-bureau-report/dates.go
package parsebureaureport

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bureau reports print dates with Spanish three-letter month
// abbreviations, with a few English spillovers from the source system.
var monthAbbreviations = map[string]time.Month{
	"ENE": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"APR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"AUG": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DIC": time.December,
	"DEC": time.December,
}

var (
	// DD-MON-YYYY and DD-MON-YY
	fullDateRe = regexp.MustCompile(`\b(\d{1,2})-([A-Z]{3})-(\d{2,4})\b`)
	// MON-YY
	monthYearRe = regexp.MustCompile(`\b([A-Z]{3})-(\d{2})\b`)
	// MON YYYY
	monthSpaceYearRe = regexp.MustCompile(`\b([A-Z]{3})\s+(\d{4})\b`)
)

// parseFullDate parses a DD-MON-YYYY or DD-MON-YY token. The raw token is
// kept by callers regardless; parsing only confirms the token is a date.
func parseFullDate(token string) (time.Time, bool) {
	m := fullDateRe.FindStringSubmatch(strings.ToUpper(token))
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthAbbreviations[m[2]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year := expandYear(m[3])
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// parseMonthYear parses MON-YY and MON YYYY tokens to the first of the
// month.
func parseMonthYear(token string) (time.Time, bool) {
	upper := strings.ToUpper(token)
	if m := monthYearRe.FindStringSubmatch(upper); m != nil {
		if month, ok := monthAbbreviations[m[1]]; ok {
			return time.Date(expandYear(m[2]), month, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	if m := monthSpaceYearRe.FindStringSubmatch(upper); m != nil {
		if month, ok := monthAbbreviations[m[1]]; ok {
			year, _ := strconv.Atoi(m[2])
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 4 {
		return y
	}
	// two-digit years pivot at 50
	if y <= 50 {
		return 2000 + y
	}
	return 1900 + y
}
