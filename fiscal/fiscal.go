// Package fiscal converts calendar months into the reporting backend's
// fiscal period numbering. The backend's fiscal year begins in calendar
// October: Oct-Dec are periods 1-3 of the following fiscal year, Jan-Sep
// are periods 4-12 of the current one.
package fiscal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/halcyard/finfetch/errors"
)

// Month is a calendar month. Month is 1-12; construction goes through
// Parse or Previous, which guarantee the range.
type Month struct {
	Year  int
	Month int
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Period is the backend's fiscal year/period pair derived from a Month.
type Period struct {
	FiscalYear int
	Period     int
}

// Convert maps a calendar month to its fiscal period. Total function:
// every month 1-12 maps to a period 1-12. Both scheduled mode (previous
// calendar month) and manual mode (--month flag) must go through this
// single implementation.
func Convert(m Month) Period {
	if m.Month >= 10 {
		return Period{FiscalYear: m.Year + 1, Period: m.Month - 9}
	}
	return Period{FiscalYear: m.Year, Period: m.Month + 3}
}

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Parse validates and parses a manual-mode "YYYY-MM" string. Malformed
// input is rejected here, before any external invocation happens.
func Parse(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, errors.Newf("invalid month %q: expected YYYY-MM", s)
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return Month{}, errors.Wrapf(err, "invalid year in %q", s)
	}
	month, err := strconv.Atoi(s[5:])
	if err != nil {
		return Month{}, errors.Wrapf(err, "invalid month in %q", s)
	}
	if month < 1 || month > 12 {
		return Month{}, errors.Newf("invalid month %q: month must be between 01 and 12", s)
	}
	return Month{Year: year, Month: month}, nil
}

// Previous returns the calendar month before the one containing now.
// Computed from the first of the current month to avoid end-of-month
// normalization surprises (e.g. Mar 31 minus one month).
func Previous(now time.Time) Month {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 0, -1)
	return Month{Year: last.Year(), Month: int(last.Month())}
}
