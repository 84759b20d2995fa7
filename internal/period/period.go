// Package period parses Indian financial-year period labels out of filenames.
// The financial year runs April through March, so Q4 and H2 spill into the
// following calendar year.
package period

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Type classifies the granularity of a reporting period.
type Type string

const (
	TypeMonthly    Type = "MONTHLY"
	TypeQuarterly  Type = "QUARTERLY"
	TypeHalfYearly Type = "HALF_YEARLY"
	TypeYearly     Type = "YEARLY"
)

// Period is a resolved reporting window with its canonical label.
type Period struct {
	Label string
	Type  Type
	Start time.Time
	End   time.Time
}

var (
	monthlyRe = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[_\-\s]*(\d{4})(\D|$)`)
	quarterRe = regexp.MustCompile(`(?i)Q([1-4])[_\-\s]*FY[_\-\s]*(\d{4})[_\-\s]*(\d{2})\b`)
	halfRe    = regexp.MustCompile(`(?i)H([12])[_\-\s]*FY[_\-\s]*(\d{4})[_\-\s]*(\d{2})\b`)
	yearRe    = regexp.MustCompile(`(?i)FY[_\-\s]*(\d{4})[_\-\s]*(\d{2})\b`)
	// A bare FY match is only yearly when no quarter or half prefix claims it.
	prefixedRe = regexp.MustCompile(`(?i)Q[1-4][_\-\s]*FY|H[12][_\-\s]*FY`)
)

var monthNum = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Parse resolves a period label, typically a filename stem, into its
// canonical form and date window. It returns ok=false when no supported
// format matches.
//
// Supported forms: Apr_2024 (monthly), Q1_FY_2024_25 (quarterly),
// H1_FY_2024_25 (half-yearly), FY_2024_25 (yearly). Underscores, hyphens and
// spaces are interchangeable separators.
func Parse(label string) (Period, bool) {
	s := strings.TrimSpace(label)
	if s == "" {
		return Period{}, false
	}

	if m := monthlyRe.FindStringSubmatch(s); m != nil {
		abbr := strings.ToLower(m[1])
		year, _ := strconv.Atoi(m[2])
		month := monthNum[abbr]
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return Period{
			Label: strings.ToUpper(abbr[:1]) + abbr[1:] + "_" + m[2],
			Type:  TypeMonthly,
			Start: start,
			End:   end,
		}, true
	}

	if m := quarterRe.FindStringSubmatch(s); m != nil {
		q, _ := strconv.Atoi(m[1])
		startYear, _ := strconv.Atoi(m[2])
		endYear := fullEndYear(m[3])
		var start, end time.Time
		switch q {
		case 1:
			start = date(startYear, time.April)
			end = date(startYear, time.June).AddDate(0, 1, -1)
		case 2:
			start = date(startYear, time.July)
			end = date(startYear, time.September).AddDate(0, 1, -1)
		case 3:
			start = date(startYear, time.October)
			end = date(startYear, time.December).AddDate(0, 1, -1)
		case 4:
			start = date(endYear, time.January)
			end = date(endYear, time.March).AddDate(0, 1, -1)
		}
		return Period{
			Label: "Q" + m[1] + "_FY_" + m[2] + "_" + m[3],
			Type:  TypeQuarterly,
			Start: start,
			End:   end,
		}, true
	}

	if m := halfRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		startYear, _ := strconv.Atoi(m[2])
		endYear := fullEndYear(m[3])
		var start, end time.Time
		if h == 1 {
			start = date(startYear, time.April)
			end = date(startYear, time.September).AddDate(0, 1, -1)
		} else {
			start = date(startYear, time.October)
			end = date(endYear, time.March).AddDate(0, 1, -1)
		}
		return Period{
			Label: "H" + m[1] + "_FY_" + m[2] + "_" + m[3],
			Type:  TypeHalfYearly,
			Start: start,
			End:   end,
		}, true
	}

	if !prefixedRe.MatchString(s) {
		if m := yearRe.FindStringSubmatch(s); m != nil {
			startYear, _ := strconv.Atoi(m[1])
			endYear := fullEndYear(m[2])
			return Period{
				Label: "FY_" + m[1] + "_" + m[2],
				Type:  TypeYearly,
				Start: date(startYear, time.April),
				End:   date(endYear, time.March).AddDate(0, 1, -1),
			}, true
		}
	}

	return Period{}, false
}

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// fullEndYear expands the two-digit FY suffix, e.g. "25" -> 2025.
func fullEndYear(suffix string) int {
	n, _ := strconv.Atoi(suffix)
	return 2000 + n
}
