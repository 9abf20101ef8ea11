package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ── Blank detection ──

// blankTokens are the renderings spreadsheet exports leave behind for an
// empty numeric or date cell. Words such as "none" stay real values.
var blankTokens = map[string]struct{}{
	"nan": {},
	"nat": {},
}

// IsBlank reports whether a cell value is absent. Every present/absent
// decision in the ingestion pipeline goes through this predicate.
func IsBlank(v string) bool {
	s := strings.TrimSpace(v)
	if s == "" {
		return true
	}
	_, ok := blankTokens[strings.ToLower(s)]
	return ok
}

// ── Strings ──

// NormalizeString trims and lower-cases a cell. Blank cells become "".
func NormalizeString(v string) string {
	if IsBlank(v) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(v))
}

// NormalizeIdentifier trims an identifier cell. Case is preserved so that
// externally issued employee numbers round-trip unchanged.
func NormalizeIdentifier(v string) string {
	if IsBlank(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// NormalizeGrade upper-cases a derajat kesehatan code ("p2 " -> "P2").
func NormalizeGrade(v string) string {
	if IsBlank(v) {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(v))
}

// NormalizeText trims free text (blood pressure, notes) without changing case.
func NormalizeText(v string) string {
	if IsBlank(v) {
		return ""
	}
	return strings.TrimSpace(v)
}

// Nullable maps an empty normalized string to nil so absent cells are
// stored as NULL.
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ── Numbers ──

// SafeFloat parses a numeric cell, treating a comma as the decimal point.
// It returns nil for anything that is not a finite number.
func SafeFloat(v string) *float64 {
	if IsBlank(v) {
		return nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// RoundMeasure rounds a clinical measurement to the two decimal places the
// storage columns keep.
func RoundMeasure(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := decimal.NewFromFloat(*v).Round(2).InexactFloat64()
	return &r
}

// SafeMeasure is SafeFloat followed by RoundMeasure.
func SafeMeasure(v string) *float64 {
	return RoundMeasure(SafeFloat(v))
}

var digitRun = regexp.MustCompile(`\d+`)

const maxAge = 150

// ParseAge reads an age cell. Numeric cells are truncated to whole years;
// otherwise the first run of digits is used ("33 tahun" -> 33). Ages outside
// 0..150 yield nil.
func ParseAge(v string) *int {
	if IsBlank(v) {
		return nil
	}
	if f := SafeFloat(v); f != nil {
		return checkAge(math.Trunc(*f))
	}
	m := digitRun.FindString(v)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return checkAge(float64(n))
}

func checkAge(f float64) *int {
	if f < 0 || f > maxAge {
		return nil
	}
	n := int(f)
	return &n
}

// ── Dates ──

const (
	minDateYear = 1901
	maxYearCell = 2100
)

// yearOnly matches a cell holding nothing but a year ("1990").
var yearOnly = regexp.MustCompile(`^\d{4}$`)

// excelEpoch is day zero of spreadsheet serial dates.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order before the lenient fallback.
// YYYY-MM-DD, DD/MM/YYYY, MM/DD/YYYY, DD-MM-YYYY.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
}

// lenientLayouts are day-first wherever the order is ambiguous.
var lenientLayouts = []string{
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006 15:04:05",
	"2006/1/2",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
}

// indonesianMonths rewrites Indonesian month names so the English layouts
// above can read them. Longer names come first.
var indonesianMonths = strings.NewReplacer(
	"januari", "january",
	"februari", "february",
	"maret", "march",
	"juni", "june",
	"juli", "july",
	"agustus", "august",
	"oktober", "october",
	"nopember", "november",
	"desember", "december",
	"mei", "may",
	"agu", "aug",
	"okt", "oct",
	"des", "dec",
)

// SafeDate parses a date cell. It accepts spreadsheet serial numbers, the
// fixed layouts in dateLayouts and a lenient day-first fallback. A bare year
// between 1901 and 2100 reads as 1 January of that year rather than as a
// serial. Results before 1901 are treated as garbage and yield nil.
func SafeDate(v string) *time.Time {
	if IsBlank(v) {
		return nil
	}
	s := strings.TrimSpace(v)

	if yearOnly.MatchString(s) {
		if y, _ := strconv.Atoi(s); y >= minDateYear && y <= maxYearCell {
			return checkDate(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(f)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return checkDate(t)
		}
	}

	for _, candidate := range []string{s, indonesianMonths.Replace(strings.ToLower(s))} {
		for _, layout := range lenientLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return checkDate(t)
			}
		}
	}
	return nil
}

// DateOf truncates t to a UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func serialDate(f float64) *time.Time {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > 2958465 {
		return nil
	}
	t := excelEpoch.AddDate(0, 0, int(math.Floor(f)))
	return checkDate(t)
}

func checkDate(t time.Time) *time.Time {
	d := DateOf(t)
	if d.Year() < minDateYear || d.Year() > 9999 {
		return nil
	}
	return &d
}
