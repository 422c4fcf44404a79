package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateRange is a half-open UTC interval [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// PeriodSet holds the four reporting intervals derived from one month.
type PeriodSet struct {
	Year          int
	Month         time.Month
	CurrentMonth  DateRange
	PreviousMonth DateRange
	CurrentYear   DateRange
	PreviousYear  DateRange
}

var monthParamRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ResolvePeriods parses a YYYY-MM month parameter. Absent or malformed input
// falls back to the month containing now, in UTC.
func ResolvePeriods(month string, now time.Time) PeriodSet {
	now = now.UTC()
	year, m := now.Year(), now.Month()

	if monthParamRe.MatchString(month) {
		y, _ := strconv.Atoi(month[:4])
		mm, _ := strconv.Atoi(month[5:])
		if mm >= 1 && mm <= 12 {
			year, m = y, time.Month(mm)
		}
	}
	return NewPeriodSet(year, m)
}

// NewPeriodSet builds the intervals for the given calendar month.
func NewPeriodSet(year int, month time.Month) PeriodSet {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return PeriodSet{
		Year:          year,
		Month:         month,
		CurrentMonth:  DateRange{Start: monthStart, End: monthStart.AddDate(0, 1, 0)},
		PreviousMonth: DateRange{Start: monthStart.AddDate(0, -1, 0), End: monthStart},
		CurrentYear:   DateRange{Start: yearStart, End: yearStart.AddDate(1, 0, 0)},
		PreviousYear:  DateRange{Start: yearStart.AddDate(-1, 0, 0), End: yearStart},
	}
}

// MonthKey renders the resolved month as YYYY-MM.
func (p PeriodSet) MonthKey() string {
	return monthKey(p.Year, p.Month)
}

// PrevMonthKey renders the previous month as YYYY-MM.
func (p PeriodSet) PrevMonthKey() string {
	s := p.PreviousMonth.Start
	return monthKey(s.Year(), s.Month())
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

var monthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthName returns the Spanish name of m.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}
