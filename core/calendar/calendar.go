// Package calendar implements the pure date arithmetic behind the check-in
// calendar and the schedule views: month grids, ISO week buckets and
// day paging. No I/O, no clocks except Today.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all dates exchanged with the backend.
const DateLayout = "2006-01-02"

// Cell is a single day slot in a month grid. A zero Day marks a padding slot.
type Cell struct {
	Day     int    `json:"day"`
	Date    string `json:"date,omitempty"`
	Checked bool   `json:"checked"`
	Today   bool   `json:"isToday"`
}

// Week is a full grid row, Sunday first.
type Week [7]Cell

// Grid is a whole month: a whole number of week rows, front- and back-padded
// so that day 1 lands in its weekday column.
type Grid []Week

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear follows the proleptic Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month (1-12).
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}

// MonthGrid builds the check-in calendar for a month. checked holds the set of
// checked-in dates (DateLayout keys); today tags the matching cell.
func MonthGrid(year, month int, checked map[string]bool, today string) Grid {
	firstWeekday := int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()) // 0=Sunday
	total := DaysInMonth(year, month)

	var grid Grid
	var week Week
	col := firstWeekday // leading padding slots stay zero

	for day := 1; day <= total; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		week[col] = Cell{
			Day:     day,
			Date:    date,
			Checked: checked[date],
			Today:   date == today,
		}
		col++
		if col == 7 {
			grid = append(grid, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 { // trailing padding slots stay zero
		grid = append(grid, week)
	}
	return grid
}

var NowFunc = time.Now // mockable

// Today returns the current local date in DateLayout.
func Today() string {
	return NowFunc().Format(DateLayout)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NextDate returns date shifted forward by days, rolling over month and year
// boundaries. A malformed date is returned unchanged.
func NextDate(date string, days int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// PrevDate returns date shifted backward by days.
func PrevDate(date string, days int) string {
	return NextDate(date, -days)
}
