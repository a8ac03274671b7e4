package calendar

import (
	"time"

	"github.com/chaimtop/studygo/core/student"
)

var weekdayLabels = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// WeekDay is one bucket of the Monday-first week schedule view.
type WeekDay struct {
	Date      string                  `json:"date"`
	Label     string                  `json:"day"`
	DayNum    int                     `json:"dayNum"`
	Today     bool                    `json:"isToday"`
	Schedules []student.ScheduleEntry `json:"schedules"`
}

// MondayOf returns the Monday on or before date. A Sunday counts as weekday 7:
// the week containing a Sunday is the week ending on it, not starting on it.
func MondayOf(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1)), nil
}

// WeekRange returns the Monday and Sunday of the week containing date.
func WeekRange(date string) (monday, sunday string, err error) {
	mon, err := MondayOf(date)
	if err != nil {
		return "", "", err
	}
	return mon.Format(DateLayout), mon.AddDate(0, 0, 6).Format(DateLayout), nil
}

// GroupByWeek partitions schedules into the 7 day buckets of the week
// containing anchor, Monday first. Entries dated outside the week are dropped.
func GroupByWeek(schedules []student.ScheduleEntry, anchor string) ([]WeekDay, error) {
	mon, err := MondayOf(anchor)
	if err != nil {
		return nil, err
	}
	today := Today()

	days := make([]WeekDay, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		d := mon.AddDate(0, 0, i)
		date := d.Format(DateLayout)
		days[i] = WeekDay{
			Date:      date,
			Label:     weekdayLabels[i],
			DayNum:    d.Day(),
			Today:     date == today,
			Schedules: []student.ScheduleEntry{},
		}
		index[date] = i
	}

	for _, s := range schedules {
		if i, ok := index[s.Date]; ok {
			days[i].Schedules = append(days[i].Schedules, s)
		}
	}
	return days, nil
}
