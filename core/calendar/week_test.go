package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaimtop/studygo/core/student"
)

func mockNow(t *testing.T, date string) {
	t.Helper()
	parsed, err := time.Parse(DateLayout, date)
	require.NoError(t, err)
	NowFunc = func() time.Time { return parsed }
	t.Cleanup(func() { NowFunc = time.Now })
}

func Test_GroupByWeek(t *testing.T) {
	mockNow(t, "2026-01-07")

	schedules := []student.ScheduleEntry{
		{ID: 1, Date: "2026-01-05", Subject: "申论"},
		{ID: 2, Date: "2026-01-07", Subject: "言语理解"},
		{ID: 3, Date: "2026-01-07", Subject: "资料分析"},
		{ID: 4, Date: "2026-01-11", Subject: "判断推理"},
		{ID: 5, Date: "2026-01-12", Subject: "常识判断"}, // next week, dropped
	}

	// anchor is a Wednesday
	days, err := GroupByWeek(schedules, "2026-01-07")
	require.NoError(t, err)
	require.Len(t, days, 7)

	wantDates := []string{
		"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08",
		"2026-01-09", "2026-01-10", "2026-01-11",
	}
	wantLabels := []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}
	for i, day := range days {
		assert.Equal(t, wantDates[i], day.Date)
		assert.Equal(t, wantLabels[i], day.Label)
		assert.NotNil(t, day.Schedules)
	}

	assert.Len(t, days[0].Schedules, 1)
	assert.Len(t, days[2].Schedules, 2)
	assert.Len(t, days[6].Schedules, 1)

	// every in-week entry lands in exactly one bucket; the outsider is dropped
	var total int
	for _, day := range days {
		total += len(day.Schedules)
	}
	assert.Equal(t, 4, total)

	// only the anchor week's Wednesday is today
	for i, day := range days {
		assert.Equal(t, i == 2, day.Today, day.Date)
	}
}

func Test_GroupByWeek_sundayAnchor(t *testing.T) {
	mockNow(t, "2026-01-01")

	// 2026-01-11 is a Sunday; its week ends on it rather than starting on it
	days, err := GroupByWeek(nil, "2026-01-11")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", days[0].Date)
	assert.Equal(t, "2026-01-11", days[6].Date)
}

func Test_GroupByWeek_badAnchor(t *testing.T) {
	_, err := GroupByWeek(nil, "11/01/2026")
	assert.Error(t, err)
}
