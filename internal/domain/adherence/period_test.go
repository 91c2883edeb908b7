package adherence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-adherence/internal/platform/civil"
)

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterByPeriod_CustomSingleDayIgnoresTimeOfDay(t *testing.T) {
	day := mustDate(t, "2025-07-05")
	w, err := CustomWindow(day, day)
	require.NoError(t, err)

	entries := []Entry{
		{ID: "early", ScheduledAt: at(2025, 7, 5, 0, 0, 0)},
		{ID: "noon", ScheduledAt: at(2025, 7, 5, 12, 30, 0)},
		{ID: "late", ScheduledAt: at(2025, 7, 5, 23, 59, 0)},
		{ID: "before", ScheduledAt: at(2025, 7, 4, 23, 59, 0)},
		{ID: "after", ScheduledAt: at(2025, 7, 6, 0, 0, 0)},
	}

	got := FilterByPeriod(entries, w, at(2025, 7, 20, 9, 0, 0))
	assert.Equal(t, []string{"early", "noon", "late"}, ids(got))
}

func TestFilterByPeriod_Rolling(t *testing.T) {
	w, err := RollingWindow(7)
	require.NoError(t, err)

	now := at(2025, 7, 9, 8, 0, 0)
	from, to := w.Bounds(now)
	assert.Equal(t, "2025-07-02", from.String())
	assert.Equal(t, "2025-07-09", to.String())

	entries := []Entry{
		{ID: "too-old", ScheduledAt: at(2025, 7, 1, 23, 0, 0)},
		{ID: "first-day", ScheduledAt: at(2025, 7, 2, 0, 5, 0)},
		{ID: "later-today", ScheduledAt: at(2025, 7, 9, 22, 0, 0)},
		{ID: "tomorrow", ScheduledAt: at(2025, 7, 10, 0, 0, 0)},
		{ID: "no-schedule"},
	}

	got := FilterByPeriod(entries, w, now)
	assert.Equal(t, []string{"first-day", "later-today"}, ids(got))
	assert.Equal(t, []string{"no-schedule"}, InvalidEntries(entries))
}

func TestFilterByPeriod_ComparesCivilDate(t *testing.T) {
	day := mustDate(t, "2025-07-05")
	w, err := CustomWindow(day, day)
	require.NoError(t, err)

	// 02:00 UTC del 6 = 23:00 civil del 5
	e := Entry{ID: "utc", ScheduledAt: time.Date(2025, 7, 6, 2, 0, 0, 0, time.UTC)}
	got := FilterByPeriod([]Entry{e}, w, at(2025, 7, 20, 0, 0, 0))
	assert.Len(t, got, 1)
}

func TestWindow_Validation(t *testing.T) {
	_, err := RollingWindow(0)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = CustomWindow(mustDate(t, "2025-07-06"), mustDate(t, "2025-07-05"))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = CustomWindow(civil.Date{}, mustDate(t, "2025-07-05"))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	w, err := CustomWindow(mustDate(t, "2025-07-05"), mustDate(t, "2025-07-05"))
	require.NoError(t, err)
	assert.True(t, w.SingleDay())
}
