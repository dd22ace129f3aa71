package calendar

import (
	"testing"
	"time"

	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/misterclayt0n/fitcal/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyStatsSingleAssignment(t *testing.T) {
	st, _ := newTestStore(t, storage.NewMemoryStore())
	legs, err := st.AddCategory("Legs", "#ff0000")
	require.NoError(t, err)
	require.NoError(t, st.SetAssignment(date(t, "2024-03-05"), legs.ID))

	stats := st.MonthlyStats(2024, time.March)
	assert.Equal(t, map[string]int{legs.ID: 1}, stats.PerCategory)
	assert.Equal(t, 1, stats.DaysWithEntry)
	assert.Equal(t, 30, stats.DaysWithoutEntry)
	assert.Equal(t, 31, stats.DaysInMonth)
}

func TestMonthlyStatsIncludesZeroCounts(t *testing.T) {
	st, _ := newTestStore(t, storage.NewMemoryStore())
	legs, err := st.AddCategory("Legs", "#f00")
	require.NoError(t, err)
	arms, err := st.AddCategory("Arms", "#0f0")
	require.NoError(t, err)
	require.NoError(t, st.SetAssignment(date(t, "2024-02-29"), legs.ID))

	stats := st.MonthlyStats(2024, time.March)
	assert.Equal(t, map[string]int{legs.ID: 0, arms.ID: 0}, stats.PerCategory)
	assert.Equal(t, 0, stats.DaysWithEntry)
	assert.Equal(t, 31, stats.DaysWithoutEntry)
}

func TestMonthlyStatsCountsSumToDaysInMonth(t *testing.T) {
	st, clock := newTestStore(t, storage.NewMemoryStore())
	clock.now = time.Date(2030, time.January, 1, 0, 0, 0, 0, time.Local)

	a, err := st.AddCategory("A", "#f00")
	require.NoError(t, err)
	b, err := st.AddCategory("B", "#0f0")
	require.NoError(t, err)

	d := models.NewDate(2023, time.November, 3)
	for i := 0; i < 500; i += 3 {
		id := a.ID
		if i%2 == 0 {
			id = b.ID
		}
		require.NoError(t, st.SetAssignment(d.AddDays(i), id))
	}

	for year := 2023; year <= 2025; year++ {
		for m := time.January; m <= time.December; m++ {
			stats := st.MonthlyStats(year, m)
			sum := 0
			for _, n := range stats.PerCategory {
				sum += n
			}
			assert.Equal(t, models.DaysIn(year, m), sum+stats.DaysWithoutEntry, "%d-%02d", year, m)
		}
	}
}

func TestMonthlyStatsLeapFebruary(t *testing.T) {
	st, _ := newTestStore(t, storage.NewMemoryStore())
	stats := st.MonthlyStats(2024, time.February)
	assert.Equal(t, 29, stats.DaysInMonth)
	assert.Equal(t, 29, stats.DaysWithoutEntry)
	assert.Empty(t, stats.PerCategory)
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name   string
		logged []string
		today  string
		want   int
	}{
		{name: "nothing logged", today: "2024-03-20", want: 0},
		{name: "today only", logged: []string{"2024-03-20"}, today: "2024-03-20", want: 1},
		{name: "three in a row", logged: []string{"2024-03-18", "2024-03-19", "2024-03-20"}, today: "2024-03-20", want: 3},
		{name: "today not logged yet", logged: []string{"2024-03-18", "2024-03-19"}, today: "2024-03-20", want: 2},
		{name: "gap yesterday", logged: []string{"2024-03-18", "2024-03-20"}, today: "2024-03-20", want: 1},
		{name: "gap yesterday and today empty", logged: []string{"2024-03-17", "2024-03-18"}, today: "2024-03-20", want: 0},
		{
			name:   "stops at first of month",
			logged: []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03"},
			today:  "2024-03-03",
			want:   3,
		},
		{name: "first of month", logged: []string{"2024-02-29", "2024-03-01"}, today: "2024-03-01", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newTestStore(t, storage.NewMemoryStore())
			legs, err := st.AddCategory("Legs", "#f00")
			require.NoError(t, err)
			for _, s := range tt.logged {
				require.NoError(t, st.SetAssignment(date(t, s), legs.ID))
			}
			assert.Equal(t, tt.want, st.CurrentStreak(date(t, tt.today)))
		})
	}
}
