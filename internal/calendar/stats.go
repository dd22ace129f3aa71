package calendar

import (
	"time"

	"github.com/misterclayt0n/fitcal/internal/models"
)

// MonthlyStats counts the logged days of one month per routine.
func (s *Store) MonthlyStats(year int, month time.Month) models.MonthStats {
	stats := models.MonthStats{
		Year:        year,
		Month:       month,
		PerCategory: make(map[string]int, len(s.categories)),
		DaysInMonth: models.DaysIn(year, month),
	}
	for _, c := range s.categories {
		stats.PerCategory[c.ID] = 0
	}

	for day := 1; day <= stats.DaysInMonth; day++ {
		id, ok := s.assignments[models.Date{Year: year, Month: month, Day: day}]
		if !ok {
			continue
		}
		stats.DaysWithEntry++
		if _, known := stats.PerCategory[id]; known {
			stats.PerCategory[id]++
		}
	}

	stats.DaysWithoutEntry = max(stats.DaysInMonth-stats.DaysWithEntry, 0)
	return stats
}

// CurrentStreak counts consecutive logged days walking back from today.
// An empty today does not end the streak since the day is not over yet.
// The walk never crosses into the previous month.
//
// TODO: decide whether streaks should carry across month boundaries.
func (s *Store) CurrentStreak(today models.Date) int {
	first := today.FirstOfMonth()
	streak := 0
	for d := today; !d.Before(first); d = d.AddDays(-1) {
		if _, ok := s.assignments[d]; ok {
			streak++
			continue
		}
		if d != today {
			break
		}
	}
	return streak
}
