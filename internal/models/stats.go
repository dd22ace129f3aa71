package models

import "time"

// MonthStats aggregates the assignments of a single month.
type MonthStats struct {
	Year  int
	Month time.Month

	// PerCategory has an entry for every existing category, zero included.
	PerCategory      map[string]int
	DaysWithEntry    int
	DaysWithoutEntry int
	DaysInMonth      int
}
