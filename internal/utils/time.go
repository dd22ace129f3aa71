package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/fitcal/internal/models"
)

// ParseMonthYear reads optional [month] [year] arguments, defaulting to the
// month and year of now.
func ParseMonthYear(args []string, now time.Time) (int, time.Month, error) {
	month := now.Month()
	year := now.Year()
	if len(args) >= 1 {
		m, err := strconv.Atoi(args[0])
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month: %s", args[0])
		}
		month = time.Month(m)
	}
	if len(args) >= 2 {
		y, err := strconv.Atoi(args[1])
		if err != nil || y < 1 || y > 9999 {
			return 0, 0, fmt.Errorf("invalid year: %s", args[1])
		}
		year = y
	}
	return year, month, nil
}

// ParseDay accepts "today", "yesterday" or a YYYY-MM-DD date.
func ParseDay(s string, today models.Date) (models.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return models.ParseDate(s)
}
