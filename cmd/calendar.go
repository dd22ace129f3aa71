package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fitcal/internal/calendar"
	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/misterclayt0n/fitcal/internal/utils"
	"github.com/spf13/cobra"
)

// details is a flag to list every logged day below the grid.
var details bool

// calendarCmd prints the month grid. Logged days are painted with their
// routine's color, today is underlined and future days are dimmed.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of logged days with a legend of routines",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		year, month, err := utils.ParseMonthYear(args, time.Now())
		if err != nil {
			return err
		}

		printMonth(st, year, month)

		fmt.Println("Legend:")
		routines := st.Categories()
		if len(routines) == 0 {
			fmt.Println("  (no routines defined)")
		}
		for _, r := range routines {
			fmt.Printf("  %s: %s\n", swatch(r.Color), r.Name)
		}

		if details {
			fmt.Println("\nLogged days:")
			for _, day := range st.MonthAssignments(year, month) {
				id, _ := st.Assignment(day)
				r, _ := st.Category(id)
				fmt.Printf("  %s  %s %s\n", day.Time(time.Local).Format("Mon, 02 Jan 2006"), swatch(r.Color), r.Name)
			}
		}

		return nil
	},
}

func printMonth(st *calendar.Store, year int, month time.Month) {
	first := models.Date{Year: year, Month: month, Day: 1}
	today := st.Today()

	header := fmt.Sprintf("%s %d", month.String(), year)
	fmt.Println(centerText(header, 20))
	fmt.Println("Su Mo Tu We Th Fr Sa")

	// Determine weekday of first day (0 = Sunday).
	weekday := int(first.Time(time.Local).Weekday())
	for i := 0; i < weekday; i++ {
		fmt.Print("   ")
	}

	for day := 1; day <= models.DaysIn(year, month); day++ {
		d := models.Date{Year: year, Month: month, Day: day}
		fmt.Printf("%s ", dayCell(st, d, today))
		weekday++
		if weekday%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Print("\n\n")
}

func dayCell(st *calendar.Store, d, today models.Date) string {
	text := fmt.Sprintf("%2d", d.Day)

	var c *color.Color
	if id, ok := st.Assignment(d); ok {
		r, _ := st.Category(id)
		c = routineColor(r.Color)
	} else if st.IsFuture(d) {
		c = color.New(color.Faint)
	} else {
		c = color.New(color.Reset)
	}

	if d == today {
		c.Add(color.Bold, color.Underline)
	}
	return c.Sprint(text)
}

// routineColor paints the routine's hex color as a background with
// readable text on top. Unparseable colors fall back to plain white text.
func routineColor(hex string) *color.Color {
	r, g, b, err := utils.ParseHexColor(hex)
	if err != nil {
		return color.New(color.FgWhite, color.Bold)
	}
	fr, fg, fb := utils.ContrastingText(r, g, b)
	return color.BgRGB(r, g, b).AddRGB(fr, fg, fb)
}

func swatch(hex string) string {
	return routineColor(hex).Sprint("  ")
}

// centerText centers the given string in a field of the specified width.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "List the logged days of the month")
}
