package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fitcal/internal/utils"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [month] [year]",
	Short: "Show days per routine, days without an entry and the current streak",
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

		stats := st.MonthlyStats(year, month)
		routines := st.Categories()

		printBoxedHeader(fmt.Sprintf("%s %d", month, year))

		if len(routines) == 0 && stats.DaysWithEntry == 0 {
			fmt.Println("No routines defined and no workouts logged this month.")
			return nil
		}

		printMetric("Workouts this month", stats.DaysWithEntry)
		printMetric("Days with no entry", stats.DaysWithoutEntry)
		printMetric("Current streak", fmt.Sprintf("%d days", st.CurrentStreak(st.Today())))
		fmt.Println()

		header := color.New(color.FgGreen, color.Bold).Sprintf("Days per routine:")
		fmt.Println(header)
		for _, r := range routines {
			fmt.Printf("  %s %s: %d day(s)\n", swatch(r.Color), color.New(color.Bold).Sprint(r.Name), stats.PerCategory[r.ID])
		}
		fmt.Println()

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + padCenter(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
