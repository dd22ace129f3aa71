package cmd

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/fitcal/internal/utils"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [date] [routine]",
	Short: "Log a routine on a day (date: YYYY-MM-DD, today or yesterday)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		day, err := utils.ParseDay(args[0], st.Today())
		if err != nil {
			return err
		}
		routine, err := resolveRoutine(st, args[1])
		if err != nil {
			return err
		}

		if err := st.SetAssignment(day, routine.ID); err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		fmt.Printf("✅ Logged %s %s on %s\n", swatch(routine.Color), routine.Name, day.Time(time.Local).Format("Mon, 02 Jan 2006"))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [date]",
	Short: "Remove the workout logged on a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		day, err := utils.ParseDay(args[0], st.Today())
		if err != nil {
			return err
		}

		if err := st.ClearAssignment(day); err != nil {
			return fmt.Errorf("failed to clear workout: %w", err)
		}

		fmt.Printf("✅ Cleared %s\n", day)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(clearCmd)
}
