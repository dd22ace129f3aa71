package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fitcal/internal/calendar"
	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/spf13/cobra"
)

var (
	addName   string
	addColor  string
	editName  string
	editColor string
	assumeYes bool
)

var addRoutineCmd = &cobra.Command{
	Use:   "add-routine",
	Short: "Create a new routine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		routine, err := st.AddCategory(addName, addColor)
		if err != nil {
			return fmt.Errorf("failed to add routine: %w", err)
		}

		fmt.Printf("✅ Routine added: %s %s\n", swatch(routine.Color), routine.Name)
		return nil
	},
}

var editRoutineCmd = &cobra.Command{
	Use:   "edit-routine [id or name]",
	Short: "Rename or recolor a routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editName == "" && editColor == "" {
			return fmt.Errorf("nothing to change: pass --name and/or --color")
		}

		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		routine, err := resolveRoutine(st, args[0])
		if err != nil {
			return err
		}
		if err := st.UpdateCategory(routine.ID, editName, editColor); err != nil {
			return fmt.Errorf("failed to update routine: %w", err)
		}

		updated, _ := st.Category(routine.ID)
		fmt.Printf("✅ Routine updated: %s %s\n", swatch(updated.Color), updated.Name)
		return nil
	},
}

var deleteRoutineCmd = &cobra.Command{
	Use:   "delete-routine [id or name]",
	Short: "Delete a routine and every day it was logged on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		routine, err := resolveRoutine(st, args[0])
		if err != nil {
			return err
		}

		logged := 0
		for _, id := range st.Assignments() {
			if id == routine.ID {
				logged++
			}
		}
		question := fmt.Sprintf("Delete routine %q? This also removes it from %d logged day(s).", routine.Name, logged)
		ok, err := confirm(question, assumeYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		if err := st.DeleteCategory(routine.ID); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}

		fmt.Printf("✅ Routine '%s' deleted\n", routine.Name)
		return nil
	},
}

var listRoutinesCmd = &cobra.Command{
	Use:   "routines",
	Short: "List all routines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		routines := st.Categories()
		if len(routines) == 0 {
			fmt.Println("No routines defined yet. Run `fitcal init` or `fitcal add-routine`.")
			return nil
		}

		for _, r := range routines {
			fmt.Printf("%s %s  %s  %s\n", swatch(r.Color), r.Name, color.New(color.Faint).Sprint(r.Color), color.New(color.Faint).Sprint(r.ID))
		}
		return nil
	},
}

// resolveRoutine looks ref up as an id first, then as a name.
func resolveRoutine(st *calendar.Store, ref string) (models.Category, error) {
	if c, ok := st.Category(ref); ok {
		return c, nil
	}
	if c, ok := st.CategoryByName(ref); ok {
		return c, nil
	}
	return models.Category{}, fmt.Errorf("%w: %s", calendar.ErrNotFound, ref)
}

func init() {
	addRoutineCmd.Flags().StringVarP(&addName, "name", "n", "", "Routine name")
	addRoutineCmd.Flags().StringVarP(&addColor, "color", "c", models.DefaultColor, "Routine color (#rrggbb)")
	addRoutineCmd.MarkFlagRequired("name")

	editRoutineCmd.Flags().StringVarP(&editName, "name", "n", "", "New routine name")
	editRoutineCmd.Flags().StringVarP(&editColor, "color", "c", "", "New routine color (#rrggbb)")

	deleteRoutineCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(addRoutineCmd)
	rootCmd.AddCommand(editRoutineCmd)
	rootCmd.AddCommand(deleteRoutineCmd)
	rootCmd.AddCommand(listRoutinesCmd)
}
