package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data store and add the example routines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		n, err := st.SeedExamples()
		if err != nil {
			return fmt.Errorf("failed to add example routines: %w", err)
		}
		if n == 0 {
			fmt.Println("Routines already defined, nothing to do.")
			return nil
		}

		fmt.Printf("✅ Added %d example routines\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
