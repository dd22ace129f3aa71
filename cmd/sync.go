package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/fitcal/internal/calendar"
	"github.com/misterclayt0n/fitcal/internal/models"
	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all routines and workouts to a backup file",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		outputFile := fmt.Sprintf("fitcal-backup-%s.%s", time.Now().Format(models.DateLayout), exportFormat)
		if len(args) == 1 {
			outputFile = args[0]
		}

		data, err := encodeSnapshot(st.Export(), exportFormat)
		if err != nil {
			return err
		}

		// Make the output path absolute relative to the current directory.
		outputFile, err = filepath.Abs(outputFile)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("writing export file: %w", err)
		}

		fmt.Printf("✅ Data exported successfully to %s\n", outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [backup-file]",
	Short: "Replace all routines and workouts with the contents of a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file %s: %w", args[0], err)
		}

		snap, err := decodeSnapshot(data, args[0])
		if err != nil {
			return fmt.Errorf("invalid backup file: %w", err)
		}

		sum := snap.Summary()
		exported := "Unknown"
		if sum.ExportedAt != nil {
			exported = sum.ExportedAt.Local().Format("02 Jan 2006 15:04")
		}
		fmt.Printf("Routines:    %d\n", sum.Categories)
		fmt.Printf("Workouts:    %d\n", sum.Assignments)
		fmt.Printf("Export date: %s\n", exported)

		ok, err := confirm("This will replace all current data. Continue?", assumeYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		st, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		if err := st.ImportSnapshot(snap); err != nil {
			return fmt.Errorf("failed to import data: %w", err)
		}

		fmt.Println("✅ Data imported successfully.")
		return nil
	},
}

func encodeSnapshot(snap models.Snapshot, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(snap, "", "  ")
	case "toml":
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(snap); err != nil {
			return nil, fmt.Errorf("encoding TOML: %w", err)
		}
		return []byte(sb.String()), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want json or toml)", format)
	}
}

// decodeSnapshot picks the format from the file extension. TOML has no
// way to write an empty array of tables, so absent sections read as empty.
func decodeSnapshot(data []byte, path string) (models.Snapshot, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var snap models.Snapshot
		if _, err := toml.Decode(string(data), &snap); err != nil {
			return models.Snapshot{}, fmt.Errorf("%w: %v", calendar.ErrInvalidFormat, err)
		}
		if snap.Categories == nil {
			snap.Categories = []models.Category{}
		}
		if snap.Assignments == nil {
			snap.Assignments = map[string]string{}
		}
		if err := calendar.ValidateSnapshot(snap); err != nil {
			return models.Snapshot{}, err
		}
		return snap, nil
	}
	return calendar.DecodeSnapshot(data)
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Backup format: json or toml")
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
