package cmd

import (
	"fmt"
	"os"

	"github.com/misterclayt0n/fitcal/internal/calendar"
	"github.com/misterclayt0n/fitcal/internal/config"
	"github.com/misterclayt0n/fitcal/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// verbose turns on debug logging regardless of the configured level.
var verbose bool

var rootCmd = &cobra.Command{
	Use:           "fitcal",
	Short:         "Workout calendar: log a routine per day and track your month",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(level string) *logrus.Entry {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)

	return logrus.NewEntry(l)
}

// openStore loads the configured blob store and the calendar saved in it.
// The returned func closes the blob store.
func openStore() (*calendar.Store, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cfg.Log.Level)

	blobs, err := storage.Open(cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	st, err := calendar.New(blobs, calendar.WithLogger(log))
	if err != nil {
		blobs.Close()
		return nil, nil, err
	}

	return st, func() {
		if err := blobs.Close(); err != nil {
			log.WithError(err).Warn("failed to close storage")
		}
	}, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
