// Package cli provides the command-line interface for the options engine.
package cli

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-desk/internal/config"
	"options-desk/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	DBPath string
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:     "odesk",
		Short:   "Options portfolio accounting and risk validation",
		Long:    "odesk reconstructs holdings from the transaction journal, prices option legs, and validates candidate trades against a battery of risk checks.",
		Version: Version,
	}

	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&app.DBPath, "db", defaultDBPath(), "path to the transaction journal database")

	rootCmd.AddCommand(newPositionsCmd(app))
	rootCmd.AddCommand(newRecordCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newValidateCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))

	return rootCmd
}

// openJournal opens the transaction journal, creating the directory if
// needed.
func (app *App) openJournal() (store.Journal, error) {
	if err := os.MkdirAll(filepath.Dir(app.DBPath), 0755); err != nil {
		return nil, err
	}
	return store.NewSQLiteJournal(app.DBPath)
}

func defaultDBPath() string {
	return filepath.Join(config.DefaultConfigDir(), "journal.db")
}
