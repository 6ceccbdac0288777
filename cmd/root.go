package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/config"
	"github.com/streed/jot/internal/database"
	"github.com/streed/jot/internal/logger"
	"github.com/streed/jot/internal/models"
	"github.com/streed/jot/internal/selector"
)

// Commands carrying this annotation run without opening the note store.
const skipStoreAnnotation = "skipStore"

var (
	db           *database.DB
	noteRepo     *models.NoteRepository
	noteSelector *selector.Selector
	appConfig    *config.Config
	debugFlag    bool
	dbPathFlag   string
	configFlag   string
	Version      = "dev" // Version is set from main.go
)

var rootCmd = &cobra.Command{
	Use:     "jot",
	Short:   "A small personal note keeper",
	Version: Version,
	Long: `jot keeps short notes (a title and some content) in a local SQLite database.

Run it without a subcommand to get the interactive menu, or use the add, list,
search and delete subcommands directly.`,
	SilenceUsage:      true,
	PersistentPreRunE: initAppConfig,
	RunE:              runShell,
}

// Execute runs the CLI and releases the note store afterwards.
func Execute() error {
	rootCmd.Version = Version

	err := rootCmd.Execute()
	if closeErr := closeStore(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the notes database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the config file")
}

func initAppConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if configFlag != "" {
		appConfig, err = config.LoadFrom(configFlag)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	if dbPathFlag != "" {
		appConfig.DatabasePath = dbPathFlag
	}

	// Enable debug mode from flag or config
	if debugFlag || appConfig.Debug {
		logger.SetDebugMode(true)
		logger.Debug("Data directory: %s", appConfig.DataDirectory)
		logger.Debug("Delete mode: %s", appConfig.DeleteMode)
	}

	if _, skip := cmd.Annotations[skipStoreAnnotation]; skip {
		return nil
	}

	db, err = database.New(appConfig.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}

	noteRepo = models.NewNoteRepository(db)
	noteSelector = selector.New(noteRepo, appConfig.DeleteByID())
	return nil
}

func closeStore() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db, noteRepo, noteSelector = nil, nil, nil
	return err
}
