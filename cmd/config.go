package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streed/jot/internal/config"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage jot configuration",
	Long:        `View and manage jot configuration settings.`,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current configuration",
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE:        runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file",
	Long: `Write a configuration file with the given settings, creating the data
directory if needed.`,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE:        runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value.

Available keys:
  - data_directory: Directory holding the notes database
  - database_path: Explicit path of the notes database
  - debug: Enable/disable debug logging (true/false)
  - delete_mode: "content" removes every note with the chosen note's title and
    content; "id" removes only the chosen note`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE:        runConfigSet,
}

var (
	initDataDir    string
	initDeleteMode string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().StringVar(&initDataDir, "data-dir", "", "Data directory for storing the notes database")
	configInitCmd.Flags().StringVar(&initDeleteMode, "delete-mode", "", "Delete mode: content or id")
}

func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.GetConfigPath()
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== jot Configuration ===")
	fmt.Fprintf(out, "Config file:     %s\n", path)
	fmt.Fprintf(out, "data_directory:  %s\n", appConfig.DataDirectory)
	fmt.Fprintf(out, "database_path:   %s\n", appConfig.GetDatabasePath())
	fmt.Fprintf(out, "debug:           %v\n", appConfig.Debug)
	fmt.Fprintf(out, "delete_mode:     %s\n", appConfig.DeleteMode)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	switch {
	case initDataDir != "":
		if err := cfg.Set("data_directory", initDataDir); err != nil {
			return err
		}
	case cfg.DataDirectory == "":
		cfg.DataDirectory = config.GetDefaultDataDirectory()
	}
	if initDeleteMode != "" {
		if err := cfg.Set("delete_mode", initDeleteMode); err != nil {
			return err
		}
	}

	if err := config.SaveTo(cfg, path); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration initialized successfully!")
	fmt.Fprintf(out, "Config file: %s\n", path)
	fmt.Fprintf(out, "Database: %s\n", cfg.GetDatabasePath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Edit what the file holds, not the merged view: --db and JOT_*
	// overrides apply to this run only.
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}

	if err := config.SaveTo(cfg, path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}
