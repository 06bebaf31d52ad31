package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dqi/internal/config"
	"github.com/abhisek/dqi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dqi",
	Short: "Data Quality Index survey",
	Long:  "dqi collects Data Quality Index survey answers in the terminal and submits them to the survey service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSurvey(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Survey service base URL (overrides DQI_API_URL)")
	flags.Duration("timeout", 0, "Per-request timeout (overrides DQI_REQUEST_TIMEOUT)")
	flags.String("log-file", "", "Log file path (overrides DQI_LOG_FILE)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides DQI_LOG_LEVEL)")
	flags.String("questions-dir", "", "Directory of question datasets (overrides DQI_QUESTIONS_DIR)")
	flags.String("tree", "", "Survey tree YAML file (overrides DQI_TREE_FILE)")
	flags.String("export-dir", "", "Directory for exported workbooks (overrides DQI_EXPORT_DIR)")
	flags.String("env-file", ".env", "Path to a .env file")

	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings from the .env file, DQI_* variables, and
// flags, in increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.API.Timeout = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := flags.GetString("questions-dir"); v != "" {
		cfg.QuestionsDir = v
	}
	if v, _ := flags.GetString("tree"); v != "" {
		cfg.TreeFile = v
	}
	if v, _ := flags.GetString("export-dir"); v != "" {
		cfg.ExportDir = v
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DQI_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.Server.DBPath
	}
	if p != "" {
		if err := store.EnsureDir(p); err != nil {
			return "", fmt.Errorf("create database directory: %w", err)
		}
		return p, nil
	}
	return store.DefaultDBPath()
}
