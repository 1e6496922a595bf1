package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/nepalflora/sap/internal/app"
	"github.com/nepalflora/sap/internal/config"
	"github.com/nepalflora/sap/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	backendURL            string
	clearLogs             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "sap",
	Short: "Terminal chat client for the Sap plant assistant",
	Long: `Sap is a terminal chat client for the Sap multimodal plant assistant.
Ask questions about Nepali flora in plain text, or paste and attach photos
of plants to have them identified. Conversations run against a local Sap
backend over HTTP.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging (verbose output to the log file)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&backendURL, "backend", "", "Override the backend base URL for this run")
	rootCmd.Flags().BoolVar(&clearLogs, "clear-logs", false, "Remove log files and exit")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("sap %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("sap %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if clearLogs {
		cleared, err := logger.ClearLogs()
		if err != nil {
			return fmt.Errorf("error clearing logs: %w", err)
		}
		fmt.Printf("Removed %d log file(s).\n", cleared)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if backendURL != "" {
		cfg.SetBackendURL(backendURL)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	m := app.New(cfg, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
