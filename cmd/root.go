// Package cmd provides the CLI commands for the study application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "study",
	Short: "Study - a focus timer with a question ledger",
	Long: `Study is a terminal focus/break timer for exam preparation. It tracks
question-based tasks, counts liquid study time and plays an alarm between
phases, with an optional internet radio in the background.

Run "study" with no arguments to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return initializeServices(ctx)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dashboard := tui.NewDashboard(app.state, &app.config.Theme)
		if err := dashboard.Run(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(setupSignalHandler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.study/study.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.study/config.toml)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Study CLI\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(alarmCmd)
	rootCmd.AddCommand(radioCmd)
	rootCmd.AddCommand(backgroundCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// formatMinutes renders a duration as "25m" or "1h30m".
func formatMinutes(d time.Duration) string {
	m := int(d.Minutes())
	if m >= 60 && m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	if m >= 60 {
		return fmt.Sprintf("%dh%dm", m/60, m%60)
	}
	return fmt.Sprintf("%dm", m)
}

// formatSeconds renders a whole number of seconds the way settings show them.
func formatSeconds(s int) string {
	d := time.Duration(s) * time.Second
	if d%time.Minute != 0 {
		return d.String()
	}
	return formatMinutes(d)
}
