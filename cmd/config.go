package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show where and how study is configured",
	Long: `Machine-level options (data directory, audio player, tip provider, API
address, logging and theme) live in a TOML file. Timer settings such as
durations and the daily goal are changed with "study settings".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCmd.RunE(cmd, args)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath()
		if err != nil {
			return err
		}
		cfg := app.config
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"path":          path,
				"database":      dbPath,
				"notifications": cfg.Notifications,
				"audio":         cfg.Audio,
				"tips":          cfg.Tips,
				"server":        cfg.Server,
				"log":           cfg.Log,
			})
		}
		printConfig(cmd.OutOrStdout(), path, cfg)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

func activeConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func printConfig(w io.Writer, path string, cfg *config.Config) {
	notifStatus := "off"
	if cfg.Notifications.Enabled {
		notifStatus = "on"
		if cfg.Notifications.Sound {
			notifStatus = "on (with sound)"
		}
	}
	apiKey := "unset"
	if cfg.Tips.Provider == "remote" {
		apiKey = "$" + cfg.Tips.APIKeyEnv
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Config file:     %s\n", path)
	fmt.Fprintf(w, "  Database:        %s\n", dbPath)
	fmt.Fprintf(w, "  Log file:        %s (%s)\n", cfg.Log.File, cfg.Log.Level)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Notifications:   %s\n", notifStatus)
	fmt.Fprintf(w, "  Audio player:    %s (volume %.0f%%)\n", cfg.Audio.Player, cfg.Audio.Volume*100)
	fmt.Fprintf(w, "  Tips:            %s (timeout %s, key %s)\n", cfg.Tips.Provider, cfg.Tips.Timeout, apiKey)
	fmt.Fprintf(w, "  API address:     %s\n", cfg.Server.Addr)
	fmt.Fprintln(w)
}
