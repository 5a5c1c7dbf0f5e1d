package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/tui"
)

var statsForce bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's progress",
	Long:  `Show liquid study time, questions completed and progress toward the daily goal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statsShowCmd.RunE(cmd, args)
	},
}

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary := app.state.Summary(cmd.Context())
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), summary)
		}
		tui.ShowSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

var statsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset liquid study time to zero",
	Long: `Reset the liquid study time counter. Tasks and settings are not touched.
You are asked to confirm unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !statsForce {
			current := app.state.Stats.LiquidTime()
			fmt.Fprintf(out, "  Reset liquid study time (%s)? [y/N]: ", current)
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			answer = strings.TrimSpace(strings.ToLower(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "  No changes made.")
				return nil
			}
		}

		if err := app.state.Stats.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(out, "🔄 Liquid study time reset.")
		return nil
	},
}

func init() {
	statsResetCmd.Flags().BoolVarP(&statsForce, "force", "f", false, "Reset without asking")
	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsResetCmd)
}
