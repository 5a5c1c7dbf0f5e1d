package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/tui"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

var timerModeFlag string

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run or inspect the interval timer",
}

var timerRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a compact timer below the prompt",
	Long: `Run the focus/break timer in a few lines of the terminal instead of the
full dashboard. The timer starts immediately and keeps cycling through
focus and break phases until you close it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if timerModeFlag != "" {
			mode, err := domain.ParseMode(timerModeFlag)
			if err != nil {
				return err
			}
			if err := app.state.Timer.SelectMode(mode); err != nil {
				return err
			}
		}
		return tui.RunInline(app.state.Timer, &app.config.Theme)
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer as a fresh session would start it",
	RunE: func(cmd *cobra.Command, args []string) error {
		state := app.state.Timer.State()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"mode":      state.Mode,
				"label":     state.Mode.Label(),
				"remaining": state.Remaining,
				"clock":     domain.FormatClock(state.Remaining),
				"running":   state.Running,
			})
		}
		plain := lipgloss.NewStyle()
		fmt.Fprintln(cmd.OutOrStdout(), tui.InlineStatus(state, app.config.Theme, plain, plain))
		return nil
	},
}

func init() {
	timerRunCmd.Flags().StringVar(&timerModeFlag, "mode", "", "Phase to start in: focus, short_break, long_break")
	timerCmd.AddCommand(timerRunCmd)
	timerCmd.AddCommand(timerStatusCmd)
}
