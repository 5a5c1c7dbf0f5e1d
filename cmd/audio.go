package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/tui"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

var radioVolume float64

var alarmCmd = &cobra.Command{
	Use:   "alarm",
	Short: "List and preview alarm sounds",
}

var alarmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in alarm sounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		current := app.state.Settings.Current().AlarmSound
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"sounds":  domain.AlarmSounds,
				"current": current,
			})
		}
		for _, s := range domain.AlarmSounds {
			marker := " "
			if s.URL == current {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", marker, s.Name, s.URL)
		}
		return nil
	},
}

var alarmPreviewCmd = &cobra.Command{
	Use:   "preview [name|url]",
	Short: "Play an alarm sound once",
	Long:  `Play an alarm sound by name or URL. Without an argument the configured sound plays.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := app.state.Settings.Current().AlarmSound
		if len(args) == 1 {
			sound, err := domain.FindAlarmSound(args[0])
			switch {
			case err == nil:
				url = sound.URL
			case domain.ValidateURL(args[0]) == nil:
				url = args[0]
			default:
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🔔 Playing %s...\n", domain.AlarmSoundName(url))
		app.state.Alarm.Preview(url)
		waitOrCancel(cmd.Context(), app.state.Alarm.Wait, app.state.Alarm.Stop)

		if err := app.state.Alarm.State().Err; err != nil {
			return fmt.Errorf("failed to play alarm: %w", err)
		}
		return nil
	},
}

var radioCmd = &cobra.Command{
	Use:   "radio",
	Short: "Play ambient internet radio",
}

var radioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the radio stations",
	RunE: func(cmd *cobra.Command, args []string) error {
		stations := app.state.Radio.Stations()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"stations": stations})
		}
		for i, s := range stations {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d] %-20s %s\n", i+1, s.Name, s.URL)
		}
		return nil
	},
}

var radioPlayCmd = &cobra.Command{
	Use:   "play [station]",
	Short: "Play a station until interrupted",
	Long:  `Play a station by number or name. Without an argument a station picker opens. Press Ctrl+C to stop.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index int
		if len(args) == 1 {
			var err error
			if index, err = domain.FindStream(args[0]); err != nil {
				return err
			}
		} else {
			var items []tui.PickerItem
			for _, s := range app.state.Radio.Stations() {
				items = append(items, tui.PickerItem{Label: s.Name})
			}
			result := tui.RunPicker("Station:", items, "", &app.config.Theme)
			if result.Aborted {
				return nil
			}
			index = result.Index
		}
		if err := app.state.Radio.Select(index); err != nil {
			return err
		}
		if cmd.Flags().Changed("volume") {
			app.state.Radio.SetVolume(radioVolume)
		}

		state := app.state.Radio.State()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s · vol %d%% (Ctrl+C to stop)\n",
			app.config.Theme.IconRadio, state.Station.Name, int(state.Volume*100+0.5))

		app.state.Radio.Play()
		waitOrCancel(cmd.Context(), app.state.Radio.Wait, app.state.Radio.Pause)

		if err := app.state.Radio.State().Err; err != nil {
			return fmt.Errorf("failed to play %s: %w", state.Station.Name, err)
		}
		return nil
	},
}

var backgroundCmd = &cobra.Command{
	Use:   "background",
	Short: "List and choose the dashboard background",
}

var backgroundListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the background presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		current := app.state.Settings.Current().BackgroundImage
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"presets": domain.BackgroundPresets,
				"current": current,
			})
		}
		for i, url := range domain.BackgroundPresets {
			marker := " "
			if url == current {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%d] %s\n", marker, i+1, url)
		}
		if backgroundName(current) == current {
			fmt.Fprintf(cmd.OutOrStdout(), "* custom %s\n", current)
		}
		return nil
	},
}

var backgroundSetCmd = &cobra.Command{
	Use:   "set [preset|url]",
	Short: "Use a preset number or a custom image URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bg, err := domain.ResolveBackground(args[0])
		if err != nil {
			return err
		}
		settings, err := app.state.Settings.Update(cmd.Context(), domain.SettingsPatch{BackgroundImage: &bg})
		if err != nil {
			return fmt.Errorf("failed to update background: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🖼  Background: %s\n", backgroundName(settings.BackgroundImage))
		return nil
	},
}

var tipCmd = &cobra.Command{
	Use:   "tip [context]",
	Short: "Get a study tip",
	Long:  `Ask the configured tip provider for a short study tip. Extra words are passed as context.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hint := "The student is preparing for exams."
		if len(args) > 0 {
			hint = strings.Join(args, " ")
		}
		tip := app.state.Tips.Tip(cmd.Context(), hint)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"tip": tip})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "💡 %s\n", tip)
		return nil
	},
}

func init() {
	alarmCmd.AddCommand(alarmListCmd)
	alarmCmd.AddCommand(alarmPreviewCmd)

	radioPlayCmd.Flags().Float64Var(&radioVolume, "volume", domain.DefaultVolume, "Volume between 0 and 1")
	radioCmd.AddCommand(radioListCmd)
	radioCmd.AddCommand(radioPlayCmd)

	backgroundCmd.AddCommand(backgroundListCmd)
	backgroundCmd.AddCommand(backgroundSetCmd)
}

// waitOrCancel blocks until wait returns or ctx is done, in which case stop
// is called and wait is drained.
func waitOrCancel(ctx context.Context, wait, stop func()) {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		stop()
		<-done
	}
}
