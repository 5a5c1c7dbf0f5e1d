package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

var (
	setFocus      string
	setShortBreak string
	setLongBreak  string
	setGoal       int
	setAlarm      string
	setAlarmSound string
	setBackground string
)

// settingsCmd groups the timer preference commands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change timer settings",
	Long: `Timer settings (phase durations, daily question goal, alarm and background)
are stored with your tasks. Machine-level options live in the config file;
see "study config".`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(cmd.OutOrStdout(), app.state.Settings.Current())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Long: `Change settings with flags. Durations accept Go duration syntax:

  study settings set --focus 50m --short-break 10m
  study settings set --goal 80 --alarm-sound digital
  study settings set --background 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch domain.SettingsPatch
		flags := cmd.Flags()

		durations := []struct {
			flag  string
			value string
			dst   **int
		}{
			{"focus", setFocus, &patch.FocusTime},
			{"short-break", setShortBreak, &patch.ShortBreakTime},
			{"long-break", setLongBreak, &patch.LongBreakTime},
		}
		for _, d := range durations {
			if !flags.Changed(d.flag) {
				continue
			}
			secs, err := parseMinutes(d.value)
			if err != nil {
				return fmt.Errorf("invalid --%s: %w", d.flag, err)
			}
			*d.dst = &secs
		}

		if flags.Changed("goal") {
			if setGoal < 0 {
				return fmt.Errorf("invalid --goal %d: must not be negative", setGoal)
			}
			patch.DailyQuestionGoal = &setGoal
		}
		if flags.Changed("alarm") {
			on, err := parseOnOff(setAlarm)
			if err != nil {
				return fmt.Errorf("invalid --alarm: %w", err)
			}
			patch.AlarmEnabled = &on
		}
		if flags.Changed("alarm-sound") {
			sound, err := domain.FindAlarmSound(setAlarmSound)
			if err != nil {
				if domain.ValidateURL(setAlarmSound) != nil {
					return err
				}
				sound = domain.AlarmSound{URL: setAlarmSound}
			}
			patch.AlarmSound = &sound.URL
		}
		if flags.Changed("background") {
			bg, err := domain.ResolveBackground(setBackground)
			if err != nil {
				return err
			}
			patch.BackgroundImage = &bg
		}

		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change: pass at least one flag (see --help)")
		}

		settings, err := app.state.Settings.Update(cmd.Context(), patch)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
		return printSettings(cmd.OutOrStdout(), settings)
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&setFocus, "focus", "", "Focus duration (e.g. 25m)")
	settingsSetCmd.Flags().StringVar(&setShortBreak, "short-break", "", "Short break duration (e.g. 5m)")
	settingsSetCmd.Flags().StringVar(&setLongBreak, "long-break", "", "Long break duration (e.g. 15m)")
	settingsSetCmd.Flags().IntVar(&setGoal, "goal", 0, "Daily question goal")
	settingsSetCmd.Flags().StringVar(&setAlarm, "alarm", "", "Alarm on or off")
	settingsSetCmd.Flags().StringVar(&setAlarmSound, "alarm-sound", "", "Alarm sound name (beep, bell, digital, meditation) or URL")
	settingsSetCmd.Flags().StringVar(&setBackground, "background", "", "Background preset number (1-6) or image URL")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

// parseMinutes converts a duration flag to whole seconds. A bare number is
// read as minutes. The result is at least one minute.
func parseMinutes(s string) (int, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		var n int
		if _, scanErr := fmt.Sscanf(s, "%d", &n); scanErr != nil || fmt.Sprint(n) != s {
			return 0, fmt.Errorf("%q is not a duration", s)
		}
		d = time.Duration(n) * time.Minute
	}
	if d < time.Minute {
		return 0, fmt.Errorf("%s is shorter than one minute", d)
	}
	return int(d / time.Second), nil
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q: must be on or off", s)
}

func printSettings(w io.Writer, s domain.Settings) error {
	if jsonOutput {
		return printJSON(w, s)
	}

	alarm := "off"
	if s.AlarmEnabled {
		alarm = "on"
	}
	fmt.Fprintln(w, "⚙️  Settings:")
	fmt.Fprintf(w, "   Focus:        %s\n", formatSeconds(s.FocusTime))
	fmt.Fprintf(w, "   Short break:  %s\n", formatSeconds(s.ShortBreakTime))
	fmt.Fprintf(w, "   Long break:   %s\n", formatSeconds(s.LongBreakTime))
	fmt.Fprintf(w, "   Daily goal:   %d questions\n", s.DailyQuestionGoal)
	fmt.Fprintf(w, "   Alarm:        %s (%s)\n", alarm, domain.AlarmSoundName(s.AlarmSound))
	fmt.Fprintf(w, "   Background:   %s\n", backgroundName(s.BackgroundImage))
	return nil
}

// backgroundName labels built-in backgrounds by preset number.
func backgroundName(url string) string {
	for i, p := range domain.BackgroundPresets {
		if p == url {
			return fmt.Sprintf("Preset %d", i+1)
		}
	}
	return url
}
