package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// studyEnv points the CLI at a throwaway config and database.
type studyEnv struct {
	t      *testing.T
	config string
	db     string
}

func newStudyEnv(t *testing.T) *studyEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Storage.DataDir = dir
	cfg.Log.File = filepath.Join(dir, "study.log")
	cfg.Audio.Player = "none"
	cfg.Notifications.Enabled = false

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveTo(path, cfg))

	return &studyEnv{t: t, config: path, db: filepath.Join(dir, "study.db")}
}

// run executes the CLI with fresh flag state, like a new process would.
func (e *studyEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	resetFlags(rootCmd)
	dbPath, jsonOutput, configPath = "", false, ""
	rootCmd.SetIn(strings.NewReader(stdin))

	args = append([]string{"--config", e.config, "--db", e.db}, args...)
	stdout, _, err := executeCmd(rootCmd, args...)
	// Post-run hooks are skipped when a command fails
	if cleanupErr := cleanupServices(); err == nil {
		err = cleanupErr
	}
	return stdout, err
}

func (e *studyEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, "study %s", strings.Join(args, " "))
	return out
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type taskJSON struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	TotalQuestions     int    `json:"total_questions"`
	CompletedQuestions int    `json:"completed_questions"`
	Completed          bool   `json:"completed"`
}

type taskListJSON struct {
	Tasks []taskJSON `json:"tasks"`
	Count int        `json:"count"`
}

func TestTaskCommands(t *testing.T) {
	env := newStudyEnv(t)

	var added taskJSON
	out := env.mustRun("--json", "task", "add", "Organic", "chemistry", "--total", "20")
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, "Organic chemistry", added.Title)
	assert.Equal(t, 20, added.TotalQuestions)
	require.NotEmpty(t, added.ID)

	// State survives between invocations
	var list taskListJSON
	out = env.mustRun("--json", "task", "list")
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, added.ID, list.Tasks[0].ID)

	var adjusted taskJSON
	out = env.mustRun("--json", "task", "adjust", shortID(added.ID), "25")
	require.NoError(t, json.Unmarshal([]byte(out), &adjusted))
	assert.Equal(t, 20, adjusted.CompletedQuestions, "adjust clamps to the total")
	assert.True(t, adjusted.Completed)

	out = env.mustRun("task", "adjust", shortID(added.ID), "--", "-5")
	assert.Contains(t, out, "15/20")

	var toggled taskJSON
	out = env.mustRun("--json", "task", "toggle", added.ID)
	require.NoError(t, json.Unmarshal([]byte(out), &toggled))
	assert.True(t, toggled.Completed, "toggle flips the flag regardless of counters")
	assert.Equal(t, 15, toggled.CompletedQuestions)

	out = env.mustRun("task", "list", "--status", "done")
	assert.Contains(t, out, "Organic chemistry")
	out = env.mustRun("task", "list", "--status", "open")
	assert.Contains(t, out, "No tasks found.")

	out = env.mustRun("task", "find", "orgchem")
	assert.Contains(t, out, "Organic chemistry")

	out = env.mustRun("task", "delete", shortID(added.ID))
	assert.Contains(t, out, "Task deleted: Organic chemistry")

	out = env.mustRun("task", "list")
	assert.Contains(t, out, "No tasks found.")
}

func TestTaskCommands_Errors(t *testing.T) {
	env := newStudyEnv(t)

	_, err := env.run("", "task", "add", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

	_, err = env.run("", "task", "toggle", "missing-id")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = env.run("", "task", "adjust", "missing-id", "two")
	assert.ErrorContains(t, err, "whole number")

	_, err = env.run("", "task", "list", "--status", "someday")
	assert.ErrorContains(t, err, "invalid status")
}

func TestSettingsCommands(t *testing.T) {
	env := newStudyEnv(t)

	out := env.mustRun("settings", "show")
	assert.Contains(t, out, "25m")
	assert.Contains(t, out, "50 questions")
	assert.Contains(t, out, "on (bell)")
	assert.Contains(t, out, "Preset 1")

	env.mustRun("settings", "set", "--focus", "50m", "--short-break", "10", "--goal", "80",
		"--alarm", "off", "--alarm-sound", "digital", "--background", "3")

	var s domain.Settings
	out = env.mustRun("--json", "settings", "show")
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 3000, s.FocusTime)
	assert.Equal(t, 600, s.ShortBreakTime)
	assert.Equal(t, 15*60, s.LongBreakTime, "unset flags stay unchanged")
	assert.Equal(t, 80, s.DailyQuestionGoal)
	assert.False(t, s.AlarmEnabled)
	assert.Equal(t, domain.AlarmSounds[2].URL, s.AlarmSound)
	assert.Equal(t, domain.BackgroundPresets[2], s.BackgroundImage)
}

func TestSettingsCommands_Errors(t *testing.T) {
	env := newStudyEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no flags", []string{"settings", "set"}, "nothing to change"},
		{"too short", []string{"settings", "set", "--focus", "20s"}, "shorter than one minute"},
		{"bad alarm flag", []string{"settings", "set", "--alarm", "loud"}, "must be on or off"},
		{"unknown sound", []string{"settings", "set", "--alarm-sound", "gong"}, "unknown preset"},
		{"bad background", []string{"settings", "set", "--background", "ftp://example.com/bg.png"}, "invalid URL"},
		{"negative goal", []string{"settings", "set", "--goal", "-1"}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run("", tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestStatsCommands(t *testing.T) {
	env := newStudyEnv(t)

	out := env.mustRun("stats")
	assert.Contains(t, out, "Liquid study time: 0m 0s")
	assert.Contains(t, out, "Questions: 0 / 50 (0%)")

	out, err := env.run("n\n", "stats", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes made.")

	out, err = env.run("y\n", "stats", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Liquid study time reset.")

	out = env.mustRun("stats", "reset", "--force")
	assert.Contains(t, out, "Liquid study time reset.")

	var summary domain.DailySummary
	out = env.mustRun("--json", "stats", "show")
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, int64(0), summary.LiquidSeconds)
	assert.Equal(t, 50, summary.DailyGoal)
}

func TestCatalogCommands(t *testing.T) {
	env := newStudyEnv(t)

	out := env.mustRun("alarm", "list")
	for _, s := range domain.AlarmSounds {
		assert.Contains(t, out, s.Name)
	}
	assert.Contains(t, out, "* bell")

	out = env.mustRun("radio", "list")
	assert.Contains(t, out, "[1] Lofi Chill Radio")
	assert.Equal(t, len(domain.Streams), strings.Count(out, "\n"))

	out = env.mustRun("background", "list")
	assert.Contains(t, out, "* [1]")

	out = env.mustRun("background", "set", "https://example.com/desk.jpg")
	assert.Contains(t, out, "https://example.com/desk.jpg")
	out = env.mustRun("background", "list")
	assert.Contains(t, out, "* custom https://example.com/desk.jpg")

	_, err := env.run("", "background", "set", "9")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

func TestAudioCommands_SilentPlayer(t *testing.T) {
	env := newStudyEnv(t)

	out := env.mustRun("alarm", "preview", "beep")
	assert.Contains(t, out, "Playing beep")

	_, err := env.run("", "alarm", "preview", "gong")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)

	out = env.mustRun("radio", "play", "2", "--volume", "0.8")
	assert.Contains(t, out, "Study Beats · vol 80%")

	_, err = env.run("", "radio", "play", "Jazz")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}

func TestTipCommand(t *testing.T) {
	env := newStudyEnv(t)

	var tip struct {
		Tip string `json:"tip"`
	}
	out := env.mustRun("--json", "tip")
	require.NoError(t, json.Unmarshal([]byte(out), &tip))
	assert.Contains(t, domain.Tips, tip.Tip)
}

func TestTimerStatusCommand(t *testing.T) {
	env := newStudyEnv(t)
	env.mustRun("settings", "set", "--focus", "30m")

	out := env.mustRun("timer", "status")
	assert.Contains(t, out, "Focus")
	assert.Contains(t, out, "30:00")
	assert.Contains(t, out, "PAUSED")
}

func TestExportCommand(t *testing.T) {
	env := newStudyEnv(t)
	env.mustRun("task", "add", "Physics", "--total", "12")

	out := env.mustRun("export", "--format", "json")
	var doc struct {
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Tasks, 1)
	assert.Equal(t, "Physics", doc.Tasks[0].Title)

	path := filepath.Join(t.TempDir(), "report.csv")
	env.mustRun("export", "--format", "csv", "--output", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Physics")

	_, err = env.run("", "export", "--format", "pdf")
	assert.ErrorContains(t, err, "needs --output")

	_, err = env.run("", "export", "--format", "docx")
	assert.ErrorContains(t, err, "unknown export format")
}

func TestConfigCommands(t *testing.T) {
	env := newStudyEnv(t)

	out := env.mustRun("config", "path")
	assert.Equal(t, env.config+"\n", out)

	out = env.mustRun("config", "show")
	assert.Contains(t, out, env.db)
	assert.Contains(t, out, "127.0.0.1:7420")
	assert.Contains(t, out, "none")
}
