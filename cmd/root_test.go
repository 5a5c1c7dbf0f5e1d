package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

// TestRootCmd_BareExecution checks the root command without starting the dashboard
func TestRootCmd_BareExecution(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	if rootCmd.Use != "study" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "study")
	}
}

// TestRootCmd_Help tests the --help flag
func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	if !bytes.Contains([]byte(stdout), []byte("study")) && !bytes.Contains([]byte(stdout), []byte("Study")) {
		t.Error("help output should contain 'study' or 'Study'")
	}
}

// TestRootCmd_Flags tests that global flags are registered
func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"db", "json", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}
}

// TestRootCmd_Subcommands checks that every command group is wired
func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"timer", "task", "settings", "stats", "alarm", "radio", "background", "tip", "export", "mcp", "serve", "config"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q should be registered", name)
		}
	}
}

// TestFormatMinutes tests the formatMinutes helper function
func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		duration int64 // minutes
		want     string
	}{
		{"25 minutes", 25, "25m"},
		{"60 minutes", 60, "1h"},
		{"90 minutes", 90, "1h30m"},
		{"120 minutes", 120, "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := time.Duration(tt.duration) * time.Minute
			got := formatMinutes(d)
			if got != tt.want {
				t.Errorf("formatMinutes(%d min) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25m"},
		{3600, "1h"},
		{90, "1m30s"},
		{1, "1s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatSeconds(tt.seconds); got != tt.want {
				t.Errorf("formatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"25m", 1500, false},
		{"1h30m", 5400, false},
		{"50", 3000, false},
		{"90s", 90, false},
		{"30s", 0, true},
		{"0", 0, true},
		{"soon", 0, true},
		{"5x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMinutes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"true", true, false},
		{"off", false, false},
		{"no", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOnOff(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseOnOff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseOnOff(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"0b7e4c1a-2f3d-4e5f-8a9b-0c1d2e3f4a5b", "0b7e4c1a"},
		{"1718000000000", "17180000"},
		{"42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := shortID(tt.id); got != tt.want {
				t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
