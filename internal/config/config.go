// Package config provides configuration management for study.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// Config holds all configuration for the study application. User-facing
// timer settings (durations, goal, alarm) live in the database; this file
// covers machine-level concerns.
type Config struct {
	Notifications NotificationConfig `mapstructure:"notifications"`
	Audio         AudioConfig        `mapstructure:"audio"`
	Tips          TipsConfig         `mapstructure:"tips"`
	Server        ServerConfig       `mapstructure:"server"`
	Log           LogConfig          `mapstructure:"log"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorFocus          string `mapstructure:"color_focus"`
	ColorBreak          string `mapstructure:"color_break"`
	ColorPaused         string `mapstructure:"color_paused"`
	ColorTitle          string `mapstructure:"color_title"`
	ColorTask           string `mapstructure:"color_task"`
	ColorHelp           string `mapstructure:"color_help"`
	FocusGradientStart  string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd    string `mapstructure:"focus_gradient_end"`
	BreakGradientStart  string `mapstructure:"break_gradient_start"`
	BreakGradientEnd    string `mapstructure:"break_gradient_end"`
	PausedGradientStart string `mapstructure:"paused_gradient_start"`
	PausedGradientEnd   string `mapstructure:"paused_gradient_end"`
	IconApp             string `mapstructure:"icon_app"`
	IconTask            string `mapstructure:"icon_task"`
	IconStats           string `mapstructure:"icon_stats"`
	IconRadio           string `mapstructure:"icon_radio"`
	IconPaused          string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:          "#7C6FE0",
		ColorBreak:          "#4ECDC4",
		ColorPaused:         "#6B7280",
		ColorTitle:          "#6B7280",
		ColorTask:           "#A0AEC0",
		ColorHelp:           "#95A5A6",
		FocusGradientStart:  "#7C6FE0",
		FocusGradientEnd:    "#A78BFA",
		BreakGradientStart:  "#4ECDC4",
		BreakGradientEnd:    "#2ECC71",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",
		IconApp:             "🍅",
		IconTask:            "📋",
		IconStats:           "📊",
		IconRadio:           "📻",
		IconPaused:          "⏸",
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// AudioConfig selects the external audio player.
type AudioConfig struct {
	// Player is a command name (mpv, ffplay, paplay), "auto" or "none".
	Player string  `mapstructure:"player"`
	Volume float64 `mapstructure:"volume"`
}

// TipsConfig selects the tip provider.
type TipsConfig struct {
	Provider  string   `mapstructure:"provider"`
	Endpoint  string   `mapstructure:"endpoint"`
	Model     string   `mapstructure:"model"`
	APIKeyEnv string   `mapstructure:"api_key_env"`
	Timeout   Duration `mapstructure:"timeout"`
}

// ServerConfig holds the local HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

const defaultDataDir = "~/.study"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Audio: AudioConfig{
			Player: "auto",
			Volume: domain.DefaultVolume,
		},
		Tips: TipsConfig{
			Provider:  "local",
			Model:     "gemini-2.0-flash",
			APIKeyEnv: "GEMINI_API_KEY",
			Timeout:   Duration(10 * time.Second),
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7420",
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath, creating it with
// defaults when it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix("STUDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dataDir, "study.log")
	}
	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1 {
		cfg.Audio.Volume = domain.DefaultVolume
	}

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes cfg to configPath.
func SaveTo(configPath string, cfg *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("audio.player", cfg.Audio.Player)
	v.Set("audio.volume", cfg.Audio.Volume)
	v.Set("tips.provider", cfg.Tips.Provider)
	v.Set("tips.endpoint", cfg.Tips.Endpoint)
	v.Set("tips.model", cfg.Tips.Model)
	v.Set("tips.api_key_env", cfg.Tips.APIKeyEnv)
	v.Set("tips.timeout", cfg.Tips.Timeout.String())
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("storage.data_dir", cfg.Storage.DataDir)

	t := cfg.Theme
	v.Set("theme.color_focus", t.ColorFocus)
	v.Set("theme.color_break", t.ColorBreak)
	v.Set("theme.color_paused", t.ColorPaused)
	v.Set("theme.color_title", t.ColorTitle)
	v.Set("theme.color_task", t.ColorTask)
	v.Set("theme.color_help", t.ColorHelp)
	v.Set("theme.focus_gradient_start", t.FocusGradientStart)
	v.Set("theme.focus_gradient_end", t.FocusGradientEnd)
	v.Set("theme.break_gradient_start", t.BreakGradientStart)
	v.Set("theme.break_gradient_end", t.BreakGradientEnd)
	v.Set("theme.paused_gradient_start", t.PausedGradientStart)
	v.Set("theme.paused_gradient_end", t.PausedGradientEnd)
	v.Set("theme.icon_app", t.IconApp)
	v.Set("theme.icon_task", t.IconTask)
	v.Set("theme.icon_stats", t.IconStats)
	v.Set("theme.icon_radio", t.IconRadio)
	v.Set("theme.icon_paused", t.IconPaused)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".study", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "study.db")
}

func expandHome(dir string) (string, error) {
	if dir == "" {
		dir = defaultDataDir
	}
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~")), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("notifications.sound", d.Notifications.Sound)
	v.SetDefault("audio.player", d.Audio.Player)
	v.SetDefault("audio.volume", d.Audio.Volume)
	v.SetDefault("tips.provider", d.Tips.Provider)
	v.SetDefault("tips.endpoint", d.Tips.Endpoint)
	v.SetDefault("tips.model", d.Tips.Model)
	v.SetDefault("tips.api_key_env", d.Tips.APIKeyEnv)
	v.SetDefault("tips.timeout", d.Tips.Timeout.String())
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("storage.data_dir", d.Storage.DataDir)

	// Theme defaults
	t := d.Theme
	v.SetDefault("theme.color_focus", t.ColorFocus)
	v.SetDefault("theme.color_break", t.ColorBreak)
	v.SetDefault("theme.color_paused", t.ColorPaused)
	v.SetDefault("theme.color_title", t.ColorTitle)
	v.SetDefault("theme.color_task", t.ColorTask)
	v.SetDefault("theme.color_help", t.ColorHelp)
	v.SetDefault("theme.focus_gradient_start", t.FocusGradientStart)
	v.SetDefault("theme.focus_gradient_end", t.FocusGradientEnd)
	v.SetDefault("theme.break_gradient_start", t.BreakGradientStart)
	v.SetDefault("theme.break_gradient_end", t.BreakGradientEnd)
	v.SetDefault("theme.paused_gradient_start", t.PausedGradientStart)
	v.SetDefault("theme.paused_gradient_end", t.PausedGradientEnd)
	v.SetDefault("theme.icon_app", t.IconApp)
	v.SetDefault("theme.icon_task", t.IconTask)
	v.SetDefault("theme.icon_stats", t.IconStats)
	v.SetDefault("theme.icon_radio", t.IconRadio)
	v.SetDefault("theme.icon_paused", t.IconPaused)
}
