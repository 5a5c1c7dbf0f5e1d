package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/audio"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/notification"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/storage"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/tips"
	"github.com/thalesaraujo16/pomodoro-teste/internal/config"
	"github.com/thalesaraujo16/pomodoro-teste/internal/logging"
	"github.com/thalesaraujo16/pomodoro-teste/internal/ports"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *slog.Logger
	closeLog func() error
	storage  ports.Storage
	notifier *notification.Notifier
	state    *services.App
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	// Load configuration
	var err error
	if configPath != "" {
		app.config, err = config.LoadFrom(configPath)
	} else {
		app.config, err = config.Load()
	}
	if err != nil {
		// If config loading fails, use defaults
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		app.config = config.DefaultConfig()
	}

	// Logging goes to a file because the dashboard owns the terminal
	app.logger, app.closeLog, err = logging.Open(app.config.Log.File, app.config.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging to stderr)\n", err)
		app.logger = logging.New(os.Stderr, "warn")
		app.closeLog = nil
	}

	// Initialize notifier
	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	player, err := audio.New(app.config.Audio.Player)
	if err != nil {
		app.logger.Warn("audio disabled", "player", app.config.Audio.Player, "error", err)
	}

	app.state, err = services.NewApp(ctx, app.storage, services.AppOptions{
		Player:   player,
		Notifier: app.notifier,
		Tips:     newTipProvider(app.config, app.logger),
		Volume:   app.config.Audio.Volume,
		Logger:   app.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	return nil
}

// newTipProvider builds the configured tip source.
func newTipProvider(cfg *config.Config, logger *slog.Logger) ports.TipProvider {
	if cfg.Tips.Provider != "remote" {
		return tips.NewLocal()
	}
	apiKey := os.Getenv(cfg.Tips.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("remote tips need an API key, using local tips", "env", cfg.Tips.APIKeyEnv)
		return tips.NewLocal()
	}
	return tips.NewRemote(tips.RemoteConfig{
		Endpoint: cfg.Tips.Endpoint,
		Model:    cfg.Tips.Model,
		APIKey:   apiKey,
		Timeout:  time.Duration(cfg.Tips.Timeout),
		Logger:   logger,
	})
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.state != nil {
		app.state.Close()
		app.state = nil
	}

	var errs []error
	if app.storage != nil {
		errs = append(errs, app.storage.Close())
		app.storage = nil
	}
	if app.closeLog != nil {
		errs = append(errs, app.closeLog())
		app.closeLog = nil
	}
	return errors.Join(errs...)
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
