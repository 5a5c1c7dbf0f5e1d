package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/httpapi"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local JSON API",
	Long: `Serve the timer, tasks, settings and summary over a JSON API on the
loopback interface (default 127.0.0.1:7420). The timer lives as long as the
server does. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := app.config.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		gin.SetMode(gin.ReleaseMode)
		handler := httpapi.NewHandler(services.NewStateService(app.state), app.logger)
		srv := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewRouter(handler),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "🌐 Serving on http://%s (Ctrl+C to stop)\n", addr)
		app.logger.Info("api server started", "addr", addr)

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		app.logger.Info("api server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config server.addr)")
}
