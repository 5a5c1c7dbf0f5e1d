package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/mcp"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools to drive the timer, edit tasks and settings and read
today's summary. The timer lives as long as the server does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so status goes to stderr
		stderr := cmd.ErrOrStderr()
		fmt.Fprintln(stderr, "🚀 Starting MCP server...")
		fmt.Fprintln(stderr, "   The server will communicate via stdio")
		fmt.Fprintln(stderr, "   Press Ctrl+C to stop")

		server := mcp.NewServer(services.NewStateService(app.state))
		if err := server.Start(cmd.Context()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
