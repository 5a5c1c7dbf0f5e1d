package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks and today's summary",
	Long: `Export the question ledger and today's summary as json, yaml, csv, md or pdf.
Output goes to stdout unless --output is given; pdf always needs --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		if format == export.FormatPDF && exportOutput == "" {
			return fmt.Errorf("pdf export needs --output")
		}

		ctx := cmd.Context()
		report := export.Report{
			GeneratedAt: time.Now(),
			Summary:     app.state.Summary(ctx),
			Tasks:       app.state.Tasks.ListTasks(ctx),
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}

		if err := export.Write(w, format, report); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		if exportOutput != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "📄 Exported %d tasks to %s\n", len(report.Tasks), exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: json, yaml, csv, md or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}
