package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

func writePDF(w io.Writer, r Report) error {
	s := r.Summary

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Study Report: %s", s.Date.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Liquid study time: %s", s.LiquidFormatted))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Questions done: %d / %d (%.0f%%)", s.CompletedQuestions, s.DailyGoal, s.GoalPercent))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Focus blocks: %d", s.Timer.FocusCompletions))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Tasks")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	if len(r.Tasks) == 0 {
		pdf.Cell(0, 8, "  - No tasks.")
		pdf.Ln(8)
	}
	for _, t := range r.Tasks {
		status := "[ ]"
		if t.Completed {
			status = "[x]"
		}
		line := fmt.Sprintf("  %s %s (%d/%d)", status, t.Title, t.CompletedQuestions, t.TotalQuestions)
		pdf.MultiCell(0, 7, tr(line), "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", r.GeneratedAt.Format("2006-01-02 15:04")))

	return pdf.Output(w)
}
