// Package export renders the task ledger and daily summary as JSON, YAML,
// CSV, Markdown or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
)

// Format is an output format name.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, FormatPDF}

// ParseFormat accepts a format name; "yml" and "markdown" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, yaml, csv, md or pdf)", s)
}

// Report is everything an export contains.
type Report struct {
	GeneratedAt time.Time
	Summary     domain.DailySummary
	Tasks       []*domain.Task
}

// taskRow is the exported shape of a task.
type taskRow struct {
	ID                 string  `json:"id" yaml:"id"`
	Title              string  `json:"title" yaml:"title"`
	TotalQuestions     int     `json:"totalQuestions" yaml:"total_questions"`
	CompletedQuestions int     `json:"completedQuestions" yaml:"completed_questions"`
	Completed          bool    `json:"completed" yaml:"completed"`
	Progress           float64 `json:"progress" yaml:"progress"`
	CreatedAt          string  `json:"createdAt" yaml:"created_at"`
}

type document struct {
	GeneratedAt string              `json:"generatedAt" yaml:"generated_at"`
	Summary     domain.DailySummary `json:"summary" yaml:"summary"`
	Tasks       []taskRow           `json:"tasks" yaml:"tasks"`
}

func rows(tasks []*domain.Task) []taskRow {
	out := make([]taskRow, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskRow{
			ID:                 t.ID,
			Title:              t.Title,
			TotalQuestions:     t.TotalQuestions,
			CompletedQuestions: t.CompletedQuestions,
			Completed:          t.Completed,
			Progress:           t.Progress(),
			CreatedAt:          t.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func (r Report) document() document {
	return document{
		GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
		Summary:     r.Summary,
		Tasks:       rows(r.Tasks),
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, r)
	case FormatMarkdown:
		return writeMarkdown(w, r)
	case FormatPDF:
		return writePDF(w, r)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{
		"id", "title", "total_questions", "completed_questions",
		"completed", "progress_percent", "created_at",
	})

	for _, t := range rows(r.Tasks) {
		_ = cw.Write([]string{
			t.ID,
			t.Title,
			strconv.Itoa(t.TotalQuestions),
			strconv.Itoa(t.CompletedQuestions),
			strconv.FormatBool(t.Completed),
			fmt.Sprintf("%.0f", t.Progress*100),
			t.CreatedAt,
		})
	}

	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, r Report) error {
	s := r.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "# Study Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "## Summary\n")
	fmt.Fprintf(&b, "- Liquid study time: %s\n", s.LiquidFormatted)
	fmt.Fprintf(&b, "- Questions done: %d / %d (%.0f%%)\n", s.CompletedQuestions, s.DailyGoal, s.GoalPercent)
	fmt.Fprintf(&b, "- Tasks completed: %d / %d\n", s.TasksCompleted, s.TasksTotal)
	fmt.Fprintf(&b, "- Focus blocks: %d\n\n", s.Timer.FocusCompletions)

	fmt.Fprintf(&b, "## Tasks\n")
	if len(r.Tasks) == 0 {
		fmt.Fprintf(&b, "No tasks.\n")
	}
	for _, t := range r.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s (%d/%d)\n", box, t.Title, t.CompletedQuestions, t.TotalQuestions)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
