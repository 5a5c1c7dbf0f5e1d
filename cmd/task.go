package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thalesaraujo16/pomodoro-teste/internal/adapters/tui"
	"github.com/thalesaraujo16/pomodoro-teste/internal/domain"
	"github.com/thalesaraujo16/pomodoro-teste/internal/services"
)

var (
	taskTotal  int
	taskStatus string
)

// taskCmd groups the question ledger commands.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage question tasks",
	Long:    `Add, list, complete and delete question-practice tasks.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long:  `Add a task with a target number of questions (default 1). Without a title you are prompted for one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		if len(args) == 0 {
			result := tui.RunTextPrompt("Task:", "What are you practicing?", &app.config.Theme)
			if result.Aborted {
				return nil
			}
			title = result.Value
		}

		task, err := app.state.Tasks.AddTask(cmd.Context(), services.AddTaskRequest{
			Title:          title,
			TotalQuestions: taskTotal,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), taskData(task))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task added: %s, %d questions (ID: %s)\n", task.Title, task.TotalQuestions, shortID(task.ID))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List all tasks, newest first, or filter by status (open, done).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := filterTasks(app.state.Tasks.ListTasks(cmd.Context()), taskStatus)
		if err != nil {
			return err
		}
		return printTasks(cmd.OutOrStdout(), tasks)
	},
}

var taskFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Fuzzy-search task titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks := app.state.Tasks.FindTasks(cmd.Context(), strings.Join(args, " "))
		return printTasks(cmd.OutOrStdout(), tasks)
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Flip a task's completed flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := resolveTaskID(ctx, args[0])
		if err != nil {
			return err
		}
		task, err := app.state.Tasks.ToggleTask(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}
		return printTask(cmd.OutOrStdout(), task)
	},
}

var taskAdjustCmd = &cobra.Command{
	Use:   "adjust [id] [delta]",
	Short: "Add to or subtract from a task's completed questions",
	Long: `Change the completed question count by delta, e.g. "study task adjust ab12 3"
or "study task adjust ab12 -- -1". The count stays between zero and the total.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid delta %q: must be a whole number", args[1])
		}
		id, err := resolveTaskID(ctx, args[0])
		if err != nil {
			return err
		}
		task, err := app.state.Tasks.AdjustTask(ctx, id, delta)
		if err != nil {
			return fmt.Errorf("failed to adjust task: %w", err)
		}
		return printTask(cmd.OutOrStdout(), task)
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		task, err := app.state.Tasks.GetTask(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to find task %q: %w", args[0], err)
		}
		if err := app.state.Tasks.DeleteTask(ctx, task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"deleted": task.ID})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑  Task deleted: %s\n", task.Title)
		return nil
	},
}

func init() {
	taskAddCmd.Flags().IntVarP(&taskTotal, "total", "n", 1, "Number of questions in the task")
	taskListCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "Filter by status (open, done)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskFindCmd)
	taskCmd.AddCommand(taskToggleCmd)
	taskCmd.AddCommand(taskAdjustCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// resolveTaskID expands an id prefix to the full task id.
func resolveTaskID(ctx context.Context, ref string) (string, error) {
	task, err := app.state.Tasks.GetTask(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to find task %q: %w", ref, err)
	}
	return task.ID, nil
}

func filterTasks(tasks []*domain.Task, status string) ([]*domain.Task, error) {
	var keep func(*domain.Task) bool
	switch status {
	case "":
		return tasks, nil
	case "open", "pending":
		keep = func(t *domain.Task) bool { return !t.Completed }
	case "done", "completed":
		keep = func(t *domain.Task) bool { return t.Completed }
	default:
		return nil, fmt.Errorf("invalid status %q: must be open or done", status)
	}

	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func taskData(task *domain.Task) map[string]any {
	return map[string]any{
		"id":                  task.ID,
		"title":               task.Title,
		"total_questions":     task.TotalQuestions,
		"completed_questions": task.CompletedQuestions,
		"completed":           task.Completed,
		"created_at":          task.CreatedAt.Format(time.RFC3339),
	}
}

func printTask(w io.Writer, task *domain.Task) error {
	if jsonOutput {
		return printJSON(w, taskData(task))
	}
	fmt.Fprintf(w, "%s %s  %d/%d (ID: %s)\n", taskIcon(task), task.Title, task.CompletedQuestions, task.TotalQuestions, shortID(task.ID))
	return nil
}

func printTasks(w io.Writer, tasks []*domain.Task) error {
	if jsonOutput {
		list := make([]map[string]any, 0, len(tasks))
		for _, task := range tasks {
			list = append(list, taskData(task))
		}
		return printJSON(w, map[string]any{
			"tasks": list,
			"count": len(list),
		})
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	fmt.Fprintf(w, "📋 Tasks (%d):\n\n", len(tasks))
	for _, task := range tasks {
		fmt.Fprintf(w, "%s %s  %d/%d (ID: %s)\n", taskIcon(task), task.Title, task.CompletedQuestions, task.TotalQuestions, shortID(task.ID))
	}
	return nil
}

func taskIcon(task *domain.Task) string {
	if task.Completed {
		return "✅"
	}
	return "⏳"
}

// shortID trims uuids for display. Ids imported from older data may be
// shorter than the prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
