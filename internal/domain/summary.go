package domain

import "time"

// DailySummary is the progress panel: liquid time, questions done and the
// share of the daily goal reached.
type DailySummary struct {
	Date               time.Time  `json:"date" yaml:"date"`
	LiquidSeconds      int64      `json:"liquidSeconds" yaml:"liquid_seconds"`
	LiquidFormatted    string     `json:"liquidFormatted" yaml:"liquid_formatted"`
	CompletedQuestions int        `json:"completedQuestions" yaml:"completed_questions"`
	DailyGoal          int        `json:"dailyGoal" yaml:"daily_goal"`
	GoalPercent        float64    `json:"goalPercent" yaml:"goal_percent"`
	TasksTotal         int        `json:"tasksTotal" yaml:"tasks_total"`
	TasksCompleted     int        `json:"tasksCompleted" yaml:"tasks_completed"`
	Timer              TimerState `json:"timer" yaml:"timer"`
}

// NewDailySummary builds the summary from its parts.
func NewDailySummary(now time.Time, liquid LiquidTime, tasks []*Task, goal int, timer TimerState) DailySummary {
	s := DailySummary{
		Date:            now,
		LiquidSeconds:   int64(liquid),
		LiquidFormatted: liquid.String(),
		DailyGoal:       goal,
		TasksTotal:      len(tasks),
		Timer:           timer,
	}
	for _, t := range tasks {
		s.CompletedQuestions += t.CompletedQuestions
		if t.Completed {
			s.TasksCompleted++
		}
	}
	s.GoalPercent = GoalPercent(s.CompletedQuestions, goal)
	return s
}

// GoalPercent returns done/goal as a percentage capped at 100. A zero goal
// counts as reached once anything is done.
func GoalPercent(done, goal int) float64 {
	if goal <= 0 {
		if done > 0 {
			return 100
		}
		return 0
	}
	return min(100, float64(done)/float64(goal)*100)
}
