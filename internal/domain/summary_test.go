package domain

import (
	"testing"
	"time"
)

func TestFormatLiquidTime(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0m 0s"},
		{59, "0m 59s"},
		{61, "1m 1s"},
		{3599, "59m 59s"},
		{3600, "1h 0m"},
		{5430, "1h 30m"},
		{-4, "0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatLiquidTime(tt.seconds); got != tt.want {
			t.Errorf("FormatLiquidTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(1500); got != "25:00" {
		t.Errorf("FormatClock(1500) = %q", got)
	}
	if got := FormatClock(65); got != "01:05" {
		t.Errorf("FormatClock(65) = %q", got)
	}
}

func TestLiquidTime_AddIgnoresNegative(t *testing.T) {
	l := LiquidTime(10).Add(-3)
	if l != 10 {
		t.Errorf("Add(-3) = %d, want 10", l)
	}
}

func TestGoalPercent(t *testing.T) {
	tests := []struct {
		done, goal int
		want       float64
	}{
		{0, 50, 0},
		{25, 50, 50},
		{80, 50, 100},
		{0, 0, 0},
		{3, 0, 100},
	}
	for _, tt := range tests {
		if got := GoalPercent(tt.done, tt.goal); got != tt.want {
			t.Errorf("GoalPercent(%d, %d) = %v, want %v", tt.done, tt.goal, got, tt.want)
		}
	}
}

func TestNewDailySummary(t *testing.T) {
	tasks := []*Task{
		{ID: "1", TotalQuestions: 10, CompletedQuestions: 10, Completed: true},
		{ID: "2", TotalQuestions: 10, CompletedQuestions: 5},
	}
	s := NewDailySummary(time.Now(), 3700, tasks, 30, TimerState{})
	if s.CompletedQuestions != 15 || s.TasksCompleted != 1 || s.TasksTotal != 2 {
		t.Errorf("summary = %+v", s)
	}
	if s.GoalPercent != 50 {
		t.Errorf("GoalPercent = %v", s.GoalPercent)
	}
	if s.LiquidFormatted != "1h 1m" {
		t.Errorf("LiquidFormatted = %q", s.LiquidFormatted)
	}
}
