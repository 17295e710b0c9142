package service

import (
	"testing"
	"time"

	"buba/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestTasksForDatePartitionsByDayKind(t *testing.T) {
	tasks := []*models.RoutineTask{
		{ID: 1, Title: "Escovar os dentes", IsWeekend: false},
		{ID: 2, Title: "Ir à escola", IsWeekend: false},
		{ID: 3, Title: "Passeio no parque", IsWeekend: true},
	}

	tuesday := mustDate(t, "2025-06-03")
	saturday := mustDate(t, "2025-06-07")

	weekday := TasksForDate(tasks, tuesday)
	if len(weekday) != 2 {
		t.Fatalf("tuesday tasks = %d, want 2", len(weekday))
	}
	for _, task := range weekday {
		if task.IsWeekend {
			t.Errorf("weekend task %q shown on a Tuesday", task.Title)
		}
	}

	weekend := TasksForDate(tasks, saturday)
	if len(weekend) != 1 {
		t.Fatalf("saturday tasks = %d, want 1", len(weekend))
	}
	if weekend[0].ID != 3 {
		t.Errorf("saturday task ID = %d, want 3", weekend[0].ID)
	}
}

func TestTasksForDateEmptyInput(t *testing.T) {
	if got := TasksForDate(nil, mustDate(t, "2025-06-03")); len(got) != 0 {
		t.Errorf("expected no tasks, got %d", len(got))
	}
}

func TestAllCompleted(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*models.RoutineTask
		want  bool
	}{
		{
			name:  "empty list is not completed",
			tasks: nil,
			want:  false,
		},
		{
			name: "all done",
			tasks: []*models.RoutineTask{
				{Completed: true},
				{Completed: true},
			},
			want: true,
		},
		{
			name: "one open",
			tasks: []*models.RoutineTask{
				{Completed: true},
				{Completed: false},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllCompleted(tt.tasks); got != tt.want {
				t.Errorf("AllCompleted = %v, want %v", got, tt.want)
			}
		})
	}
}
