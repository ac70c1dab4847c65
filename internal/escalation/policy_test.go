package escalation

import (
	"testing"
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 16, hour, min, 0, 0, time.UTC)
}

func newTask(status domain.TaskStatus, level domain.PositionLevel) *domain.WorkflowTask {
	return &domain.WorkflowTask{
		ID:               "T-1",
		Title:            "Review contract",
		Status:           status,
		AssignedTo:       level,
		OriginalAssignee: level,
		ScheduledTime:    at(9, 0),
		ReminderTime:     at(8, 50),
		EscalationTime:   at(9, 15),
		WarningTime:      at(9, 30),
	}
}

func TestEvaluate(t *testing.T) {
	escalated := newTask(domain.TaskEscalated, domain.LevelStaff)
	escalated.AssignedTo = domain.LevelDirectSupervisor

	manualWarning := newTask(domain.TaskPending, domain.LevelStaff)
	if err := manualWarning.TransitionTo(domain.TaskWarning, at(9, 5)); err != nil {
		t.Fatalf("TransitionTo: %v", err)
	}

	warnedAndEscalated := newTask(domain.TaskPending, domain.LevelStaff)
	if _, err := warnedAndEscalated.Escalate(at(9, 20)); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if err := warnedAndEscalated.Warn(at(9, 35)); err != nil {
		t.Fatalf("Warn: %v", err)
	}

	tests := []struct {
		name         string
		task         *domain.WorkflowTask
		now          time.Time
		wantEscalate bool
		wantTo       domain.PositionLevel
		wantWarn     bool
	}{
		{
			name: "before escalation threshold nothing fires",
			task: newTask(domain.TaskPending, domain.LevelStaff),
			now:  at(9, 10),
		},
		{
			name: "exactly at escalation threshold nothing fires",
			task: newTask(domain.TaskPending, domain.LevelStaff),
			now:  at(9, 15),
		},
		{
			name:         "past escalation threshold escalates one rung",
			task:         newTask(domain.TaskInProgress, domain.LevelStaff),
			now:          at(9, 20),
			wantEscalate: true,
			wantTo:       domain.LevelDirectSupervisor,
		},
		{
			name:     "already escalated task only warns",
			task:     escalated,
			now:      at(9, 35),
			wantWarn: true,
		},
		{
			name:         "first sweep past warning fires both rules",
			task:         newTask(domain.TaskPending, domain.LevelBranchDeputy),
			now:          at(9, 35),
			wantEscalate: true,
			wantTo:       domain.LevelGeneralManager,
			wantWarn:     true,
		},
		{
			name:         "general manager escalates to itself",
			task:         newTask(domain.TaskPending, domain.LevelGeneralManager),
			now:          at(9, 20),
			wantEscalate: true,
			wantTo:       domain.LevelGeneralManager,
		},
		{
			name:         "manual warning still escalates",
			task:         manualWarning,
			now:          at(10, 0),
			wantEscalate: true,
			wantTo:       domain.LevelDirectSupervisor,
		},
		{
			name: "escalated and warned task is left alone",
			task: warnedAndEscalated,
			now:  at(10, 0),
		},
		{
			name: "completed task is ignored",
			task: newTask(domain.TaskCompleted, domain.LevelStaff),
			now:  at(10, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.task, tt.now)
			if d.Escalate != tt.wantEscalate {
				t.Errorf("Escalate = %v, want %v", d.Escalate, tt.wantEscalate)
			}
			if d.EscalateTo != tt.wantTo {
				t.Errorf("EscalateTo = %q, want %q", d.EscalateTo, tt.wantTo)
			}
			if d.Warn != tt.wantWarn {
				t.Errorf("Warn = %v, want %v", d.Warn, tt.wantWarn)
			}
		})
	}
}

func TestEvaluate_GeneralManagerEscalatesOnce(t *testing.T) {
	task := newTask(domain.TaskPending, domain.LevelGeneralManager)
	if _, err := task.Escalate(at(9, 20)); err != nil {
		t.Fatalf("Escalate: %v", err)
	}
	if d := Evaluate(task, at(9, 25)); d.Escalate {
		t.Errorf("ceiling task escalated a second time")
	}
}

func TestSweepable(t *testing.T) {
	for status, want := range map[domain.TaskStatus]bool{
		domain.TaskPending:    true,
		domain.TaskInProgress: true,
		domain.TaskEscalated:  true,
		domain.TaskWarning:    true,
		domain.TaskCompleted:  false,
	} {
		if got := Sweepable(status); got != want {
			t.Errorf("Sweepable(%s) = %v, want %v", status, got, want)
		}
	}
}
