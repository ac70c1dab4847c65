package scheduler

import (
	"testing"

	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func task(id, title string, status domain.TaskStatus) *domain.WorkflowTask {
	times := ComputeTimes(node(id, 30, 10, 15, 30), nineAM)
	return &domain.WorkflowTask{
		ID:               id,
		Title:            title,
		Status:           status,
		AssignedTo:       domain.LevelStaff,
		OriginalAssignee: domain.LevelStaff,
		ScheduledTime:    times.Scheduled,
		ReminderTime:     times.Reminder,
		EscalationTime:   times.Escalation,
		WarningTime:      times.Warning,
	}
}

func TestClassify(t *testing.T) {
	pending := task("t", "T", domain.TaskPending)

	assert.Equal(t, UrgencyUpcoming, Classify(pending, at(8, 0)))
	assert.Equal(t, UrgencyDueSoon, Classify(pending, at(8, 50)))
	assert.Equal(t, UrgencyDueSoon, Classify(pending, at(9, 15)))
	assert.Equal(t, UrgencyOverdue, Classify(pending, at(9, 16)))

	assert.Equal(t, UrgencyEscalated, Classify(task("e", "E", domain.TaskEscalated), at(8, 0)))
	assert.Equal(t, UrgencyWarning, Classify(task("w", "W", domain.TaskWarning), at(8, 0)))
	assert.Equal(t, UrgencyDone, Classify(task("d", "D", domain.TaskCompleted), at(12, 0)))
}

func TestSortByUrgency(t *testing.T) {
	done := task("1", "Done", domain.TaskCompleted)
	warn := task("2", "Warn", domain.TaskWarning)
	pendingB := task("3", "B", domain.TaskPending)
	pendingA := task("4", "A", domain.TaskPending)
	esc := task("5", "Esc", domain.TaskEscalated)

	tasks := []*domain.WorkflowTask{done, pendingB, esc, pendingA, warn}
	SortByUrgency(tasks, at(9, 20))

	assert.Equal(t, []*domain.WorkflowTask{warn, esc, pendingA, pendingB, done}, tasks)
}
