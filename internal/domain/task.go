package domain

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskEscalated  TaskStatus = "escalated"
	TaskWarning    TaskStatus = "warning"
)

// TaskStatuses lists every status in lifecycle order.
var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskEscalated, TaskWarning, TaskCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskEscalated, TaskWarning:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted
}

// ParseTaskStatus converts a raw string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return st, nil
}

// allowedTransitions lists the targets reachable from each status.
// Re-entering the current status is always allowed and handled as a no-op.
var allowedTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskEscalated, TaskWarning, TaskCompleted},
	TaskInProgress: {TaskEscalated, TaskWarning, TaskCompleted},
	TaskEscalated:  {TaskInProgress, TaskWarning, TaskCompleted},
	TaskWarning:    {TaskCompleted},
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to TaskStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// WorkflowTask is the runtime instantiation of a node within one instance.
// Title, description, category and dependencies are copied from the node at
// creation so later template edits do not reach running tasks.
type WorkflowTask struct {
	ID               string        `json:"id"`
	InstanceID       string        `json:"instanceId"`
	NodeID           string        `json:"nodeId"`
	Seq              int           `json:"seq"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Category         string        `json:"category,omitempty"`
	DependsOn        []string      `json:"dependsOn,omitempty"`
	AssignedTo       PositionLevel `json:"assignedTo"`
	OriginalAssignee PositionLevel `json:"originalAssignee"`
	Status           TaskStatus    `json:"status"`
	ScheduledTime    time.Time     `json:"scheduledTime"`
	ReminderTime     time.Time     `json:"reminderTime"`
	EscalationTime   time.Time     `json:"escalationTime"`
	WarningTime      time.Time     `json:"warningTime"`
	StartTime        *time.Time    `json:"startTime,omitempty"`
	CompletionTime   *time.Time    `json:"completionTime,omitempty"`
	EscalatedAt      *time.Time    `json:"escalatedAt,omitempty"`
	WarnedAt         *time.Time    `json:"warnedAt,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// IsEscalated reports whether responsibility has already been handed off.
func (t *WorkflowTask) IsEscalated() bool {
	return t.EscalatedAt != nil || t.AssignedTo != t.OriginalAssignee
}

// TransitionTo moves the task to status, applying the entry side effects:
// entering completed stamps CompletionTime once, entering in_progress stamps
// StartTime only if unset.
func (t *WorkflowTask) TransitionTo(status TaskStatus, now time.Time) error {
	if !CanTransition(t.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, status)
	}
	switch status {
	case TaskCompleted:
		if t.CompletionTime == nil {
			t.CompletionTime = &now
		}
	case TaskInProgress:
		if t.StartTime == nil {
			t.StartTime = &now
		}
	case TaskWarning:
		if t.WarnedAt == nil {
			t.WarnedAt = &now
		}
	}
	t.Status = status
	t.UpdatedAt = now
	return nil
}

// Escalate hands responsibility one rung up the hierarchy and marks the task
// escalated. At the ceiling the assignee stays the general manager. A task
// already in warning keeps that status.
func (t *WorkflowTask) Escalate(now time.Time) (PositionLevel, error) {
	if t.Status.IsTerminal() {
		return "", fmt.Errorf("%w: cannot escalate %s task", ErrInvalidTransition, t.Status)
	}
	t.AssignedTo = t.AssignedTo.Next()
	t.EscalatedAt = &now
	if t.Status != TaskWarning {
		t.Status = TaskEscalated
	}
	t.UpdatedAt = now
	return t.AssignedTo, nil
}

// Warn raises the severe-overdue flag.
func (t *WorkflowTask) Warn(now time.Time) error {
	if t.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot warn %s task", ErrInvalidTransition, t.Status)
	}
	t.WarnedAt = &now
	t.Status = TaskWarning
	t.UpdatedAt = now
	return nil
}
