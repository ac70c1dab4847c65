// Package escalation contains the pure decision logic of the escalation
// sweeper. Evaluate inspects a task at a point in time and reports which
// timer rules fire, without mutating anything.
package escalation

import (
	"fmt"
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
)

// Decision is the outcome of evaluating one task.
type Decision struct {
	Escalate bool
	// EscalateTo is the new assignee when Escalate is set.
	EscalateTo domain.PositionLevel
	Warn       bool
}

// Fires reports whether any rule applies.
func (d Decision) Fires() bool {
	return d.Escalate || d.Warn
}

// Sweepable reports whether the sweeper looks at a task in this status.
func Sweepable(s domain.TaskStatus) bool {
	switch s {
	case domain.TaskPending, domain.TaskInProgress, domain.TaskEscalated, domain.TaskWarning:
		return true
	}
	return false
}

// Evaluate applies the escalation and warning rules to t at now.
//
// Rules:
//   - Escalation: now is past EscalationTime and the task is still with its
//     original assignee and has never been escalated. One rung up, once.
//   - Warning: now is past WarningTime and the task has never been warned.
//     Independent of escalation; both may fire in the same evaluation.
//
// A task put into warning by hand is still escalated when its deadline passes.
func Evaluate(t *domain.WorkflowTask, now time.Time) Decision {
	var d Decision
	if !Sweepable(t.Status) {
		return d
	}
	if now.After(t.EscalationTime) && !t.IsEscalated() {
		d.Escalate = true
		d.EscalateTo = t.AssignedTo.Next()
	}
	if now.After(t.WarningTime) && t.WarnedAt == nil && t.Status != domain.TaskWarning {
		d.Warn = true
	}
	return d
}

// WarningRecipient is the level every warning is addressed to.
const WarningRecipient = domain.LevelGeneralManager

// EscalationMessage is the notification text sent to the new assignee.
func EscalationMessage(t *domain.WorkflowTask, to domain.PositionLevel) string {
	return fmt.Sprintf("Task %q passed its escalation deadline (%s) and is now assigned to %s",
		t.Title, t.EscalationTime.Format(time.RFC3339), to.Label())
}

// WarningMessage is the notification text sent to the general manager.
func WarningMessage(t *domain.WorkflowTask) string {
	return fmt.Sprintf("Task %q is severely overdue (warning threshold %s); currently with %s",
		t.Title, t.WarningTime.Format(time.RFC3339), t.AssignedTo.Label())
}

// MarkedEscalatedMessage is the notification text for a task set to
// escalated by hand.
func MarkedEscalatedMessage(t *domain.WorkflowTask) string {
	return fmt.Sprintf("Task %q was marked escalated and needs attention from %s",
		t.Title, t.AssignedTo.Label())
}

// MarkedWarningMessage is the notification text for a task set to warning by
// hand.
func MarkedWarningMessage(t *domain.WorkflowTask) string {
	return fmt.Sprintf("Task %q was flagged as severely overdue; currently with %s",
		t.Title, t.AssignedTo.Label())
}
