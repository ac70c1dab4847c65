package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
)

// Urgency classifies how close a task is to breaching its timers.
type Urgency string

const (
	UrgencyDone      Urgency = "done"
	UrgencyUpcoming  Urgency = "upcoming"
	UrgencyDueSoon   Urgency = "due_soon"
	UrgencyOverdue   Urgency = "overdue"
	UrgencyEscalated Urgency = "escalated"
	UrgencyWarning   Urgency = "warning"
)

// Classify returns the urgency of a task at now. The time limit is not
// stored on the task, so "overdue" means past the escalation threshold.
func Classify(t *domain.WorkflowTask, now time.Time) Urgency {
	switch {
	case t.Status == domain.TaskCompleted:
		return UrgencyDone
	case t.Status == domain.TaskWarning:
		return UrgencyWarning
	case t.Status == domain.TaskEscalated || t.IsEscalated():
		return UrgencyEscalated
	case now.After(t.EscalationTime):
		return UrgencyOverdue
	case !now.Before(t.ReminderTime):
		return UrgencyDueSoon
	default:
		return UrgencyUpcoming
	}
}

// UrgencyPriority returns a sort priority (lower = more urgent).
func UrgencyPriority(u Urgency) int {
	switch u {
	case UrgencyWarning:
		return 0
	case UrgencyEscalated:
		return 1
	case UrgencyOverdue:
		return 2
	case UrgencyDueSoon:
		return 3
	case UrgencyUpcoming:
		return 4
	default:
		return 5
	}
}

// SortByUrgency sorts tasks by the deterministic canonical rules:
// 1. Urgency: warning > escalated > overdue > due soon > upcoming > done
// 2. Escalation time: earliest first
// 3. Title: lexical ascending
// 4. Task ID: lexical ascending
func SortByUrgency(tasks []*domain.WorkflowTask, now time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		pa, pb := UrgencyPriority(Classify(a, now)), UrgencyPriority(Classify(b, now))
		if pa != pb {
			return pa < pb
		}
		if !a.EscalationTime.Equal(b.EscalationTime) {
			return a.EscalationTime.Before(b.EscalationTime)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}
