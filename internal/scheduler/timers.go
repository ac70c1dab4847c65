package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
	tmpl "github.com/alexanderramin/officeflow/internal/template"
)

// DependencyMode controls whether node dependencies affect scheduling.
type DependencyMode string

const (
	// DependenciesAdvisory schedules every task at the instance start time;
	// dependsOn is informational only.
	DependenciesAdvisory DependencyMode = "advisory"
	// DependenciesEnforced offsets each task until its dependencies' time
	// limits have elapsed and gates starting work on completed dependencies.
	DependenciesEnforced DependencyMode = "enforced"
)

func (m DependencyMode) Valid() bool {
	return m == DependenciesAdvisory || m == DependenciesEnforced
}

// TaskTimes holds the absolute timestamps derived for one task.
type TaskTimes struct {
	Scheduled  time.Time
	Reminder   time.Time
	Escalation time.Time
	Warning    time.Time
}

// ComputeTimes derives the reminder, escalation and warning timestamps of a
// node scheduled at the given time.
func ComputeTimes(node domain.WorkflowNode, scheduled time.Time) TaskTimes {
	return TaskTimes{
		Scheduled:  scheduled,
		Reminder:   scheduled.Add(-minutes(node.ReminderBeforeMin)),
		Escalation: scheduled.Add(minutes(node.EscalationAfterMin)),
		Warning:    scheduled.Add(minutes(node.WarningAfterMin)),
	}
}

// Schedule returns the scheduled start of every node keyed by node id.
// In advisory mode all nodes start at start. In enforced mode a node starts
// once the time limits of all its dependencies have elapsed.
func Schedule(tpl *domain.WorkflowTemplate, start time.Time, mode DependencyMode) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(tpl.Nodes))
	if mode != DependenciesEnforced {
		for _, n := range tpl.Nodes {
			out[n.ID] = start
		}
		return out, nil
	}

	order, err := tmpl.TopoOrder(tpl.Nodes)
	if err != nil {
		return nil, fmt.Errorf("ordering nodes: %w", err)
	}
	for _, id := range order {
		node := tpl.Node(id)
		at := start
		for _, dep := range node.DependsOn {
			depStart, ok := out[dep]
			if !ok {
				continue
			}
			depEnd := depStart.Add(minutes(tpl.Node(dep).TimeLimitMin))
			if depEnd.After(at) {
				at = depEnd
			}
		}
		out[id] = at
	}
	return out, nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
