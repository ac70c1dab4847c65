package template

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/officeflow/internal/domain"
)

// Validate checks a template for authoring-time errors. All problems are
// reported together, joined under domain.ErrInvalidTemplate.
func Validate(tpl *domain.WorkflowTemplate) error {
	var errs []error

	if tpl.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if tpl.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}
	if len(tpl.Nodes) == 0 {
		errs = append(errs, fmt.Errorf("at least one node is required"))
	}

	nodeIDs := make(map[string]bool, len(tpl.Nodes))
	for i, n := range tpl.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node[%d]: id is required", i))
		} else if nodeIDs[n.ID] {
			errs = append(errs, fmt.Errorf("node[%d]: duplicate id %q", i, n.ID))
		}
		nodeIDs[n.ID] = true
		errs = append(errs, validateNode(i, n)...)
	}

	for i, n := range tpl.Nodes {
		for _, dep := range n.DependsOn {
			switch {
			case dep == n.ID:
				errs = append(errs, fmt.Errorf("node[%d]: %q depends on itself", i, n.ID))
			case !nodeIDs[dep]:
				errs = append(errs, fmt.Errorf("node[%d]: depends on unknown node %q", i, dep))
			}
		}
	}

	if _, err := TopoOrder(tpl.Nodes); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidTemplate, errors.Join(errs...))
}

func validateNode(i int, n domain.WorkflowNode) []error {
	var errs []error
	if n.Title == "" {
		errs = append(errs, fmt.Errorf("node[%d]: title is required", i))
	}
	if !n.ResponsibleLevel.Valid() {
		errs = append(errs, fmt.Errorf("node[%d]: unknown responsible level %q", i, n.ResponsibleLevel))
	}
	if n.TimeLimitMin <= 0 {
		errs = append(errs, fmt.Errorf("node[%d]: timeLimit must be positive", i))
	}
	if n.ReminderBeforeMin <= 0 {
		errs = append(errs, fmt.Errorf("node[%d]: reminderBefore must be positive", i))
	}
	if n.EscalationAfterMin <= 0 {
		errs = append(errs, fmt.Errorf("node[%d]: escalationAfter must be positive", i))
	}
	if n.ReminderBeforeMin >= n.TimeLimitMin {
		errs = append(errs, fmt.Errorf("node[%d]: reminderBefore (%d) must be less than timeLimit (%d)",
			i, n.ReminderBeforeMin, n.TimeLimitMin))
	}
	if n.WarningAfterMin <= n.EscalationAfterMin {
		errs = append(errs, fmt.Errorf("node[%d]: warningAfter (%d) must be greater than escalationAfter (%d)",
			i, n.WarningAfterMin, n.EscalationAfterMin))
	}
	return errs
}
