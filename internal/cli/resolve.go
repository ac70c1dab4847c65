package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
)

// resolveInstance accepts a full instance id or a unique prefix of one,
// such as the short id shown by "instance list".
func resolveInstance(ctx context.Context, app *App, ref string) (*domain.WorkflowInstance, error) {
	inst, err := app.Instances.GetInstance(ctx, ref)
	if err == nil || !errors.Is(err, domain.ErrInstanceNotFound) {
		return inst, err
	}

	all, listErr := app.Instances.GetInstances(ctx, contract.InstanceFilter{})
	if listErr != nil {
		return nil, listErr
	}
	var matches []*domain.WorkflowInstance
	for _, candidate := range all {
		if strings.HasPrefix(candidate.ID, ref) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, err
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("instance prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveTask finds a task of inst by task id or by template node id.
func resolveTask(inst *domain.WorkflowInstance, ref string) (*domain.WorkflowTask, error) {
	if t := inst.Task(ref); t != nil {
		return t, nil
	}
	if t := inst.TaskByNode(ref); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("task %s in instance %s: %w", ref, inst.ID, domain.ErrTaskNotFound)
}

var timeFlagLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// parseTimeFlag reads a time flag. Values without a zone are UTC.
func parseTimeFlag(s string) (time.Time, error) {
	for _, layout := range timeFlagLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q, use RFC 3339 or \"2006-01-02 15:04\"", s)
}
