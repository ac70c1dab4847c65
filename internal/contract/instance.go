package contract

import (
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
)

// CreateInstanceRequest asks the factory to materialize a template. A zero
// StartTime means "now" on the service clock.
type CreateInstanceRequest struct {
	TemplateID  string    `json:"templateId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	CreatedBy   string    `json:"createdBy"`
}

// SetTaskStatusRequest is a manual status change. Notes replaces the task's
// notes only when non-nil.
type SetTaskStatusRequest struct {
	InstanceID string            `json:"instanceId"`
	TaskID     string            `json:"taskId"`
	Status     domain.TaskStatus `json:"status"`
	Notes      *string           `json:"notes,omitempty"`
}

type InstanceFilter struct {
	Status *domain.InstanceStatus
}

// ActiveInstances is the filter the sweeper scans with.
func ActiveInstances() InstanceFilter {
	s := domain.InstanceActive
	return InstanceFilter{Status: &s}
}

// AssignedTask is a task in a level's work queue together with the
// instance it belongs to and how urgent it currently is.
type AssignedTask struct {
	Task         *domain.WorkflowTask `json:"task"`
	InstanceName string               `json:"instanceName"`
	Urgency      string               `json:"urgency"`
}
