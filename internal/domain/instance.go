package domain

import "time"

type InstanceStatus string

const (
	InstanceActive    InstanceStatus = "active"
	InstanceCompleted InstanceStatus = "completed"
	InstanceCancelled InstanceStatus = "cancelled"
)

func (s InstanceStatus) Valid() bool {
	switch s {
	case InstanceActive, InstanceCompleted, InstanceCancelled:
		return true
	}
	return false
}

// WorkflowInstance is a running materialization of a template. It owns its
// tasks exclusively.
type WorkflowInstance struct {
	ID          string          `json:"id"`
	TemplateID  string          `json:"templateId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      InstanceStatus  `json:"status"`
	Tasks       []*WorkflowTask `json:"tasks"`
	StartTime   time.Time       `json:"startTime"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Task returns the task with the given id, or nil.
func (i *WorkflowInstance) Task(id string) *WorkflowTask {
	for _, t := range i.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TaskByNode returns the task created from the given node, or nil.
func (i *WorkflowInstance) TaskByNode(nodeID string) *WorkflowTask {
	for _, t := range i.Tasks {
		if t.NodeID == nodeID {
			return t
		}
	}
	return nil
}

// AllCompleted reports whether the instance has tasks and all are completed.
func (i *WorkflowInstance) AllCompleted() bool {
	if len(i.Tasks) == 0 {
		return false
	}
	for _, t := range i.Tasks {
		if t.Status != TaskCompleted {
			return false
		}
	}
	return true
}

// IncompleteDependencies returns the node ids in t.DependsOn whose tasks
// are not yet completed.
func (i *WorkflowInstance) IncompleteDependencies(t *WorkflowTask) []string {
	var pending []string
	for _, dep := range t.DependsOn {
		dt := i.TaskByNode(dep)
		if dt == nil || dt.Status != TaskCompleted {
			pending = append(pending, dep)
		}
	}
	return pending
}
