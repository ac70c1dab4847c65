package domain

import "time"

// WorkflowNode is one step of a template. Minute offsets are relative to the
// scheduled time of the task created from the node.
type WorkflowNode struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	Category           string        `json:"category,omitempty"`
	ResponsibleLevel   PositionLevel `json:"responsibleLevel"`
	TimeLimitMin       int           `json:"timeLimit"`
	ReminderBeforeMin  int           `json:"reminderBefore"`
	EscalationAfterMin int           `json:"escalationAfter"`
	WarningAfterMin    int           `json:"warningAfter"`
	DependsOn          []string      `json:"dependsOn,omitempty"`
}

type WorkflowTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Nodes       []WorkflowNode `json:"nodes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Node returns the node with the given id, or nil.
func (t *WorkflowTemplate) Node(id string) *WorkflowNode {
	for i := range t.Nodes {
		if t.Nodes[i].ID == id {
			return &t.Nodes[i]
		}
	}
	return nil
}
