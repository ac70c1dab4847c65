package testutil

import (
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/google/uuid"
)

// Node options
type NodeOption func(*domain.WorkflowNode)

func WithLevel(l domain.PositionLevel) NodeOption {
	return func(n *domain.WorkflowNode) {
		n.ResponsibleLevel = l
	}
}

// WithTimers sets the minute offsets of a node.
func WithTimers(timeLimit, reminderBefore, escalationAfter, warningAfter int) NodeOption {
	return func(n *domain.WorkflowNode) {
		n.TimeLimitMin = timeLimit
		n.ReminderBeforeMin = reminderBefore
		n.EscalationAfterMin = escalationAfter
		n.WarningAfterMin = warningAfter
	}
}

func WithDependsOn(ids ...string) NodeOption {
	return func(n *domain.WorkflowNode) {
		n.DependsOn = ids
	}
}

func WithNodeCategory(c string) NodeOption {
	return func(n *domain.WorkflowNode) {
		n.Category = c
	}
}

// NewTestNode returns a staff node with a 30 minute limit, a reminder 10
// minutes before, escalation after 15 and warning after 30 minutes.
func NewTestNode(id, title string, opts ...NodeOption) domain.WorkflowNode {
	n := domain.WorkflowNode{
		ID:                 id,
		Title:              title,
		ResponsibleLevel:   domain.LevelStaff,
		TimeLimitMin:       30,
		ReminderBeforeMin:  10,
		EscalationAfterMin: 15,
		WarningAfterMin:    30,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// Template options
type TemplateOption func(*domain.WorkflowTemplate)

func WithCategory(c string) TemplateOption {
	return func(t *domain.WorkflowTemplate) {
		t.Category = c
	}
}

func WithNodes(nodes ...domain.WorkflowNode) TemplateOption {
	return func(t *domain.WorkflowTemplate) {
		t.Nodes = nodes
	}
}

// NewTestTemplate returns a valid single-node template unless WithNodes
// replaces the nodes.
func NewTestTemplate(id, name string, opts ...TemplateOption) *domain.WorkflowTemplate {
	now := time.Now().UTC()
	t := &domain.WorkflowTemplate{
		ID:        id,
		Name:      name,
		Category:  "general",
		Nodes:     []domain.WorkflowNode{NewTestNode("n1", "Step one")},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Instance options
type InstanceOption func(*domain.WorkflowInstance)

func WithInstanceStatus(s domain.InstanceStatus) InstanceOption {
	return func(i *domain.WorkflowInstance) {
		i.Status = s
	}
}

func WithInstanceStart(start time.Time) InstanceOption {
	return func(i *domain.WorkflowInstance) {
		i.StartTime = start
	}
}

func NewTestInstance(templateID, name string, opts ...InstanceOption) *domain.WorkflowInstance {
	now := time.Now().UTC()
	i := &domain.WorkflowInstance{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		Name:       name,
		Status:     domain.InstanceActive,
		StartTime:  now,
		CreatedBy:  "tester",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Task options
type TaskOption func(*domain.WorkflowTask)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.WorkflowTask) {
		t.Status = s
	}
}

func WithAssignee(l domain.PositionLevel) TaskOption {
	return func(t *domain.WorkflowTask) {
		t.AssignedTo = l
		t.OriginalAssignee = l
	}
}

// WithScheduled sets the scheduled time and derives the other timers with
// the NewTestNode defaults.
func WithScheduled(s time.Time) TaskOption {
	return func(t *domain.WorkflowTask) {
		t.ScheduledTime = s
		t.ReminderTime = s.Add(-10 * time.Minute)
		t.EscalationTime = s.Add(15 * time.Minute)
		t.WarningTime = s.Add(30 * time.Minute)
	}
}

func WithTaskSeq(seq int) TaskOption {
	return func(t *domain.WorkflowTask) {
		t.Seq = seq
	}
}

func WithTaskDependsOn(nodeIDs ...string) TaskOption {
	return func(t *domain.WorkflowTask) {
		t.DependsOn = nodeIDs
	}
}

func NewTestTask(instanceID, nodeID, title string, opts ...TaskOption) *domain.WorkflowTask {
	now := time.Now().UTC()
	t := &domain.WorkflowTask{
		ID:               uuid.New().String(),
		InstanceID:       instanceID,
		NodeID:           nodeID,
		Title:            title,
		AssignedTo:       domain.LevelStaff,
		OriginalAssignee: domain.LevelStaff,
		Status:           domain.TaskPending,
		UpdatedAt:        now,
	}
	WithScheduled(now)(t)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestNotification(taskID string, typ domain.NotificationType, sentTo domain.PositionLevel, sentTime time.Time) *domain.NotificationRecord {
	return &domain.NotificationRecord{
		ID:       uuid.New().String(),
		TaskID:   taskID,
		Type:     typ,
		Message:  string(typ) + " for " + taskID,
		SentTo:   sentTo,
		SentTime: sentTime,
	}
}
