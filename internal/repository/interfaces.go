package repository

import (
	"context"

	"github.com/alexanderramin/officeflow/internal/domain"
)

type TemplateRepo interface {
	Upsert(ctx context.Context, t *domain.WorkflowTemplate) error
	GetByID(ctx context.Context, id string) (*domain.WorkflowTemplate, error)
	List(ctx context.Context) ([]*domain.WorkflowTemplate, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.WorkflowTemplate, error)
	Delete(ctx context.Context, id string) error
}

// InstanceRepo persists instance headers. Tasks are stored through TaskRepo;
// GetByID and List return instances without tasks attached.
type InstanceRepo interface {
	Create(ctx context.Context, i *domain.WorkflowInstance) error
	GetByID(ctx context.Context, id string) (*domain.WorkflowInstance, error)
	List(ctx context.Context, status *domain.InstanceStatus) ([]*domain.WorkflowInstance, error)
	CountActiveByTemplate(ctx context.Context, templateID string) (int, error)
	Update(ctx context.Context, i *domain.WorkflowInstance) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.WorkflowTask) error
	GetByID(ctx context.Context, id string) (*domain.WorkflowTask, error)
	ListByInstance(ctx context.Context, instanceID string) ([]*domain.WorkflowTask, error)
	ListByAssignee(ctx context.Context, level domain.PositionLevel, activeOnly bool) ([]*domain.WorkflowTask, error)
	Update(ctx context.Context, t *domain.WorkflowTask) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.NotificationRecord) error
	GetByID(ctx context.Context, id string) (*domain.NotificationRecord, error)
	ListBySentTo(ctx context.Context, level domain.PositionLevel) ([]*domain.NotificationRecord, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, level domain.PositionLevel) (int, error)
}
