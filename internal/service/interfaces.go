package service

import (
	"context"
	"time"

	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
)

// Clock supplies the current time. Services default to time.Now in UTC.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c != nil {
		return c
	}
	return func() time.Time { return time.Now().UTC() }
}

type TemplateService interface {
	GetTemplate(ctx context.Context, id string) (*domain.WorkflowTemplate, error)
	ListTemplates(ctx context.Context) ([]*domain.WorkflowTemplate, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.WorkflowTemplate, error)
	PutTemplate(ctx context.Context, tpl *domain.WorkflowTemplate) (*domain.WorkflowTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	LoadDir(ctx context.Context, dir string) (*LoadReport, error)
}

type InstanceService interface {
	CreateInstance(ctx context.Context, req contract.CreateInstanceRequest) (*domain.WorkflowInstance, error)
	GetInstances(ctx context.Context, filter contract.InstanceFilter) ([]*domain.WorkflowInstance, error)
	GetInstance(ctx context.Context, id string) (*domain.WorkflowInstance, error)
	SetTaskStatus(ctx context.Context, req contract.SetTaskStatusRequest) (*domain.WorkflowTask, error)
	CancelInstance(ctx context.Context, id string) (*domain.WorkflowInstance, error)
	ListAssigned(ctx context.Context, level domain.PositionLevel) ([]contract.AssignedTask, error)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, taskID string, typ domain.NotificationType, message string, sentTo domain.PositionLevel) (*domain.NotificationRecord, error)
	MarkRead(ctx context.Context, id string) error
	GetNotificationsFor(ctx context.Context, level domain.PositionLevel) ([]*domain.NotificationRecord, error)
	UnreadCount(ctx context.Context, level domain.PositionLevel) (int, error)
}

type SweepService interface {
	Sweep(ctx context.Context, now time.Time) (*contract.SweepResult, error)
}
