package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/escalation"
	"github.com/alexanderramin/officeflow/internal/repository"
	"github.com/alexanderramin/officeflow/internal/scheduler"
	"github.com/google/uuid"
)

type instanceService struct {
	conn      db.DBTX
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	locker    *InstanceLocker
	mode      scheduler.DependencyMode
	clock     Clock
	observer  UseCaseObserver
}

func NewInstanceService(
	conn db.DBTX,
	uow db.UnitOfWork,
	locker *InstanceLocker,
	mode scheduler.DependencyMode,
	clock Clock,
	observers ...UseCaseObserver,
) InstanceService {
	if locker == nil {
		locker = NewInstanceLocker()
	}
	if !mode.Valid() {
		mode = scheduler.DependenciesAdvisory
	}
	return &instanceService{
		conn:      conn,
		templates: repository.NewSQLiteTemplateRepo(conn),
		uow:       uow,
		locker:    locker,
		mode:      mode,
		clock:     clockOrDefault(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// CreateInstance materializes a template into an active instance with one
// pending task per node. Nothing is stored unless every row is written.
func (s *instanceService) CreateInstance(ctx context.Context, req contract.CreateInstanceRequest) (inst *domain.WorkflowInstance, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template": req.TemplateID, "mode": string(s.mode)}
	defer observe(ctx, s.observer, "create-instance", startedAt, fields, &err)

	var tpl *domain.WorkflowTemplate
	tpl, err = s.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	start := req.StartTime
	if start.IsZero() {
		start = now
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = tpl.Name
	}

	var scheduled map[string]time.Time
	scheduled, err = scheduler.Schedule(tpl, start, s.mode)
	if err != nil {
		return nil, fmt.Errorf("scheduling template %s: %w", tpl.ID, err)
	}

	inst = &domain.WorkflowInstance{
		ID:          uuid.New().String(),
		TemplateID:  tpl.ID,
		Name:        name,
		Description: req.Description,
		Status:      domain.InstanceActive,
		StartTime:   start,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, node := range tpl.Nodes {
		times := scheduler.ComputeTimes(node, scheduled[node.ID])
		inst.Tasks = append(inst.Tasks, &domain.WorkflowTask{
			ID:               uuid.New().String(),
			InstanceID:       inst.ID,
			NodeID:           node.ID,
			Seq:              i + 1,
			Title:            node.Title,
			Description:      node.Description,
			Category:         node.Category,
			DependsOn:        append([]string(nil), node.DependsOn...),
			AssignedTo:       node.ResponsibleLevel,
			OriginalAssignee: node.ResponsibleLevel,
			Status:           domain.TaskPending,
			ScheduledTime:    times.Scheduled,
			ReminderTime:     times.Reminder,
			EscalationTime:   times.Escalation,
			WarningTime:      times.Warning,
			UpdatedAt:        now,
		})
	}
	fields["instance"] = inst.ID
	fields["task_count"] = len(inst.Tasks)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txInstances := repository.NewSQLiteInstanceRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if err := txInstances.Create(ctx, inst); err != nil {
			return fmt.Errorf("creating instance: %w", err)
		}
		for _, t := range inst.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task '%s': %w", t.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *instanceService) GetInstances(ctx context.Context, filter contract.InstanceFilter) ([]*domain.WorkflowInstance, error) {
	instances, err := repository.NewSQLiteInstanceRepo(s.conn).List(ctx, filter.Status)
	if err != nil {
		return nil, err
	}
	tasks := repository.NewSQLiteTaskRepo(s.conn)
	for _, inst := range instances {
		if inst.Tasks, err = tasks.ListByInstance(ctx, inst.ID); err != nil {
			return nil, fmt.Errorf("loading tasks of instance %s: %w", inst.ID, err)
		}
	}
	return instances, nil
}

func (s *instanceService) GetInstance(ctx context.Context, id string) (*domain.WorkflowInstance, error) {
	return loadInstance(ctx, s.conn, id)
}

// SetTaskStatus applies a manual status change under the instance lock.
// The instance completes when its last open task completes.
func (s *instanceService) SetTaskStatus(ctx context.Context, req contract.SetTaskStatusRequest) (task *domain.WorkflowTask, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"instance": req.InstanceID,
		"task":     req.TaskID,
		"status":   string(req.Status),
	}
	defer observe(ctx, s.observer, "set-task-status", startedAt, fields, &err)

	unlock := s.locker.Lock(req.InstanceID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		inst, err := loadInstance(ctx, tx, req.InstanceID)
		if err != nil {
			return err
		}
		t := inst.Task(req.TaskID)
		if t == nil {
			return fmt.Errorf("task %s in instance %s: %w", req.TaskID, req.InstanceID, domain.ErrTaskNotFound)
		}
		if inst.Status != domain.InstanceActive {
			return fmt.Errorf("instance %s is %s: %w", inst.ID, inst.Status, domain.ErrInstanceNotActive)
		}
		if s.mode == scheduler.DependenciesEnforced && gatedByDependencies(req.Status) && t.Status != req.Status {
			if pending := inst.IncompleteDependencies(t); len(pending) > 0 {
				return fmt.Errorf("task %s waits on %s: %w",
					t.ID, strings.Join(pending, ", "), domain.ErrDependenciesIncomplete)
			}
		}

		now := s.clock()
		from := t.Status
		if err := t.TransitionTo(req.Status, now); err != nil {
			return err
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
		if err := repository.NewSQLiteTaskRepo(tx).Update(ctx, t); err != nil {
			return err
		}
		if from != t.Status {
			if err := emitNotifications(ctx, tx, manualNotifications(inst.ID, t, now)...); err != nil {
				return err
			}
		}

		inst.UpdatedAt = now
		if inst.AllCompleted() {
			inst.Status = domain.InstanceCompleted
			fields["instance_completed"] = true
		}
		if err := repository.NewSQLiteInstanceRepo(tx).Update(ctx, inst); err != nil {
			return err
		}
		fields["from"] = string(from)
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// manualNotifications returns the records a hand-made move into escalated or
// warning raises. Escalations go to the current assignee, warnings to the
// general manager.
func manualNotifications(instanceID string, t *domain.WorkflowTask, now time.Time) []*domain.NotificationRecord {
	switch t.Status {
	case domain.TaskEscalated:
		return []*domain.NotificationRecord{newNotification(t.ID, instanceID, domain.NotificationEscalation,
			escalation.MarkedEscalatedMessage(t), t.AssignedTo, now)}
	case domain.TaskWarning:
		return []*domain.NotificationRecord{newNotification(t.ID, instanceID, domain.NotificationWarning,
			escalation.MarkedWarningMessage(t), escalation.WarningRecipient, now)}
	}
	return nil
}

func (s *instanceService) CancelInstance(ctx context.Context, id string) (inst *domain.WorkflowInstance, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "cancel-instance", startedAt, map[string]any{"instance": id}, &err)

	unlock := s.locker.Lock(id)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		loaded, err := loadInstance(ctx, tx, id)
		if err != nil {
			return err
		}
		if loaded.Status != domain.InstanceActive {
			return fmt.Errorf("instance %s is %s: %w", id, loaded.Status, domain.ErrInstanceNotActive)
		}
		loaded.Status = domain.InstanceCancelled
		loaded.UpdatedAt = s.clock()
		if err := repository.NewSQLiteInstanceRepo(tx).Update(ctx, loaded); err != nil {
			return err
		}
		inst = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// ListAssigned returns the open tasks of active instances currently assigned
// to level, most urgent first.
func (s *instanceService) ListAssigned(ctx context.Context, level domain.PositionLevel) ([]contract.AssignedTask, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("unknown position level %q", level)
	}
	tasks, err := repository.NewSQLiteTaskRepo(s.conn).ListByAssignee(ctx, level, true)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	scheduler.SortByUrgency(tasks, now)

	instances := repository.NewSQLiteInstanceRepo(s.conn)
	names := make(map[string]string)
	out := make([]contract.AssignedTask, 0, len(tasks))
	for _, t := range tasks {
		name, ok := names[t.InstanceID]
		if !ok {
			inst, err := instances.GetByID(ctx, t.InstanceID)
			if err != nil {
				return nil, err
			}
			name = inst.Name
			names[t.InstanceID] = name
		}
		out = append(out, contract.AssignedTask{
			Task:         t,
			InstanceName: name,
			Urgency:      string(scheduler.Classify(t, now)),
		})
	}
	return out, nil
}

func gatedByDependencies(s domain.TaskStatus) bool {
	return s == domain.TaskInProgress || s == domain.TaskCompleted
}

// loadInstance reads an instance and its tasks through conn, which may be a
// transaction.
func loadInstance(ctx context.Context, conn db.DBTX, id string) (*domain.WorkflowInstance, error) {
	inst, err := repository.NewSQLiteInstanceRepo(conn).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inst.Tasks, err = repository.NewSQLiteTaskRepo(conn).ListByInstance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading tasks of instance %s: %w", id, err)
	}
	return inst, nil
}
