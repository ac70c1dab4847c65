package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/escalation"
	"github.com/alexanderramin/officeflow/internal/repository"
)

type sweepService struct {
	conn     db.DBTX
	uow      db.UnitOfWork
	locker   *InstanceLocker
	metrics  *SweepMetrics
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewSweepService builds the escalation sweeper. locker must be the one the
// InstanceService uses. metrics and logger may be nil.
func NewSweepService(
	conn db.DBTX,
	uow db.UnitOfWork,
	locker *InstanceLocker,
	metrics *SweepMetrics,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) SweepService {
	if locker == nil {
		locker = NewInstanceLocker()
	}
	if metrics == nil {
		metrics = NewSweepMetrics(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &sweepService{
		conn:     conn,
		uow:      uow,
		locker:   locker,
		metrics:  metrics,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Sweep evaluates every open task of every active instance at now. Each
// task that fires is updated together with its notifications in its own
// transaction; a failing task is recorded and skipped. Running Sweep twice
// with the same now changes nothing the second time.
func (s *sweepService) Sweep(ctx context.Context, now time.Time) (res *contract.SweepResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"at": now.Format(time.RFC3339)}
	defer observe(ctx, s.observer, "sweep", startedAt, fields, &err)
	defer func() {
		s.metrics.Sweeps.Inc()
		s.metrics.Duration.Observe(time.Since(startedAt).Seconds())
	}()

	active := contract.ActiveInstances()
	instances, err := repository.NewSQLiteInstanceRepo(s.conn).List(ctx, active.Status)
	if err != nil {
		return nil, fmt.Errorf("listing active instances: %w", err)
	}

	res = &contract.SweepResult{At: now}
	for _, inst := range instances {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.InstancesScanned++
		s.sweepInstance(ctx, inst.ID, now, res)
	}

	fields["instances"] = res.InstancesScanned
	fields["tasks"] = res.TasksScanned
	fields["escalated"] = res.Escalated
	fields["warned"] = res.Warned
	fields["failures"] = len(res.Failures)
	return res, nil
}

func (s *sweepService) sweepInstance(ctx context.Context, instanceID string, now time.Time, res *contract.SweepResult) {
	unlock := s.locker.Lock(instanceID)
	defer unlock()

	tasks, err := repository.NewSQLiteTaskRepo(s.conn).ListByInstance(ctx, instanceID)
	if err != nil {
		s.fail(ctx, res, instanceID, "", err)
		return
	}

	for _, candidate := range tasks {
		if !escalation.Sweepable(candidate.Status) {
			continue
		}
		res.TasksScanned++
		if !escalation.Evaluate(candidate, now).Fires() {
			continue
		}

		var escalated, warned bool
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			var err error
			escalated, warned, err = applyDecision(ctx, tx, instanceID, candidate.ID, now)
			return err
		})
		if err != nil {
			s.fail(ctx, res, instanceID, candidate.ID, err)
			continue
		}
		if escalated {
			res.Escalated++
			s.metrics.Escalated.Inc()
		}
		if warned {
			res.Warned++
			s.metrics.Warned.Inc()
		}
	}
}

// applyDecision re-reads the task inside the transaction so a change made
// since the scan is never overwritten, then applies whatever still fires.
func applyDecision(ctx context.Context, tx db.DBTX, instanceID, taskID string, now time.Time) (escalated, warned bool, err error) {
	instances := repository.NewSQLiteInstanceRepo(tx)
	tasks := repository.NewSQLiteTaskRepo(tx)

	inst, err := instances.GetByID(ctx, instanceID)
	if err != nil {
		return false, false, err
	}
	if inst.Status != domain.InstanceActive {
		return false, false, nil
	}
	t, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return false, false, err
	}

	d := escalation.Evaluate(t, now)
	if !d.Fires() {
		return false, false, nil
	}

	var pending []*domain.NotificationRecord
	if d.Escalate {
		to, err := t.Escalate(now)
		if err != nil {
			return false, false, err
		}
		pending = append(pending, newNotification(t.ID, inst.ID, domain.NotificationEscalation,
			escalation.EscalationMessage(t, to), to, now))
	}
	if d.Warn {
		if err := t.Warn(now); err != nil {
			return false, false, err
		}
		pending = append(pending, newNotification(t.ID, inst.ID, domain.NotificationWarning,
			escalation.WarningMessage(t), escalation.WarningRecipient, now))
	}

	if err := tasks.Update(ctx, t); err != nil {
		return false, false, err
	}
	if err := emitNotifications(ctx, tx, pending...); err != nil {
		return false, false, err
	}
	inst.UpdatedAt = now
	if err := instances.Update(ctx, inst); err != nil {
		return false, false, err
	}
	return d.Escalate, d.Warn, nil
}

func (s *sweepService) fail(ctx context.Context, res *contract.SweepResult, instanceID, taskID string, err error) {
	s.metrics.Failures.Inc()
	s.logger.ErrorContext(ctx, "sweep task failed",
		"instance", instanceID,
		"task", taskID,
		"error", err,
	)
	res.Failures = append(res.Failures, contract.SweepFailure{
		InstanceID: instanceID,
		TaskID:     taskID,
		Err:        err.Error(),
	})
}
