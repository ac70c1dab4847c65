package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/repository"
	"github.com/google/uuid"
)

type notificationService struct {
	conn          db.DBTX
	notifications repository.NotificationRepo
	clock         Clock
	observer      UseCaseObserver
}

func NewNotificationService(conn db.DBTX, clock Clock, observers ...UseCaseObserver) NotificationService {
	return &notificationService{
		conn:          conn,
		notifications: repository.NewSQLiteNotificationRepo(conn),
		clock:         clockOrDefault(clock),
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *notificationService) CreateNotification(
	ctx context.Context,
	taskID string,
	typ domain.NotificationType,
	message string,
	sentTo domain.PositionLevel,
) (_ *domain.NotificationRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task": taskID, "type": string(typ), "sent_to": string(sentTo)}
	defer observe(ctx, s.observer, "create-notification", startedAt, fields, &err)

	n := newNotification(taskID, "", typ, message, sentTo, s.clock())
	if err = emitNotifications(ctx, s.conn, n); err != nil {
		return nil, err
	}
	return n, nil
}

// emitNotifications validates and stores records through tx. Every
// notification in the system is written here, so the sweeper and manual
// status changes commit them together with the task update.
func emitNotifications(ctx context.Context, tx db.DBTX, records ...*domain.NotificationRecord) error {
	for _, n := range records {
		if !n.Type.Valid() {
			return fmt.Errorf("unknown notification type %q", n.Type)
		}
		if !n.SentTo.Valid() {
			return fmt.Errorf("unknown position level %q", n.SentTo)
		}
	}
	repo := repository.NewSQLiteNotificationRepo(tx)
	for _, n := range records {
		if err := repo.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

// GetNotificationsFor returns the records addressed to level, most recent
// first.
func (s *notificationService) GetNotificationsFor(ctx context.Context, level domain.PositionLevel) ([]*domain.NotificationRecord, error) {
	return s.notifications.ListBySentTo(ctx, level)
}

func (s *notificationService) UnreadCount(ctx context.Context, level domain.PositionLevel) (int, error) {
	return s.notifications.CountUnread(ctx, level)
}

func newNotification(taskID, instanceID string, typ domain.NotificationType, message string, sentTo domain.PositionLevel, at time.Time) *domain.NotificationRecord {
	return &domain.NotificationRecord{
		ID:         uuid.New().String(),
		TaskID:     taskID,
		InstanceID: instanceID,
		Type:       typ,
		Message:    message,
		SentTo:     sentTo,
		SentTime:   at,
	}
}
