package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
)

type SQLiteNotificationRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationRepo(conn db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: conn}
}

const notificationColumns = `id, task_id, instance_id, type, message, sent_to, sent_time, is_read`

func (r *SQLiteNotificationRepo) Create(ctx context.Context, n *domain.NotificationRecord) error {
	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.TaskID,
		n.InstanceID,
		string(n.Type),
		n.Message,
		string(n.SentTo),
		formatTime(n.SentTime),
		boolToInt(n.IsRead),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) GetByID(ctx context.Context, id string) (*domain.NotificationRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notification %s: %w", id, domain.ErrNotificationNotFound)
	}
	return n, err
}

// ListBySentTo returns the records addressed to level, newest first. Records
// with the same sent time come back in reverse insertion order.
func (r *SQLiteNotificationRepo) ListBySentTo(ctx context.Context, level domain.PositionLevel) ([]*domain.NotificationRecord, error) {
	return r.query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE sent_to = ? ORDER BY sent_time DESC, seq DESC`,
		string(level))
}

func (r *SQLiteNotificationRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.NotificationRecord, error) {
	return r.query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE task_id = ? ORDER BY seq`, taskID)
}

func (r *SQLiteNotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotificationNotFound)
	}
	return nil
}

func (r *SQLiteNotificationRepo) CountUnread(ctx context.Context, level domain.PositionLevel) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE sent_to = ? AND is_read = 0`, string(level)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return n, nil
}

func (r *SQLiteNotificationRepo) query(ctx context.Context, query string, args ...any) ([]*domain.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var out []*domain.NotificationRecord
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}
	return out, nil
}

func scanNotification(s scanner) (*domain.NotificationRecord, error) {
	var n domain.NotificationRecord
	var typ, sentTo, sentTime string
	var isRead int
	err := s.Scan(&n.ID, &n.TaskID, &n.InstanceID, &typ, &n.Message, &sentTo, &sentTime, &isRead)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning notification: %w", err)
	}
	n.Type = domain.NotificationType(typ)
	n.SentTo = domain.PositionLevel(sentTo)
	n.IsRead = intToBool(isRead)
	if n.SentTime, err = parseTime(sentTime); err != nil {
		return nil, fmt.Errorf("parsing sent_time: %w", err)
	}
	return &n, nil
}
