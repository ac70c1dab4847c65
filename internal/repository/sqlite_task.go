package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, instance_id, node_id, seq, title, description, category, depends_on_json,
	assigned_to, original_assignee, status, scheduled_time, reminder_time, escalation_time, warning_time,
	start_time, completion_time, escalated_at, warned_at, notes, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.WorkflowTask) error {
	deps, err := encodeStrings(t.DependsOn)
	if err != nil {
		return err
	}
	query := `INSERT INTO workflow_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.InstanceID,
		t.NodeID,
		t.Seq,
		t.Title,
		t.Description,
		t.Category,
		deps,
		string(t.AssignedTo),
		string(t.OriginalAssignee),
		string(t.Status),
		formatTime(t.ScheduledTime),
		formatTime(t.ReminderTime),
		formatTime(t.EscalationTime),
		formatTime(t.WarningTime),
		nullableTimeToString(t.StartTime),
		nullableTimeToString(t.CompletionTime),
		nullableTimeToString(t.EscalatedAt),
		nullableTimeToString(t.WarnedAt),
		t.Notes,
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.WorkflowTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM workflow_tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrTaskNotFound)
	}
	return t, err
}

// ListByInstance returns the tasks of an instance in creation order.
func (r *SQLiteTaskRepo) ListByInstance(ctx context.Context, instanceID string) ([]*domain.WorkflowTask, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM workflow_tasks WHERE instance_id = ? ORDER BY seq, id`, instanceID)
}

// ListByAssignee returns tasks currently assigned to level. With activeOnly,
// completed tasks and tasks of non-active instances are left out.
func (r *SQLiteTaskRepo) ListByAssignee(ctx context.Context, level domain.PositionLevel, activeOnly bool) ([]*domain.WorkflowTask, error) {
	if !activeOnly {
		return r.query(ctx,
			`SELECT `+taskColumns+` FROM workflow_tasks WHERE assigned_to = ? ORDER BY escalation_time, id`,
			string(level))
	}
	query := `SELECT ` + prefixed("t.", taskColumns) + `
		FROM workflow_tasks t
		JOIN workflow_instances i ON i.id = t.instance_id
		WHERE t.assigned_to = ? AND t.status != 'completed' AND i.status = 'active'
		ORDER BY t.escalation_time, t.id`
	return r.query(ctx, query, string(level))
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.WorkflowTask) error {
	query := `UPDATE workflow_tasks SET assigned_to = ?, status = ?, start_time = ?, completion_time = ?,
		escalated_at = ?, warned_at = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(t.AssignedTo),
		string(t.Status),
		nullableTimeToString(t.StartTime),
		nullableTimeToString(t.CompletionTime),
		nullableTimeToString(t.EscalatedAt),
		nullableTimeToString(t.WarnedAt),
		t.Notes,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrTaskNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.WorkflowTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.WorkflowTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(s scanner) (*domain.WorkflowTask, error) {
	var t domain.WorkflowTask
	var depsJSON, assignedTo, original, status string
	var scheduled, reminder, escalation, warning, updatedAt string
	var startTime, completionTime, escalatedAt, warnedAt sql.NullString

	err := s.Scan(
		&t.ID, &t.InstanceID, &t.NodeID, &t.Seq, &t.Title, &t.Description, &t.Category, &depsJSON,
		&assignedTo, &original, &status, &scheduled, &reminder, &escalation, &warning,
		&startTime, &completionTime, &escalatedAt, &warnedAt, &t.Notes, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	if t.DependsOn, err = decodeStrings(depsJSON); err != nil {
		return nil, err
	}
	t.AssignedTo = domain.PositionLevel(assignedTo)
	t.OriginalAssignee = domain.PositionLevel(original)
	t.Status = domain.TaskStatus(status)

	for _, f := range []struct {
		dst *time.Time
		raw string
		col string
	}{
		{&t.ScheduledTime, scheduled, "scheduled_time"},
		{&t.ReminderTime, reminder, "reminder_time"},
		{&t.EscalationTime, escalation, "escalation_time"},
		{&t.WarningTime, warning, "warning_time"},
		{&t.UpdatedAt, updatedAt, "updated_at"},
	} {
		if *f.dst, err = parseTime(f.raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.col, err)
		}
	}
	t.StartTime = parseNullableTime(startTime)
	t.CompletionTime = parseNullableTime(completionTime)
	t.EscalatedAt = parseNullableTime(escalatedAt)
	t.WarnedAt = parseNullableTime(warnedAt)
	return &t, nil
}

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
