package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
)

type SQLiteInstanceRepo struct {
	db db.DBTX
}

func NewSQLiteInstanceRepo(conn db.DBTX) *SQLiteInstanceRepo {
	return &SQLiteInstanceRepo{db: conn}
}

const instanceColumns = `id, template_id, name, description, status, start_time, created_by, created_at, updated_at`

func (r *SQLiteInstanceRepo) Create(ctx context.Context, i *domain.WorkflowInstance) error {
	query := `INSERT INTO workflow_instances (` + instanceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.TemplateID,
		i.Name,
		i.Description,
		string(i.Status),
		formatTime(i.StartTime),
		i.CreatedBy,
		formatTime(i.CreatedAt),
		formatTime(i.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting instance: %w", err)
	}
	return nil
}

func (r *SQLiteInstanceRepo) GetByID(ctx context.Context, id string) (*domain.WorkflowInstance, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+instanceColumns+` FROM workflow_instances WHERE id = ?`, id)
	inst, err := scanInstance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("instance %s: %w", id, domain.ErrInstanceNotFound)
	}
	return inst, err
}

// List returns instances oldest first, optionally filtered by status.
func (r *SQLiteInstanceRepo) List(ctx context.Context, status *domain.InstanceStatus) ([]*domain.WorkflowInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM workflow_instances`
	var args []any
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}
	defer rows.Close()

	var instances []*domain.WorkflowInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating instances: %w", err)
	}
	return instances, nil
}

func (r *SQLiteInstanceRepo) CountActiveByTemplate(ctx context.Context, templateID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workflow_instances WHERE template_id = ? AND status = ?`,
		templateID, string(domain.InstanceActive),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting instances of template %s: %w", templateID, err)
	}
	return n, nil
}

func (r *SQLiteInstanceRepo) Update(ctx context.Context, i *domain.WorkflowInstance) error {
	query := `UPDATE workflow_instances SET name = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		i.Name,
		i.Description,
		string(i.Status),
		formatTime(i.UpdatedAt),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating instance: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("instance %s: %w", i.ID, domain.ErrInstanceNotFound)
	}
	return nil
}

func scanInstance(s scanner) (*domain.WorkflowInstance, error) {
	var i domain.WorkflowInstance
	var status, startTime, createdAt, updatedAt string
	err := s.Scan(&i.ID, &i.TemplateID, &i.Name, &i.Description, &status, &startTime, &i.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning instance: %w", err)
	}
	i.Status = domain.InstanceStatus(status)
	if i.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if i.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if i.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &i, nil
}
