package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
)

// SQLiteTemplateRepo stores templates with their nodes as a JSON document.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

const templateColumns = `id, name, description, category, nodes_json, created_at, updated_at`

func (r *SQLiteTemplateRepo) Upsert(ctx context.Context, t *domain.WorkflowTemplate) error {
	nodes, err := json.Marshal(t.Nodes)
	if err != nil {
		return fmt.Errorf("encoding nodes of template %s: %w", t.ID, err)
	}
	query := `INSERT INTO workflow_templates (` + templateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			nodes_json = excluded.nodes_json,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		t.Category,
		string(nodes),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.WorkflowTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM workflow_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %s: %w", id, domain.ErrTemplateNotFound)
	}
	return t, err
}

func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.WorkflowTemplate, error) {
	return r.query(ctx, `SELECT `+templateColumns+` FROM workflow_templates ORDER BY name, id`)
}

func (r *SQLiteTemplateRepo) ListByCategory(ctx context.Context, category string) ([]*domain.WorkflowTemplate, error) {
	return r.query(ctx,
		`SELECT `+templateColumns+` FROM workflow_templates WHERE category = ? ORDER BY name, id`, category)
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workflow_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("template %s: %w", id, domain.ErrTemplateNotFound)
	}
	return nil
}

func (r *SQLiteTemplateRepo) query(ctx context.Context, query string, args ...any) ([]*domain.WorkflowTemplate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.WorkflowTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func scanTemplate(s scanner) (*domain.WorkflowTemplate, error) {
	var t domain.WorkflowTemplate
	var nodesJSON, createdAt, updatedAt string
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &nodesJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	if err := json.Unmarshal([]byte(nodesJSON), &t.Nodes); err != nil {
		return nil, fmt.Errorf("decoding nodes of template %s: %w", t.ID, err)
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
