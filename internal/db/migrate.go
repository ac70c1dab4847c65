package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Re-running an ALTER TABLE ADD COLUMN is expected.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workflow_templates (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		nodes_json  TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workflow_templates_category ON workflow_templates(category)`,

	`CREATE TABLE IF NOT EXISTS workflow_instances (
		id          TEXT PRIMARY KEY,
		template_id TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','completed','cancelled')),
		start_time  TEXT NOT NULL,
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workflow_instances_status ON workflow_instances(status)`,

	`CREATE TABLE IF NOT EXISTS workflow_tasks (
		id                TEXT PRIMARY KEY,
		instance_id       TEXT NOT NULL REFERENCES workflow_instances(id) ON DELETE CASCADE,
		node_id           TEXT NOT NULL,
		seq               INTEGER NOT NULL DEFAULT 0,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL DEFAULT '',
		depends_on_json   TEXT NOT NULL DEFAULT '[]',
		assigned_to       TEXT NOT NULL
		                  CHECK(assigned_to IN ('staff','direct_supervisor','branch_deputy','general_manager')),
		original_assignee TEXT NOT NULL
		                  CHECK(original_assignee IN ('staff','direct_supervisor','branch_deputy','general_manager')),
		status            TEXT NOT NULL DEFAULT 'pending'
		                  CHECK(status IN ('pending','in_progress','completed','escalated','warning')),
		scheduled_time    TEXT NOT NULL,
		reminder_time     TEXT NOT NULL,
		escalation_time   TEXT NOT NULL,
		warning_time      TEXT NOT NULL,
		start_time        TEXT,
		completion_time   TEXT,
		escalated_at      TEXT,
		warned_at         TEXT,
		notes             TEXT NOT NULL DEFAULT '',
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workflow_tasks_instance ON workflow_tasks(instance_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workflow_tasks_assigned ON workflow_tasks(assigned_to, status)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		task_id     TEXT NOT NULL,
		instance_id TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL
		            CHECK(type IN ('reminder','escalation','warning')),
		message     TEXT NOT NULL,
		sent_to     TEXT NOT NULL
		            CHECK(sent_to IN ('staff','direct_supervisor','branch_deputy','general_manager')),
		sent_time   TEXT NOT NULL,
		is_read     INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_sent_to ON notifications(sent_to, sent_time)`,
}
