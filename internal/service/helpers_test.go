package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/officeflow/internal/db"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/scheduler"
	"github.com/alexanderramin/officeflow/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 15, hour, min, 0, 0, time.UTC)
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testEnv struct {
	db            *sql.DB
	uow           db.UnitOfWork
	clock         *fakeClock
	locker        *InstanceLocker
	registry      *prometheus.Registry
	templates     TemplateService
	instances     InstanceService
	notifications NotificationService
	sweeper       SweepService
}

func newTestEnv(t *testing.T, mode scheduler.DependencyMode) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newTestEnvWithUoW(t, database, testutil.NewTestUoW(database), mode)
}

func newTestEnvWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork, mode scheduler.DependencyMode) *testEnv {
	t.Helper()
	clock := &fakeClock{now: testNow}
	locker := NewInstanceLocker()
	reg := prometheus.NewRegistry()
	return &testEnv{
		db:            database,
		uow:           uow,
		clock:         clock,
		locker:        locker,
		registry:      reg,
		templates:     NewTemplateService(database, uow, clock.Now),
		instances:     NewInstanceService(database, uow, locker, mode, clock.Now),
		notifications: NewNotificationService(database, clock.Now),
		sweeper:       NewSweepService(database, uow, locker, NewSweepMetrics(reg), nil),
	}
}

// scenarioTemplate is the single-node template of the documented example:
// limit 30, reminder 10 before, escalate after 15, warn after 30, staff.
func scenarioTemplate() *domain.WorkflowTemplate {
	return testutil.NewTestTemplate("memo", "Memo approval", testutil.WithNodes(
		testutil.NewTestNode("draft", "Draft memo",
			testutil.WithTimers(30, 10, 15, 30),
			testutil.WithLevel(domain.LevelStaff)),
	))
}

// chainTemplate is draft -> review -> sign with increasing levels.
func chainTemplate() *domain.WorkflowTemplate {
	return testutil.NewTestTemplate("chain", "Chain approval", testutil.WithNodes(
		testutil.NewTestNode("draft", "Draft", testutil.WithTimers(30, 10, 15, 30)),
		testutil.NewTestNode("review", "Review",
			testutil.WithTimers(60, 15, 30, 60),
			testutil.WithLevel(domain.LevelDirectSupervisor),
			testutil.WithDependsOn("draft")),
		testutil.NewTestNode("sign", "Sign",
			testutil.WithTimers(20, 5, 10, 20),
			testutil.WithLevel(domain.LevelGeneralManager),
			testutil.WithDependsOn("review")),
	))
}

func (e *testEnv) putTemplate(t *testing.T, tpl *domain.WorkflowTemplate) {
	t.Helper()
	_, err := e.templates.PutTemplate(context.Background(), tpl)
	require.NoError(t, err)
}
