package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/officeflow/internal/config"
	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/scheduler"
	"github.com/alexanderramin/officeflow/internal/service"
	"github.com/alexanderramin/officeflow/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := func() time.Time { return testNow }
	locker := service.NewInstanceLocker()
	reg := prometheus.NewRegistry()

	cfg := config.DefaultConfig()
	cfg.TemplateDir = "../../templates"
	cfg.HTTPAddr = "127.0.0.1:0"

	return &App{
		Templates:     service.NewTemplateService(database, uow, clock),
		Instances:     service.NewInstanceService(database, uow, locker, scheduler.DependenciesAdvisory, clock),
		Notifications: service.NewNotificationService(database, clock),
		Sweeper:       service.NewSweepService(database, uow, locker, service.NewSweepMetrics(reg), nil),
		Config:        cfg,
		Clock:         clock,
		Metrics:       reg,
	}
}

// seedMemo stores a one-node template and starts an instance of it at testNow.
func seedMemo(t *testing.T, app *App) *domain.WorkflowInstance {
	t.Helper()
	ctx := context.Background()
	_, err := app.Templates.PutTemplate(ctx, testutil.NewTestTemplate("memo", "Memo approval",
		testutil.WithNodes(testutil.NewTestNode("draft", "Draft memo", testutil.WithTimers(30, 10, 15, 30))),
	))
	require.NoError(t, err)

	inst, err := app.Instances.CreateInstance(ctx, contract.CreateInstanceRequest{
		TemplateID: "memo",
		Name:       "Budget memo",
		StartTime:  testNow,
	})
	require.NoError(t, err)
	return inst
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdContext(t, context.Background(), app, args...)
}

func executeCmdContext(t *testing.T, ctx context.Context, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "officeflow")
	assert.Contains(t, output, "sweep")
}

// --- template ---

func TestTemplateCmd_LoadListShow(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No templates found.")

	output, err = executeCmd(t, app, "template", "load")
	require.NoError(t, err)
	assert.Contains(t, output, "Loaded 2 template(s)")
	assert.Contains(t, output, "document-approval")

	output, err = executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Document Approval")

	output, err = executeCmd(t, app, "template", "list", "--category", "documents")
	require.NoError(t, err)
	assert.Contains(t, output, "Document Approval")
	assert.NotContains(t, output, "honor-nomination")

	output, err = executeCmd(t, app, "template", "show", "document-approval")
	require.NoError(t, err)
	assert.Contains(t, output, "Prepare draft")
	assert.Contains(t, output, "Staff")
}

func TestTemplateCmd_ShowUnknown(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "template", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

// --- instance ---

func TestInstanceCmd_CreateListShowCancel(t *testing.T) {
	app := testApp(t)
	seedMemo(t, app)

	output, err := executeCmd(t, app, "instance", "create", "memo",
		"--name", "Travel memo", "--start", "2025-06-15 10:00", "--by", "alice")
	require.NoError(t, err)
	assert.Contains(t, output, "Created instance")
	assert.Contains(t, output, "Travel memo")

	output, err = executeCmd(t, app, "instance", "list", "--status", "active")
	require.NoError(t, err)
	assert.Contains(t, output, "Budget memo")
	assert.Contains(t, output, "Travel memo")

	instances, err := app.Instances.GetInstances(context.Background(), contract.InstanceFilter{})
	require.NoError(t, err)
	var travel *domain.WorkflowInstance
	for _, inst := range instances {
		if inst.Name == "Travel memo" {
			travel = inst
		}
	}
	require.NotNil(t, travel)
	assert.True(t, travel.StartTime.Equal(testNow.Add(time.Hour)))
	assert.Equal(t, "alice", travel.CreatedBy)

	output, err = executeCmd(t, app, "instance", "show", travel.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, travel.ID)
	assert.Contains(t, output, "Draft memo")

	output, err = executeCmd(t, app, "instance", "cancel", travel.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Cancelled Travel memo")

	output, err = executeCmd(t, app, "instance", "list", "--status", "cancelled")
	require.NoError(t, err)
	assert.Contains(t, output, "Travel memo")
	assert.NotContains(t, output, "Budget memo")
}

func TestInstanceCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "instance", "create", "missing")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	_, err = executeCmd(t, app, "instance", "create", "memo", "--start", "tomorrow")
	assert.ErrorContains(t, err, "--start")

	_, err = executeCmd(t, app, "instance", "list", "--status", "paused")
	assert.ErrorContains(t, err, "unknown instance status")

	_, err = executeCmd(t, app, "instance", "show", "nope")
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)
}

// --- task ---

func TestTaskCmd_StatusByNodeID(t *testing.T) {
	app := testApp(t)
	inst := seedMemo(t, app)

	output, err := executeCmd(t, app, "task", "status", inst.ID, "draft", "--status", "in_progress", "--notes", "started")
	require.NoError(t, err)
	assert.Contains(t, output, "In Progress")

	got, err := app.Instances.GetInstance(context.Background(), inst.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, got.Tasks[0].Status)
	assert.Equal(t, "started", got.Tasks[0].Notes)

	_, err = executeCmd(t, app, "task", "status", inst.ID, got.Tasks[0].ID, "--status", "completed")
	require.NoError(t, err)

	got, err = app.Instances.GetInstance(context.Background(), inst.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InstanceCompleted, got.Status)
}

func TestTaskCmd_StatusErrors(t *testing.T) {
	app := testApp(t)
	inst := seedMemo(t, app)

	_, err := executeCmd(t, app, "task", "status", inst.ID, "draft")
	assert.ErrorIs(t, err, errStatusRequired)

	_, err = executeCmd(t, app, "task", "status", inst.ID, "draft", "--status", "done")
	assert.ErrorContains(t, err, "unknown task status")

	_, err = executeCmd(t, app, "task", "status", inst.ID, "nope", "--status", "completed")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskCmd_Assigned(t *testing.T) {
	app := testApp(t)
	seedMemo(t, app)

	output, err := executeCmd(t, app, "task", "assigned", "staff")
	require.NoError(t, err)
	assert.Contains(t, output, "Draft memo")
	assert.Contains(t, output, "DUE SOON", "reminder time precedes the scheduled time")

	output, err = executeCmd(t, app, "task", "assigned", "general_manager")
	require.NoError(t, err)
	assert.Contains(t, output, "Nothing assigned")

	_, err = executeCmd(t, app, "task", "assigned", "intern")
	assert.ErrorContains(t, err, "unknown position level")
}

// --- sweep and notify ---

func TestSweepAndNotifyCmds(t *testing.T) {
	app := testApp(t)
	seedMemo(t, app)

	output, err := executeCmd(t, app, "sweep")
	require.NoError(t, err)
	assert.Contains(t, output, "escalated 0")

	output, err = executeCmd(t, app, "sweep", "--at", "2025-06-15T09:31:00Z")
	require.NoError(t, err)
	assert.Contains(t, output, "escalated 1")
	assert.Contains(t, output, "warned 1")

	output, err = executeCmd(t, app, "notify", "list", "general_manager")
	require.NoError(t, err)
	assert.Contains(t, output, "WARNING")

	records, err := app.Notifications.GetNotificationsFor(context.Background(), domain.LevelDirectSupervisor)
	require.NoError(t, err)
	require.Len(t, records, 1)

	output, err = executeCmd(t, app, "notify", "read", records[0].ID)
	require.NoError(t, err)
	assert.Contains(t, output, "Marked 1 notification(s) read")

	output, err = executeCmd(t, app, "notify", "list", "direct_supervisor", "--unread")
	require.NoError(t, err)
	assert.Contains(t, output, "No notifications")

	_, err = executeCmd(t, app, "notify", "read", "missing")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

// --- serve ---

func TestServeCmd_StopsWhenContextCancelled(t *testing.T) {
	app := testApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executeCmdContext(t, ctx, app, "serve", "--interval", "1h")
	assert.NoError(t, err)
}
