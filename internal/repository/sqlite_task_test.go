package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/alexanderramin/officeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestInstanceRepo_CreateGetUpdate(t *testing.T) {
	repo := NewSQLiteInstanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	inst := testutil.NewTestInstance("doc-approval", "Budget memo", testutil.WithInstanceStart(testNow))
	require.NoError(t, repo.Create(ctx, inst))

	fetched, err := repo.GetByID(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budget memo", fetched.Name)
	assert.Equal(t, domain.InstanceActive, fetched.Status)
	assert.True(t, testNow.Equal(fetched.StartTime))

	fetched.Status = domain.InstanceCancelled
	fetched.UpdatedAt = testNow.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByID(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InstanceCancelled, again.Status)
	assert.True(t, testNow.Add(time.Hour).Equal(again.UpdatedAt))
}

func TestInstanceRepo_NotFound(t *testing.T) {
	repo := NewSQLiteInstanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)

	err = repo.Update(ctx, testutil.NewTestInstance("tpl", "ghost"))
	assert.ErrorIs(t, err, domain.ErrInstanceNotFound)
}

func TestInstanceRepo_ListFiltersByStatus(t *testing.T) {
	repo := NewSQLiteInstanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestInstance("tpl", "one")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestInstance("tpl", "two",
		testutil.WithInstanceStatus(domain.InstanceCompleted))))

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active := domain.InstanceActive
	got, err := repo.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Name)
}

func TestInstanceRepo_CountActiveByTemplate(t *testing.T) {
	repo := NewSQLiteInstanceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestInstance("memo", "one")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestInstance("memo", "two")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestInstance("memo", "three",
		testutil.WithInstanceStatus(domain.InstanceCancelled))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestInstance("leave", "four")))

	n, err := repo.CountActiveByTemplate(ctx, "memo")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountActiveByTemplate(ctx, "unused")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTaskRepo_RoundTripsAllFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	instances := NewSQLiteInstanceRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	inst := testutil.NewTestInstance("tpl", "memo")
	require.NoError(t, instances.Create(ctx, inst))

	task := testutil.NewTestTask(inst.ID, "review", "Review",
		testutil.WithAssignee(domain.LevelDirectSupervisor),
		testutil.WithScheduled(testNow),
		testutil.WithTaskDependsOn("draft"),
		testutil.WithTaskSeq(2),
	)
	task.Notes = "see attachment"
	require.NoError(t, tasks.Create(ctx, task))

	fetched, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, inst.ID, fetched.InstanceID)
	assert.Equal(t, "review", fetched.NodeID)
	assert.Equal(t, 2, fetched.Seq)
	assert.Equal(t, []string{"draft"}, fetched.DependsOn)
	assert.Equal(t, domain.LevelDirectSupervisor, fetched.AssignedTo)
	assert.Equal(t, domain.LevelDirectSupervisor, fetched.OriginalAssignee)
	assert.True(t, testNow.Add(-10*time.Minute).Equal(fetched.ReminderTime))
	assert.True(t, testNow.Add(15*time.Minute).Equal(fetched.EscalationTime))
	assert.True(t, testNow.Add(30*time.Minute).Equal(fetched.WarningTime))
	assert.Nil(t, fetched.StartTime)
	assert.Nil(t, fetched.CompletionTime)
	assert.Equal(t, "see attachment", fetched.Notes)
}

func TestTaskRepo_UpdatePersistsEscalation(t *testing.T) {
	database := testutil.NewTestDB(t)
	instances := NewSQLiteInstanceRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	inst := testutil.NewTestInstance("tpl", "memo")
	require.NoError(t, instances.Create(ctx, inst))
	task := testutil.NewTestTask(inst.ID, "draft", "Draft", testutil.WithScheduled(testNow))
	require.NoError(t, tasks.Create(ctx, task))

	at := testNow.Add(20 * time.Minute)
	_, err := task.Escalate(at)
	require.NoError(t, err)
	require.NoError(t, tasks.Update(ctx, task))

	fetched, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskEscalated, fetched.Status)
	assert.Equal(t, domain.LevelDirectSupervisor, fetched.AssignedTo)
	assert.Equal(t, domain.LevelStaff, fetched.OriginalAssignee)
	require.NotNil(t, fetched.EscalatedAt)
	assert.True(t, at.Equal(*fetched.EscalatedAt))
}

func TestTaskRepo_ListByInstanceOrdersBySeq(t *testing.T) {
	database := testutil.NewTestDB(t)
	instances := NewSQLiteInstanceRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	inst := testutil.NewTestInstance("tpl", "memo")
	require.NoError(t, instances.Create(ctx, inst))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(inst.ID, "c", "Third", testutil.WithTaskSeq(3))))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(inst.ID, "a", "First", testutil.WithTaskSeq(1))))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(inst.ID, "b", "Second", testutil.WithTaskSeq(2))))

	got, err := tasks.ListByInstance(ctx, inst.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].NodeID, got[1].NodeID, got[2].NodeID})
}

func TestTaskRepo_ListByAssigneeActiveOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	instances := NewSQLiteInstanceRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	live := testutil.NewTestInstance("tpl", "live")
	done := testutil.NewTestInstance("tpl", "done", testutil.WithInstanceStatus(domain.InstanceCompleted))
	require.NoError(t, instances.Create(ctx, live))
	require.NoError(t, instances.Create(ctx, done))

	open := testutil.NewTestTask(live.ID, "a", "Open")
	closed := testutil.NewTestTask(live.ID, "b", "Closed", testutil.WithTaskStatus(domain.TaskCompleted))
	other := testutil.NewTestTask(done.ID, "a", "Old")
	boss := testutil.NewTestTask(live.ID, "c", "Boss", testutil.WithAssignee(domain.LevelGeneralManager))
	for _, task := range []*domain.WorkflowTask{open, closed, other, boss} {
		require.NoError(t, tasks.Create(ctx, task))
	}

	active, err := tasks.ListByAssignee(ctx, domain.LevelStaff, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	all, err := tasks.ListByAssignee(ctx, domain.LevelStaff, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskRepo_NotFound(t *testing.T) {
	tasks := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := tasks.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Update(ctx, testutil.NewTestTask("i", "n", "ghost")), domain.ErrTaskNotFound)
}
