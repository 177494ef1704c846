package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"flowsmith/pkg/models"
)

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	if err := Initialize(ctx, pool); err != nil {
		t.Fatal(err)
	}

	store := NewPostgresStore(pool)

	newWorkflow := func(t *testing.T, title string) *models.Workflow {
		t.Helper()
		wf := &models.Workflow{
			ID:          uuid.New().String(),
			Title:       title,
			Description: "test workflow",
			Status:      models.WorkflowStatusOffline,
		}
		require.NoError(t, store.CreateWorkflow(ctx, wf))
		return wf
	}

	newAction := func(t *testing.T, workflowID string) *models.Action {
		t.Helper()
		id := uuid.New().String()
		action := &models.Action{
			ID:         id,
			WorkflowID: workflowID,
			Type:       models.ActionTypeHTTPRequest,
			Title:      "test action",
			Status:     models.ActionStatusOffline,
			Key:        models.ActionKey(models.ActionTypeHTTPRequest, id),
		}
		require.NoError(t, store.CreateAction(ctx, action))
		return action
	}

	t.Run("Create and Get Workflow", func(t *testing.T) {
		wf := newWorkflow(t, "Create and Get")

		retrieved, err := store.GetWorkflow(ctx, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, wf.ID, retrieved.ID)
		assert.Equal(t, wf.Title, retrieved.Title)
		assert.Equal(t, wf.Description, retrieved.Description)
		assert.Equal(t, models.WorkflowStatusOffline, retrieved.Status)
		assert.Nil(t, retrieved.Object)
	})

	t.Run("Get missing Workflow returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetWorkflow(ctx, uuid.New().String())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update Workflow writes back all fields", func(t *testing.T) {
		wf := newWorkflow(t, "Before update")

		layout := `{"nodes":[],"edges":[]}`
		wf.Status = models.WorkflowStatusOnline
		wf.Object = &layout
		require.NoError(t, store.UpdateWorkflow(ctx, wf))

		retrieved, err := store.GetWorkflow(ctx, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, "Before update", retrieved.Title)
		assert.Equal(t, models.WorkflowStatusOnline, retrieved.Status)
		require.NotNil(t, retrieved.Object)
		assert.JSONEq(t, layout, *retrieved.Object)
	})

	t.Run("Update missing Workflow returns ErrNotFound", func(t *testing.T) {
		wf := &models.Workflow{ID: uuid.New().String(), Title: "ghost", Status: models.WorkflowStatusOffline}
		assert.ErrorIs(t, store.UpdateWorkflow(ctx, wf), ErrNotFound)
	})

	t.Run("Runs are listed by workflow reference", func(t *testing.T) {
		wf1 := newWorkflow(t, "Runs A")
		wf2 := newWorkflow(t, "Runs B")

		run1 := &models.WorkflowRun{ID: uuid.New().String(), WorkflowID: wf1.ID, Status: models.RunStatusPending}
		run2 := &models.WorkflowRun{ID: uuid.New().String(), WorkflowID: wf2.ID, Status: models.RunStatusPending}
		require.NoError(t, store.CreateWorkflowRun(ctx, run1))
		require.NoError(t, store.CreateWorkflowRun(ctx, run2))

		runs, err := store.ListWorkflowRuns(ctx, wf1.ID)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run1.ID, runs[0].ID)
		assert.Equal(t, wf1.ID, runs[0].WorkflowID)
	})

	t.Run("Get run is scoped to its workflow", func(t *testing.T) {
		wf := newWorkflow(t, "Run scope")
		other := newWorkflow(t, "Run scope other")

		run := &models.WorkflowRun{ID: uuid.New().String(), WorkflowID: wf.ID, Status: models.RunStatusPending}
		require.NoError(t, store.CreateWorkflowRun(ctx, run))

		retrieved, err := store.GetWorkflowRun(ctx, run.ID, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, retrieved.ID)

		_, err = store.GetWorkflowRun(ctx, run.ID, other.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update run status", func(t *testing.T) {
		wf := newWorkflow(t, "Run update")
		run := &models.WorkflowRun{ID: uuid.New().String(), WorkflowID: wf.ID, Status: models.RunStatusPending}
		require.NoError(t, store.CreateWorkflowRun(ctx, run))

		run.Status = models.RunStatusSuccess
		require.NoError(t, store.UpdateWorkflowRun(ctx, run))

		retrieved, err := store.GetWorkflowRun(ctx, run.ID, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RunStatusSuccess, retrieved.Status)
	})

	t.Run("Delete action removes it from the list", func(t *testing.T) {
		wf := newWorkflow(t, "Action delete")
		action := newAction(t, wf.ID)

		actions, err := store.ListActions(ctx, wf.ID)
		require.NoError(t, err)
		require.Len(t, actions, 1)

		require.NoError(t, store.DeleteAction(ctx, action.ID))

		actions, err = store.ListActions(ctx, wf.ID)
		require.NoError(t, err)
		assert.Empty(t, actions)

		_, err = store.GetActionByID(ctx, action.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Action scoped lookup", func(t *testing.T) {
		wf := newWorkflow(t, "Action scope")
		other := newWorkflow(t, "Action scope other")
		action := newAction(t, wf.ID)

		retrieved, err := store.GetAction(ctx, action.ID, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, action.Key, retrieved.Key)

		_, err = store.GetAction(ctx, action.ID, other.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Webhook roundtrip and delete", func(t *testing.T) {
		wf := newWorkflow(t, "Webhook")
		action := newAction(t, wf.ID)

		secret, err := models.NewWebhookSecret()
		require.NoError(t, err)

		hook := &models.Webhook{
			ID:         uuid.New().String(),
			Path:       "hooks/incoming",
			ActionID:   action.ID,
			WorkflowID: wf.ID,
			Secret:     secret,
		}
		require.NoError(t, store.CreateWebhook(ctx, hook))

		retrieved, err := store.GetWebhook(ctx, hook.ID)
		require.NoError(t, err)
		assert.Equal(t, hook.Path, retrieved.Path)
		assert.Equal(t, secret, retrieved.Secret)

		hooks, err := store.ListWebhooks(ctx, wf.ID)
		require.NoError(t, err)
		require.Len(t, hooks, 1)

		require.NoError(t, store.DeleteWebhook(ctx, hook.ID))
		_, err = store.GetWebhook(ctx, hook.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
