package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flowsmith/pkg/models"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// mapErr converts driver-level "no rows" into ErrNotFound so callers can
// produce a controlled 404 instead of an undifferentiated server error.
func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ListWorkflows returns all workflows.
func (s *PostgresStore) ListWorkflows(ctx context.Context) ([]*models.Workflow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, description, status, object, created_at, updated_at FROM workflows`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []*models.Workflow
	for rows.Next() {
		var wf models.Workflow
		if err := rows.Scan(&wf.ID, &wf.Title, &wf.Description, &wf.Status, &wf.Object, &wf.CreatedAt, &wf.UpdatedAt); err != nil {
			return nil, err
		}
		workflows = append(workflows, &wf)
	}
	return workflows, rows.Err()
}

// CreateWorkflow inserts a new workflow.
func (s *PostgresStore) CreateWorkflow(ctx context.Context, wf *models.Workflow) error {
	now := time.Now().UTC()
	wf.CreatedAt = now
	wf.UpdatedAt = now
	_, err := s.db.Exec(ctx,
		`INSERT INTO workflows (id, title, description, status, object, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		wf.ID, wf.Title, wf.Description, wf.Status, wf.Object, wf.CreatedAt, wf.UpdatedAt)
	return err
}

// GetWorkflow retrieves a workflow by its ID.
func (s *PostgresStore) GetWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	var wf models.Workflow
	err := s.db.QueryRow(ctx,
		`SELECT id, title, description, status, object, created_at, updated_at FROM workflows WHERE id = $1`,
		id).Scan(&wf.ID, &wf.Title, &wf.Description, &wf.Status, &wf.Object, &wf.CreatedAt, &wf.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &wf, nil
}

// UpdateWorkflow writes back an existing workflow.
func (s *PostgresStore) UpdateWorkflow(ctx context.Context, wf *models.Workflow) error {
	wf.UpdatedAt = time.Now().UTC()
	tag, err := s.db.Exec(ctx,
		`UPDATE workflows SET title = $1, description = $2, status = $3, object = $4, updated_at = $5 WHERE id = $6`,
		wf.Title, wf.Description, wf.Status, wf.Object, wf.UpdatedAt, wf.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateWorkflowRun inserts a new run for a workflow.
func (s *PostgresStore) CreateWorkflowRun(ctx context.Context, run *models.WorkflowRun) error {
	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now
	_, err := s.db.Exec(ctx,
		`INSERT INTO workflow_runs (id, workflow_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.WorkflowID, run.Status, run.CreatedAt, run.UpdatedAt)
	return err
}

// ListWorkflowRuns returns all runs whose workflow reference equals the
// given workflow ID.
func (s *PostgresStore) ListWorkflowRuns(ctx context.Context, workflowID string) ([]*models.WorkflowRun, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workflow_id, status, created_at, updated_at FROM workflow_runs WHERE workflow_id = $1`,
		workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.WorkflowRun
	for rows.Next() {
		var run models.WorkflowRun
		if err := rows.Scan(&run.ID, &run.WorkflowID, &run.Status, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetWorkflowRun retrieves a run scoped to its workflow.
func (s *PostgresStore) GetWorkflowRun(ctx context.Context, id, workflowID string) (*models.WorkflowRun, error) {
	var run models.WorkflowRun
	err := s.db.QueryRow(ctx,
		`SELECT id, workflow_id, status, created_at, updated_at FROM workflow_runs WHERE id = $1 AND workflow_id = $2`,
		id, workflowID).Scan(&run.ID, &run.WorkflowID, &run.Status, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &run, nil
}

// UpdateWorkflowRun writes back an existing run.
func (s *PostgresStore) UpdateWorkflowRun(ctx context.Context, run *models.WorkflowRun) error {
	run.UpdatedAt = time.Now().UTC()
	tag, err := s.db.Exec(ctx,
		`UPDATE workflow_runs SET status = $1, updated_at = $2 WHERE id = $3 AND workflow_id = $4`,
		run.Status, run.UpdatedAt, run.ID, run.WorkflowID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActions returns all actions belonging to a workflow.
func (s *PostgresStore) ListActions(ctx context.Context, workflowID string) ([]*models.Action, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workflow_id, type, title, description, status, action_key, inputs, created_at, updated_at
		 FROM actions WHERE workflow_id = $1`,
		workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*models.Action
	for rows.Next() {
		var action models.Action
		if err := rows.Scan(&action.ID, &action.WorkflowID, &action.Type, &action.Title, &action.Description,
			&action.Status, &action.Key, &action.Inputs, &action.CreatedAt, &action.UpdatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, &action)
	}
	return actions, rows.Err()
}

// CreateAction inserts a new action under a workflow.
func (s *PostgresStore) CreateAction(ctx context.Context, action *models.Action) error {
	now := time.Now().UTC()
	action.CreatedAt = now
	action.UpdatedAt = now
	_, err := s.db.Exec(ctx,
		`INSERT INTO actions (id, workflow_id, type, title, description, status, action_key, inputs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		action.ID, action.WorkflowID, action.Type, action.Title, action.Description,
		action.Status, action.Key, action.Inputs, action.CreatedAt, action.UpdatedAt)
	return err
}

// GetAction retrieves an action scoped to its workflow.
func (s *PostgresStore) GetAction(ctx context.Context, id, workflowID string) (*models.Action, error) {
	var action models.Action
	err := s.db.QueryRow(ctx,
		`SELECT id, workflow_id, type, title, description, status, action_key, inputs, created_at, updated_at
		 FROM actions WHERE id = $1 AND workflow_id = $2`,
		id, workflowID).Scan(&action.ID, &action.WorkflowID, &action.Type, &action.Title, &action.Description,
		&action.Status, &action.Key, &action.Inputs, &action.CreatedAt, &action.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &action, nil
}

// GetActionByID retrieves an action by its ID alone.
func (s *PostgresStore) GetActionByID(ctx context.Context, id string) (*models.Action, error) {
	var action models.Action
	err := s.db.QueryRow(ctx,
		`SELECT id, workflow_id, type, title, description, status, action_key, inputs, created_at, updated_at
		 FROM actions WHERE id = $1`,
		id).Scan(&action.ID, &action.WorkflowID, &action.Type, &action.Title, &action.Description,
		&action.Status, &action.Key, &action.Inputs, &action.CreatedAt, &action.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &action, nil
}

// UpdateAction writes back an existing action.
func (s *PostgresStore) UpdateAction(ctx context.Context, action *models.Action) error {
	action.UpdatedAt = time.Now().UTC()
	tag, err := s.db.Exec(ctx,
		`UPDATE actions SET title = $1, description = $2, status = $3, inputs = $4, updated_at = $5 WHERE id = $6`,
		action.Title, action.Description, action.Status, action.Inputs, action.UpdatedAt, action.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAction deletes an action by its ID.
func (s *PostgresStore) DeleteAction(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM actions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateWebhook inserts a new webhook.
func (s *PostgresStore) CreateWebhook(ctx context.Context, hook *models.Webhook) error {
	now := time.Now().UTC()
	hook.CreatedAt = now
	hook.UpdatedAt = now
	_, err := s.db.Exec(ctx,
		`INSERT INTO webhooks (id, path, action_id, workflow_id, secret, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		hook.ID, hook.Path, hook.ActionID, hook.WorkflowID, hook.Secret, hook.CreatedAt, hook.UpdatedAt)
	return err
}

// GetWebhook retrieves a webhook by its ID.
func (s *PostgresStore) GetWebhook(ctx context.Context, id string) (*models.Webhook, error) {
	var hook models.Webhook
	err := s.db.QueryRow(ctx,
		`SELECT id, path, action_id, workflow_id, secret, created_at, updated_at FROM webhooks WHERE id = $1`,
		id).Scan(&hook.ID, &hook.Path, &hook.ActionID, &hook.WorkflowID, &hook.Secret, &hook.CreatedAt, &hook.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &hook, nil
}

// DeleteWebhook deletes a webhook by its ID.
func (s *PostgresStore) DeleteWebhook(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWebhooks returns all webhooks belonging to a workflow.
func (s *PostgresStore) ListWebhooks(ctx context.Context, workflowID string) ([]*models.Webhook, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, path, action_id, workflow_id, secret, created_at, updated_at FROM webhooks WHERE workflow_id = $1`,
		workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hooks []*models.Webhook
	for rows.Next() {
		var hook models.Webhook
		if err := rows.Scan(&hook.ID, &hook.Path, &hook.ActionID, &hook.WorkflowID, &hook.Secret, &hook.CreatedAt, &hook.UpdatedAt); err != nil {
			return nil, err
		}
		hooks = append(hooks, &hook)
	}
	return hooks, rows.Err()
}
