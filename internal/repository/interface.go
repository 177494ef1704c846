package repository

import (
	"context"
	"errors"

	"flowsmith/pkg/models"
)

// ErrNotFound is returned when a single-row lookup matches no row.
var ErrNotFound = errors.New("resource not found")

// Store is the persistence interface for workflows, actions, workflow
// runs, and webhooks.
type Store interface {
	// ListWorkflows returns all workflows.
	ListWorkflows(ctx context.Context) ([]*models.Workflow, error)
	// CreateWorkflow inserts a new workflow.
	CreateWorkflow(ctx context.Context, wf *models.Workflow) error
	// GetWorkflow retrieves a workflow by its ID.
	GetWorkflow(ctx context.Context, id string) (*models.Workflow, error)
	// UpdateWorkflow writes back an existing workflow.
	UpdateWorkflow(ctx context.Context, wf *models.Workflow) error

	// CreateWorkflowRun inserts a new run for a workflow.
	CreateWorkflowRun(ctx context.Context, run *models.WorkflowRun) error
	// ListWorkflowRuns returns all runs whose workflow reference equals
	// the given workflow ID.
	ListWorkflowRuns(ctx context.Context, workflowID string) ([]*models.WorkflowRun, error)
	// GetWorkflowRun retrieves a run scoped to its workflow.
	GetWorkflowRun(ctx context.Context, id, workflowID string) (*models.WorkflowRun, error)
	// UpdateWorkflowRun writes back an existing run.
	UpdateWorkflowRun(ctx context.Context, run *models.WorkflowRun) error

	// ListActions returns all actions belonging to a workflow.
	ListActions(ctx context.Context, workflowID string) ([]*models.Action, error)
	// CreateAction inserts a new action under a workflow.
	CreateAction(ctx context.Context, action *models.Action) error
	// GetAction retrieves an action scoped to its workflow.
	GetAction(ctx context.Context, id, workflowID string) (*models.Action, error)
	// GetActionByID retrieves an action by its ID alone.
	GetActionByID(ctx context.Context, id string) (*models.Action, error)
	// UpdateAction writes back an existing action.
	UpdateAction(ctx context.Context, action *models.Action) error
	// DeleteAction deletes an action by its ID.
	DeleteAction(ctx context.Context, id string) error

	// CreateWebhook inserts a new webhook.
	CreateWebhook(ctx context.Context, hook *models.Webhook) error
	// GetWebhook retrieves a webhook by its ID.
	GetWebhook(ctx context.Context, id string) (*models.Webhook, error)
	// DeleteWebhook deletes a webhook by its ID.
	DeleteWebhook(ctx context.Context, id string) error
	// ListWebhooks returns all webhooks belonging to a workflow.
	ListWebhooks(ctx context.Context, workflowID string) ([]*models.Webhook, error)
}
