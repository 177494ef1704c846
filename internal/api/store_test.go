package api

import (
	"context"

	"flowsmith/internal/repository"
	"flowsmith/pkg/models"
)

// memStore is an in-memory Store used by the handler tests.
type memStore struct {
	workflows map[string]*models.Workflow
	actions   map[string]*models.Action
	runs      map[string]*models.WorkflowRun
	webhooks  map[string]*models.Webhook
}

func newMemStore() *memStore {
	return &memStore{
		workflows: make(map[string]*models.Workflow),
		actions:   make(map[string]*models.Action),
		runs:      make(map[string]*models.WorkflowRun),
		webhooks:  make(map[string]*models.Webhook),
	}
}

func (m *memStore) ListWorkflows(_ context.Context) ([]*models.Workflow, error) {
	var out []*models.Workflow
	for _, wf := range m.workflows {
		cp := *wf
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) CreateWorkflow(_ context.Context, wf *models.Workflow) error {
	cp := *wf
	m.workflows[wf.ID] = &cp
	return nil
}

func (m *memStore) GetWorkflow(_ context.Context, id string) (*models.Workflow, error) {
	wf, ok := m.workflows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *wf
	return &cp, nil
}

func (m *memStore) UpdateWorkflow(_ context.Context, wf *models.Workflow) error {
	if _, ok := m.workflows[wf.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *wf
	m.workflows[wf.ID] = &cp
	return nil
}

func (m *memStore) CreateWorkflowRun(_ context.Context, run *models.WorkflowRun) error {
	cp := *run
	m.runs[run.ID] = &cp
	return nil
}

func (m *memStore) ListWorkflowRuns(_ context.Context, workflowID string) ([]*models.WorkflowRun, error) {
	var out []*models.WorkflowRun
	for _, run := range m.runs {
		if run.WorkflowID == workflowID {
			cp := *run
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) GetWorkflowRun(_ context.Context, id, workflowID string) (*models.WorkflowRun, error) {
	run, ok := m.runs[id]
	if !ok || run.WorkflowID != workflowID {
		return nil, repository.ErrNotFound
	}
	cp := *run
	return &cp, nil
}

func (m *memStore) UpdateWorkflowRun(_ context.Context, run *models.WorkflowRun) error {
	existing, ok := m.runs[run.ID]
	if !ok || existing.WorkflowID != run.WorkflowID {
		return repository.ErrNotFound
	}
	cp := *run
	m.runs[run.ID] = &cp
	return nil
}

func (m *memStore) ListActions(_ context.Context, workflowID string) ([]*models.Action, error) {
	var out []*models.Action
	for _, action := range m.actions {
		if action.WorkflowID == workflowID {
			cp := *action
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStore) CreateAction(_ context.Context, action *models.Action) error {
	cp := *action
	m.actions[action.ID] = &cp
	return nil
}

func (m *memStore) GetAction(_ context.Context, id, workflowID string) (*models.Action, error) {
	action, ok := m.actions[id]
	if !ok || action.WorkflowID != workflowID {
		return nil, repository.ErrNotFound
	}
	cp := *action
	return &cp, nil
}

func (m *memStore) GetActionByID(_ context.Context, id string) (*models.Action, error) {
	action, ok := m.actions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *action
	return &cp, nil
}

func (m *memStore) UpdateAction(_ context.Context, action *models.Action) error {
	if _, ok := m.actions[action.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *action
	m.actions[action.ID] = &cp
	return nil
}

func (m *memStore) DeleteAction(_ context.Context, id string) error {
	if _, ok := m.actions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.actions, id)
	return nil
}

func (m *memStore) CreateWebhook(_ context.Context, hook *models.Webhook) error {
	cp := *hook
	m.webhooks[hook.ID] = &cp
	return nil
}

func (m *memStore) GetWebhook(_ context.Context, id string) (*models.Webhook, error) {
	hook, ok := m.webhooks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *hook
	return &cp, nil
}

func (m *memStore) DeleteWebhook(_ context.Context, id string) error {
	if _, ok := m.webhooks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.webhooks, id)
	return nil
}

func (m *memStore) ListWebhooks(_ context.Context, workflowID string) ([]*models.Webhook, error) {
	var out []*models.Webhook
	for _, hook := range m.webhooks {
		if hook.WorkflowID == workflowID {
			cp := *hook
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ repository.Store = (*memStore)(nil)
