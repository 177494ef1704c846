package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flowsmith/pkg/models"
)

// WorkflowMetadataResponse is the flat workflow shape returned by list,
// create, and as part of the full workflow response.
type WorkflowMetadataResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      models.WorkflowStatus `json:"status"`
}

// WorkflowResponse is the full workflow shape: metadata plus the action
// set keyed by action ID and the deserialized editor layout.
type WorkflowResponse struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Status      models.WorkflowStatus     `json:"status"`
	Actions     map[string]ActionResponse `json:"actions"`
	Object      map[string]interface{}    `json:"object"`
}

// CreateWorkflowParams is the request body for creating a workflow.
type CreateWorkflowParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateWorkflowParams is the request body for a partial workflow
// update. Absent fields leave stored values untouched.
type UpdateWorkflowParams struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *models.WorkflowStatus `json:"status"`
	Object      *string                `json:"object"`
}

// ListWorkflows returns metadata for all workflows.
// (GET /workflows)
func (s *Server) ListWorkflows(c echo.Context) error {
	ctx := c.Request().Context()

	workflows, err := s.Store.ListWorkflows(ctx)
	if err != nil {
		return storeErr(err)
	}

	metadata := make([]WorkflowMetadataResponse, 0, len(workflows))
	for _, wf := range workflows {
		metadata = append(metadata, WorkflowMetadataResponse{
			ID:          wf.ID,
			Title:       wf.Title,
			Description: wf.Description,
			Status:      wf.Status,
		})
	}
	return c.JSON(http.StatusOK, metadata)
}

// CreateWorkflow creates a new workflow with a caller-given title and
// description. Identity and the initial status are generated here.
// (POST /workflows)
func (s *Server) CreateWorkflow(c echo.Context) error {
	ctx := c.Request().Context()

	var params CreateWorkflowParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if params.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	wf := &models.Workflow{
		ID:          uuid.New().String(),
		Title:       params.Title,
		Description: params.Description,
		Status:      models.WorkflowStatusOffline,
	}
	if err := s.Store.CreateWorkflow(ctx, wf); err != nil {
		return storeErr(err)
	}

	return c.JSON(http.StatusCreated, WorkflowMetadataResponse{
		ID:          wf.ID,
		Title:       wf.Title,
		Description: wf.Description,
		Status:      wf.Status,
	})
}

// GetWorkflow returns a workflow's metadata, its full action set, and
// the deserialized editor layout.
// (GET /workflows/:workflow_id)
func (s *Server) GetWorkflow(c echo.Context) error {
	ctx := c.Request().Context()
	workflowID := c.Param("workflow_id")

	wf, err := s.Store.GetWorkflow(ctx, workflowID)
	if err != nil {
		return storeErr(err)
	}

	actions, err := s.Store.ListActions(ctx, workflowID)
	if err != nil {
		return storeErr(err)
	}

	actionResponses := make(map[string]ActionResponse, len(actions))
	for _, action := range actions {
		inputs, err := decodeJSONObject(action.Inputs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Malformed action inputs: "+err.Error())
		}
		actionResponses[action.ID] = ActionResponse{
			ID:          action.ID,
			Title:       action.Title,
			Description: action.Description,
			Status:      action.Status,
			Inputs:      inputs,
			Key:         action.Key,
		}
	}

	object, err := decodeJSONObject(wf.Object)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Malformed workflow object: "+err.Error())
	}

	return c.JSON(http.StatusOK, WorkflowResponse{
		ID:          wf.ID,
		Title:       wf.Title,
		Description: wf.Description,
		Status:      wf.Status,
		Actions:     actionResponses,
		Object:      object,
	})
}

// UpdateWorkflow applies a partial update to a workflow. Only fields
// present in the request body are written.
// (POST /workflows/:workflow_id)
func (s *Server) UpdateWorkflow(c echo.Context) error {
	ctx := c.Request().Context()
	workflowID := c.Param("workflow_id")

	var params UpdateWorkflowParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if params.Status != nil && !params.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid workflow status: "+string(*params.Status))
	}
	if params.Object != nil && !validJSON(*params.Object) {
		return echo.NewHTTPError(http.StatusBadRequest, "Workflow object is not valid JSON")
	}

	wf, err := s.Store.GetWorkflow(ctx, workflowID)
	if err != nil {
		return storeErr(err)
	}

	if params.Title != nil {
		wf.Title = *params.Title
	}
	if params.Description != nil {
		wf.Description = *params.Description
	}
	if params.Status != nil {
		wf.Status = *params.Status
	}
	if params.Object != nil {
		wf.Object = params.Object
	}

	if err := s.Store.UpdateWorkflow(ctx, wf); err != nil {
		return storeErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}
