package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flowsmith/pkg/models"
)

// WorkflowRunResponse is the run shape returned by the run endpoints.
type WorkflowRunResponse struct {
	ID         string           `json:"id"`
	WorkflowID string           `json:"workflow_id"`
	Status     models.RunStatus `json:"status"`
}

// UpdateWorkflowRunParams is the request body for a partial run update.
type UpdateWorkflowRunParams struct {
	Status *models.RunStatus `json:"status"`
}

// CreateWorkflowRun records a new execution attempt for a workflow.
// (POST /workflows/:workflow_id/runs)
func (s *Server) CreateWorkflowRun(c echo.Context) error {
	ctx := c.Request().Context()
	workflowID := c.Param("workflow_id")

	// The runs table references workflows, so verify the owner up front
	// to return a 404 instead of a constraint violation.
	if _, err := s.Store.GetWorkflow(ctx, workflowID); err != nil {
		return storeErr(err)
	}

	run := &models.WorkflowRun{
		ID:         uuid.New().String(),
		WorkflowID: workflowID,
		Status:     models.RunStatusPending,
	}
	if err := s.Store.CreateWorkflowRun(ctx, run); err != nil {
		return storeErr(err)
	}

	return c.JSON(http.StatusCreated, WorkflowRunResponse{
		ID:         run.ID,
		WorkflowID: run.WorkflowID,
		Status:     run.Status,
	})
}

// ListWorkflowRuns returns all runs whose workflow reference equals the
// given workflow ID.
// (GET /workflows/:workflow_id/runs)
func (s *Server) ListWorkflowRuns(c echo.Context) error {
	ctx := c.Request().Context()
	workflowID := c.Param("workflow_id")

	runs, err := s.Store.ListWorkflowRuns(ctx, workflowID)
	if err != nil {
		return storeErr(err)
	}

	metadata := make([]WorkflowRunResponse, 0, len(runs))
	for _, run := range runs {
		metadata = append(metadata, WorkflowRunResponse{
			ID:         run.ID,
			WorkflowID: run.WorkflowID,
			Status:     run.Status,
		})
	}
	return c.JSON(http.StatusOK, metadata)
}

// GetWorkflowRun returns one run, scoped to its workflow.
// (GET /workflows/:workflow_id/runs/:run_id)
func (s *Server) GetWorkflowRun(c echo.Context) error {
	ctx := c.Request().Context()
	workflowID := c.Param("workflow_id")
	runID := c.Param("run_id")

	run, err := s.Store.GetWorkflowRun(ctx, runID, workflowID)
	if err != nil {
		return storeErr(err)
	}

	return c.JSON(http.StatusOK, WorkflowRunResponse{
		ID:         run.ID,
		WorkflowID: run.WorkflowID,
		Status:     run.Status,
	})
}

// UpdateWorkflowRun applies a partial status update to a run.
// (POST /workflows/:workflow_id/runs/:run_id)
func (s *Server) UpdateWorkflowRun(c echo.Context) error {
	ctx := c.Request().Context()
	workflowID := c.Param("workflow_id")
	runID := c.Param("run_id")

	var params UpdateWorkflowRunParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if params.Status != nil && !params.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid run status: "+string(*params.Status))
	}

	run, err := s.Store.GetWorkflowRun(ctx, runID, workflowID)
	if err != nil {
		return storeErr(err)
	}

	if params.Status != nil {
		run.Status = *params.Status
	}

	if err := s.Store.UpdateWorkflowRun(ctx, run); err != nil {
		return storeErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}
