package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flowsmith/pkg/models"
)

// ActionResponse is the full action shape, with inputs deserialized
// into a generic object.
type ActionResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      models.ActionStatus    `json:"status"`
	Inputs      map[string]interface{} `json:"inputs"`
	Key         string                 `json:"key"`
}

// ActionMetadataResponse is the flat action shape returned by list and
// create.
type ActionMetadataResponse struct {
	ID          string              `json:"id"`
	WorkflowID  string              `json:"workflow_id"`
	Type        models.ActionType   `json:"type"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.ActionStatus `json:"status"`
	Key         string              `json:"key"`
}

// CreateActionParams is the request body for creating an action.
type CreateActionParams struct {
	WorkflowID string            `json:"workflow_id"`
	Type       models.ActionType `json:"type"`
	Title      string            `json:"title"`
}

// UpdateActionParams is the request body for a partial action update.
// Inputs is an opaque serialized JSON payload.
type UpdateActionParams struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.ActionStatus `json:"status"`
	Inputs      *string              `json:"inputs"`
}

// ListActions returns all actions belonging to the given workflow.
// (GET /actions?workflow_id=)
func (s *Server) ListActions(c echo.Context) error {
	ctx := c.Request().Context()

	workflowID := c.QueryParam("workflow_id")
	if workflowID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "workflow_id query parameter is required")
	}

	actions, err := s.Store.ListActions(ctx, workflowID)
	if err != nil {
		return storeErr(err)
	}

	metadata := make([]ActionMetadataResponse, 0, len(actions))
	for _, action := range actions {
		metadata = append(metadata, ActionMetadataResponse{
			ID:          action.ID,
			WorkflowID:  action.WorkflowID,
			Type:        action.Type,
			Title:       action.Title,
			Description: action.Description,
			Status:      action.Status,
			Key:         action.Key,
		})
	}
	return c.JSON(http.StatusOK, metadata)
}

// CreateAction creates a new action under a workflow. Description
// defaults to empty; the lookup key is derived from type and identity.
// (POST /actions)
func (s *Server) CreateAction(c echo.Context) error {
	ctx := c.Request().Context()

	var params CreateActionParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if !params.Type.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid action type: "+string(params.Type))
	}
	if params.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}

	// Verify the owning workflow so a bad reference surfaces as a 404
	// instead of a constraint violation.
	if _, err := s.Store.GetWorkflow(ctx, params.WorkflowID); err != nil {
		return storeErr(err)
	}

	id := uuid.New().String()
	action := &models.Action{
		ID:          id,
		WorkflowID:  params.WorkflowID,
		Type:        params.Type,
		Title:       params.Title,
		Description: "",
		Status:      models.ActionStatusOffline,
		Key:         models.ActionKey(params.Type, id),
	}
	if err := s.Store.CreateAction(ctx, action); err != nil {
		return storeErr(err)
	}

	return c.JSON(http.StatusCreated, ActionMetadataResponse{
		ID:          action.ID,
		WorkflowID:  action.WorkflowID,
		Type:        action.Type,
		Title:       action.Title,
		Description: action.Description,
		Status:      action.Status,
		Key:         action.Key,
	})
}

// GetAction returns one action, scoped to its workflow.
// (GET /actions/:action_id?workflow_id=)
func (s *Server) GetAction(c echo.Context) error {
	ctx := c.Request().Context()

	actionID := c.Param("action_id")
	workflowID := c.QueryParam("workflow_id")
	if workflowID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "workflow_id query parameter is required")
	}

	action, err := s.Store.GetAction(ctx, actionID, workflowID)
	if err != nil {
		return storeErr(err)
	}

	inputs, err := decodeJSONObject(action.Inputs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Malformed action inputs: "+err.Error())
	}

	return c.JSON(http.StatusOK, ActionResponse{
		ID:          action.ID,
		Title:       action.Title,
		Description: action.Description,
		Status:      action.Status,
		Inputs:      inputs,
		Key:         action.Key,
	})
}

// UpdateAction applies a partial update to an action and returns the
// updated full shape.
// (POST /actions/:action_id)
func (s *Server) UpdateAction(c echo.Context) error {
	ctx := c.Request().Context()
	actionID := c.Param("action_id")

	var params UpdateActionParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if params.Status != nil && !params.Status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid action status: "+string(*params.Status))
	}
	if params.Inputs != nil && !validJSON(*params.Inputs) {
		return echo.NewHTTPError(http.StatusBadRequest, "Action inputs are not valid JSON")
	}

	action, err := s.Store.GetActionByID(ctx, actionID)
	if err != nil {
		return storeErr(err)
	}

	if params.Title != nil {
		action.Title = *params.Title
	}
	if params.Description != nil {
		action.Description = *params.Description
	}
	if params.Status != nil {
		action.Status = *params.Status
	}
	if params.Inputs != nil {
		action.Inputs = params.Inputs
	}

	if err := s.Store.UpdateAction(ctx, action); err != nil {
		return storeErr(err)
	}

	inputs, err := decodeJSONObject(action.Inputs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Malformed action inputs: "+err.Error())
	}

	return c.JSON(http.StatusOK, ActionResponse{
		ID:          action.ID,
		Title:       action.Title,
		Description: action.Description,
		Status:      action.Status,
		Inputs:      inputs,
		Key:         action.Key,
	})
}

// DeleteAction deletes an action by its ID.
// (DELETE /actions/:action_id)
func (s *Server) DeleteAction(c echo.Context) error {
	ctx := c.Request().Context()
	actionID := c.Param("action_id")

	if err := s.Store.DeleteAction(ctx, actionID); err != nil {
		return storeErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}
