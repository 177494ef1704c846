package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flowsmith/pkg/models"
)

// WebhookResponse is the webhook shape returned by the webhook
// endpoints. The secret is never exposed.
type WebhookResponse struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	ActionID   string `json:"action_id"`
	WorkflowID string `json:"workflow_id"`
}

// CreateWebhookParams is the request body for creating a webhook.
type CreateWebhookParams struct {
	Path       string `json:"path"`
	ActionID   string `json:"action_id"`
	WorkflowID string `json:"workflow_id"`
}

// AuthenticateWebhookResponse is the result of a webhook secret check.
// ActionKey and WebhookID are present only on an authorized result.
type AuthenticateWebhookResponse struct {
	Status    string `json:"status"`
	ActionKey string `json:"action_key,omitempty"`
	WebhookID string `json:"webhook_id,omitempty"`
}

const (
	webhookAuthorized   = "Authorized"
	webhookUnauthorized = "Unauthorized"
)

// CreateWebhook creates a new webhook bound to one action. The shared
// secret is generated server-side and stored; it is not returned.
// (PUT /webhooks)
func (s *Server) CreateWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var params CreateWebhookParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if params.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Path is required")
	}

	// Verify the owning action within the owning workflow so a bad
	// reference surfaces as a 404 instead of a constraint violation.
	if _, err := s.Store.GetAction(ctx, params.ActionID, params.WorkflowID); err != nil {
		return storeErr(err)
	}

	secret, err := models.NewWebhookSecret()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	hook := &models.Webhook{
		ID:         uuid.New().String(),
		Path:       params.Path,
		ActionID:   params.ActionID,
		WorkflowID: params.WorkflowID,
		Secret:     secret,
	}
	if err := s.Store.CreateWebhook(ctx, hook); err != nil {
		return storeErr(err)
	}

	return c.JSON(http.StatusCreated, WebhookResponse{
		ID:         hook.ID,
		Path:       hook.Path,
		ActionID:   hook.ActionID,
		WorkflowID: hook.WorkflowID,
	})
}

// GetWebhook returns one webhook by its ID.
// (GET /webhooks/:webhook_id)
func (s *Server) GetWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	webhookID := c.Param("webhook_id")

	hook, err := s.Store.GetWebhook(ctx, webhookID)
	if err != nil {
		return storeErr(err)
	}

	return c.JSON(http.StatusOK, WebhookResponse{
		ID:         hook.ID,
		Path:       hook.Path,
		ActionID:   hook.ActionID,
		WorkflowID: hook.WorkflowID,
	})
}

// DeleteWebhook deletes a webhook by its ID.
// (DELETE /webhooks/:webhook_id)
func (s *Server) DeleteWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	webhookID := c.Param("webhook_id")

	if err := s.Store.DeleteWebhook(ctx, webhookID); err != nil {
		return storeErr(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListWebhooks returns all webhooks belonging to the given workflow.
// (GET /webhooks?workflow_id=)
func (s *Server) ListWebhooks(c echo.Context) error {
	ctx := c.Request().Context()

	workflowID := c.QueryParam("workflow_id")
	if workflowID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "workflow_id query parameter is required")
	}

	hooks, err := s.Store.ListWebhooks(ctx, workflowID)
	if err != nil {
		return storeErr(err)
	}

	responses := make([]WebhookResponse, 0, len(hooks))
	for _, hook := range hooks {
		responses = append(responses, WebhookResponse{
			ID:         hook.ID,
			Path:       hook.Path,
			ActionID:   hook.ActionID,
			WorkflowID: hook.WorkflowID,
		})
	}
	return c.JSON(http.StatusOK, responses)
}

// AuthenticateWebhook compares a caller-supplied secret against the
// stored one. On match it returns the owning action's lookup key; on
// mismatch it returns an unauthorized result carrying no key.
// (POST /authenticate/webhook/:webhook_id?secret=)
func (s *Server) AuthenticateWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	webhookID := c.Param("webhook_id")
	secret := c.QueryParam("secret")

	hook, err := s.Store.GetWebhook(ctx, webhookID)
	if err != nil {
		return storeErr(err)
	}

	action, err := s.Store.GetActionByID(ctx, hook.ActionID)
	if err != nil {
		return storeErr(err)
	}

	if subtle.ConstantTimeCompare([]byte(hook.Secret), []byte(secret)) != 1 {
		return c.JSON(http.StatusOK, AuthenticateWebhookResponse{
			Status: webhookUnauthorized,
		})
	}

	return c.JSON(http.StatusOK, AuthenticateWebhookResponse{
		Status:    webhookAuthorized,
		ActionKey: action.Key,
		WebhookID: hook.ID,
	})
}
