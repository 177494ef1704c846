package api

import (
	"github.com/labstack/echo/v4"
)

// Register mounts all API routes on the given Echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/", s.Health)

	e.GET("/workflows", s.ListWorkflows)
	e.POST("/workflows", s.CreateWorkflow)
	e.GET("/workflows/:workflow_id", s.GetWorkflow)
	e.POST("/workflows/:workflow_id", s.UpdateWorkflow)

	e.POST("/workflows/:workflow_id/runs", s.CreateWorkflowRun)
	e.GET("/workflows/:workflow_id/runs", s.ListWorkflowRuns)
	e.GET("/workflows/:workflow_id/runs/:run_id", s.GetWorkflowRun)
	e.POST("/workflows/:workflow_id/runs/:run_id", s.UpdateWorkflowRun)

	e.GET("/actions", s.ListActions)
	e.POST("/actions", s.CreateAction)
	e.GET("/actions/:action_id", s.GetAction)
	e.POST("/actions/:action_id", s.UpdateAction)
	e.DELETE("/actions/:action_id", s.DeleteAction)

	e.PUT("/webhooks", s.CreateWebhook)
	e.GET("/webhooks", s.ListWebhooks)
	e.GET("/webhooks/:webhook_id", s.GetWebhook)
	e.DELETE("/webhooks/:webhook_id", s.DeleteWebhook)

	e.POST("/authenticate/webhook/:webhook_id", s.AuthenticateWebhook)
}
