// Package models defines the domain entities for the workflow service.
package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// WorkflowStatus represents the lifecycle status of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusOnline  WorkflowStatus = "online"
	WorkflowStatusOffline WorkflowStatus = "offline"
)

// Valid reports whether the status is one of the allowed values.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case WorkflowStatusOnline, WorkflowStatusOffline:
		return true
	}
	return false
}

// ActionStatus represents the lifecycle status of an action.
type ActionStatus string

const (
	ActionStatusOnline  ActionStatus = "online"
	ActionStatusOffline ActionStatus = "offline"
)

// Valid reports whether the status is one of the allowed values.
func (s ActionStatus) Valid() bool {
	switch s {
	case ActionStatusOnline, ActionStatusOffline:
		return true
	}
	return false
}

// ActionType represents the kind of step an action performs.
type ActionType string

const (
	ActionTypeWebhook       ActionType = "webhook"
	ActionTypeHTTPRequest   ActionType = "http_request"
	ActionTypeDataTransform ActionType = "data_transform"
	ActionTypeCondition     ActionType = "condition"
	ActionTypeLLM           ActionType = "llm"
	ActionTypeSendEmail     ActionType = "send_email"
)

// Valid reports whether the type is one of the allowed values.
func (t ActionType) Valid() bool {
	switch t {
	case ActionTypeWebhook, ActionTypeHTTPRequest, ActionTypeDataTransform,
		ActionTypeCondition, ActionTypeLLM, ActionTypeSendEmail:
		return true
	}
	return false
}

// RunStatus represents the status of a workflow run.
type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusRunning  RunStatus = "running"
	RunStatusSuccess  RunStatus = "success"
	RunStatusFailure  RunStatus = "failure"
	RunStatusCanceled RunStatus = "canceled"
)

// Valid reports whether the status is one of the allowed values.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusPending, RunStatusRunning, RunStatusSuccess,
		RunStatusFailure, RunStatusCanceled:
		return true
	}
	return false
}

// Workflow is a named container of actions with an editor layout and
// lifecycle status. Object holds the serialized editor layout (node
// positions and edges) as an opaque JSON document.
type Workflow struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      WorkflowStatus `json:"status" db:"status"`
	Object      *string        `json:"object,omitempty" db:"object"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Action is a typed step belonging to a workflow. Key is the stable
// lookup key derived from the action's type and identity; Inputs holds
// the serialized input payload as an opaque JSON document.
type Action struct {
	ID          string       `json:"id" db:"id"`
	WorkflowID  string       `json:"workflow_id" db:"workflow_id"`
	Type        ActionType   `json:"type" db:"type"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Status      ActionStatus `json:"status" db:"status"`
	Key         string       `json:"key" db:"action_key"`
	Inputs      *string      `json:"inputs,omitempty" db:"inputs"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// WorkflowRun records one execution attempt of a workflow.
type WorkflowRun struct {
	ID         string    `json:"id" db:"id"`
	WorkflowID string    `json:"workflow_id" db:"workflow_id"`
	Status     RunStatus `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Webhook is a secret-guarded external trigger path bound to one action.
type Webhook struct {
	ID         string    `json:"id" db:"id"`
	Path       string    `json:"path" db:"path"`
	ActionID   string    `json:"action_id" db:"action_id"`
	WorkflowID string    `json:"workflow_id" db:"workflow_id"`
	Secret     string    `json:"-" db:"secret"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ActionKey derives the stable lookup key for an action from its type
// and identity. The key does not change when the action is retitled.
func ActionKey(typ ActionType, id string) string {
	return fmt.Sprintf("%s.%s", typ, id)
}

// NewWebhookSecret generates a webhook shared secret: 32 random bytes,
// hex encoded.
func NewWebhookSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
