package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowsmith/pkg/models"
)

func newTestServer() (*echo.Echo, *memStore) {
	store := newMemStore()
	e := echo.New()
	NewServer(store).Register(e)
	return e, store
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "flowsmith", health.Service)
}

func TestCreateAndGetWorkflow(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodPost, "/workflows", `{"title":"T","description":"D"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created WorkflowMetadataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "D", created.Description)
	assert.Equal(t, models.WorkflowStatusOffline, created.Status)

	rec = doRequest(e, http.MethodGet, "/workflows/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// A fresh workflow has an empty action map and a null layout object.
	body := rec.Body.String()
	assert.Contains(t, body, `"actions":{}`)
	assert.Contains(t, body, `"object":null`)

	var wf WorkflowResponse
	require.NoError(t, json.Unmarshal([]byte(body), &wf))
	assert.Equal(t, "T", wf.Title)
	assert.Equal(t, "D", wf.Description)
	assert.Empty(t, wf.Actions)
	assert.Nil(t, wf.Object)
}

func TestListWorkflows(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodGet, "/workflows", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	doRequest(e, http.MethodPost, "/workflows", `{"title":"One","description":""}`)
	doRequest(e, http.MethodPost, "/workflows", `{"title":"Two","description":""}`)

	rec = doRequest(e, http.MethodGet, "/workflows", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []WorkflowMetadataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestUpdateWorkflowPartial(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodPost, "/workflows", `{"title":"T","description":"D"}`)
	var created WorkflowMetadataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Supplying only status must leave title and description untouched.
	rec = doRequest(e, http.MethodPost, "/workflows/"+created.ID, `{"status":"online"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/workflows/"+created.ID, "")
	var wf WorkflowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wf))
	assert.Equal(t, "T", wf.Title)
	assert.Equal(t, "D", wf.Description)
	assert.Equal(t, models.WorkflowStatusOnline, wf.Status)
}

func TestUpdateWorkflowObject(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodPost, "/workflows", `{"title":"T","description":"D"}`)
	var created WorkflowMetadataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	layout := `{"nodes":[{"id":"n1","position":{"x":0,"y":0}}],"edges":[]}`
	rec = doRequest(e, http.MethodPost, "/workflows/"+created.ID,
		`{"object":"`+strings.ReplaceAll(layout, `"`, `\"`)+`"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/workflows/"+created.ID, "")
	var wf WorkflowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wf))
	require.NotNil(t, wf.Object)
	assert.Contains(t, wf.Object, "nodes")
}

func TestUpdateWorkflowRejectsInvalidStatus(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodPost, "/workflows", `{"title":"T","description":"D"}`)
	var created WorkflowMetadataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(e, http.MethodPost, "/workflows/"+created.ID, `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetWorkflowNotFound(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodGet, "/workflows/no-such-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateWorkflowRequiresTitle(t *testing.T) {
	e, _ := newTestServer()

	rec := doRequest(e, http.MethodPost, "/workflows", `{"description":"D"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
