// Package api contains the HTTP handlers for the workflow service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"flowsmith/internal/repository"
)

// Server holds the dependencies for the API server.
type Server struct {
	Store repository.Store
}

// NewServer creates a new Server.
func NewServer(store repository.Store) *Server {
	return &Server{Store: store}
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// Health returns basic health status (always returns 200 OK).
// (GET /)
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "flowsmith",
		Version:   "1.0.0",
	})
}

// storeErr maps repository errors to HTTP errors. Lookups that match no
// row become a controlled 404 rather than an undifferentiated 500.
func storeErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// decodeJSONObject deserializes an optional opaque JSON column into a
// generic object. A nil column yields a nil map, which serializes as
// JSON null.
func decodeJSONObject(raw *string) (map[string]interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(*raw), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// validJSON reports whether the given payload parses as JSON.
func validJSON(raw string) bool {
	return json.Valid([]byte(raw))
}
