package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project-registry/logutils"
	"github.com/project-registry/middleware"
	"github.com/project-registry/repositories"
	"github.com/project-registry/services"
)

const serverErrorMessage = "Server error"

func errorBody(message string) gin.H {
	return gin.H{
		"status":  "error",
		"message": message,
	}
}

// classifyError maps a service error to its HTTP status and client message.
func classifyError(err error) (int, string) {
	var perr *services.PersistenceError
	switch {
	case errors.Is(err, services.ErrInvalidPayload),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidDateRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrEmailInUse):
		return http.StatusBadRequest, "Email already in use"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid email or password"
	case errors.Is(err, repositories.ErrProjectNotFound):
		return http.StatusNotFound, "Project not found"
	case errors.As(err, &perr):
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, serverErrorMessage
}

// respondError logs err with the request id and writes the error envelope.
func respondError(c *gin.Context, err error) {
	status, message := classifyError(err)
	writeError(c, status, message, err)
}

// respondServerError writes a 500 without exposing store detail.
func respondServerError(c *gin.Context, err error) {
	writeError(c, http.StatusInternalServerError, serverErrorMessage, err)
}

func writeError(c *gin.Context, status int, message string, err error) {
	entry := logutils.Log.WithFields(logutils.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"route":      c.FullPath(),
		"status":     status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	c.JSON(status, errorBody(message))
}

// invalidPayload wraps a binding failure as an invalid payload error.
func invalidPayload(err error) error {
	return fmt.Errorf("%w: %v", services.ErrInvalidPayload, err)
}
