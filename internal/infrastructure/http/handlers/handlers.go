// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/macromind/v1/internal/infrastructure/http/middleware"
	"github.com/macromind/v1/pkg/errors"
)

// APIResponse represents a standard API response envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// respondBindingError turns gin's binding failures into a validation
// error with one readable line per offending field.
func respondBindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !goerrors.As(err, &fieldErrs) {
		respondError(c, errors.NewValidationError(err.Error()))
		return
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	respondError(c, errors.NewValidationError(strings.Join(details, "; ")))
}

// respondError maps application errors to HTTP status codes. Anything
// that is not an AppError becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var appErr *errors.AppError
	if e, ok := err.(*errors.AppError); ok {
		appErr = e
	} else {
		appErr = errors.NewInternalError("An unexpected error occurred")
	}

	c.JSON(appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
