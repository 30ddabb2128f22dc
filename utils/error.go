package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes shared by every service. A zero-match conditional update is
// always surfaced as CONFLICT or NOT_FOUND, never swallowed.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeForbidden    = "FORBIDDEN"
	CodeInvalidInput = "INVALID_INPUT"
)

// ServiceError is a typed use-case failure carried from the services to the
// HTTP boundary, where Code determines the response status. Reason is an
// optional machine-readable discriminator (e.g. "FEEDBACK_ALREADY_EXISTS").
type ServiceError struct {
	Code    string
	Reason  string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Reason != "" {
		return e.Code + " (" + e.Reason + "): " + e.Message
	}
	return e.Code + ": " + e.Message
}

func NotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

func ConflictError(msg string) error {
	return &ServiceError{Code: CodeConflict, Message: msg}
}

func ConflictErrorWithReason(reason, msg string) error {
	return &ServiceError{Code: CodeConflict, Reason: reason, Message: msg}
}

func ForbiddenError(msg string) error {
	return &ServiceError{Code: CodeForbidden, Message: msg}
}

func InvalidInputError(msg string) error {
	return &ServiceError{Code: CodeInvalidInput, Message: msg}
}

// ErrorCode extracts the service error code, or "" for untyped errors.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RespondError translates a service error into the matching HTTP response.
// Untyped errors become a 500 with the detail logged but not leaked.
func RespondError(c *gin.Context, err error) {
	var se *ServiceError
	if errors.As(err, &se) {
		status := http.StatusInternalServerError
		switch se.Code {
		case CodeNotFound:
			status = http.StatusNotFound
		case CodeConflict:
			status = http.StatusConflict
		case CodeForbidden:
			status = http.StatusForbidden
		case CodeInvalidInput:
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Message: se.Message, Reason: se.Reason})
		return
	}

	GetLogger().Error("unexpected service failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal Server Error",
		Details: "An unexpected error occurred. Please try again later.",
	})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
