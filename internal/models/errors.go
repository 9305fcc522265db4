package models

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error      string   `json:"error"`
	Code       string   `json:"code,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Details    string   `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code       string
	Message    string
	Violations []string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that the referenced subredit or post does not
// exist. The message is deliberately generic: callers must not be able to
// tell which level of the hierarchy was missing.
func NewNotFoundError() *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: "not found",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewConstraintError wraps the full list of violated input constraints so the
// caller can correct and resubmit.
func NewConstraintError(violations []string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    strings.Join(violations, "; "),
		Violations: violations,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error:      appErr.Message,
			Code:       appErr.Code,
			Violations: appErr.Violations,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
