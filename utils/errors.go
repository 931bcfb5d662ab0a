package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// Reason codes returned to clients so they can render a specific message
const (
	ReasonValidation      = "validation"
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
	ReasonNotFound        = "not_found"
	ReasonConflict        = "conflict"
	ReasonStorage         = "storage"
	ReasonInternal        = "internal"
)

// AppError represents a custom application error
type AppError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  ReasonValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonUnauthenticated,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Reason:  ReasonForbidden,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Reason:  ReasonConflict,
		Message: message,
	}
}

// NewStorageError wraps a persistence failure. The message names the
// operation only; driver details stay in Err for logs.
func NewStorageError(op string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Reason:  ReasonStorage,
		Message: fmt.Sprintf("storage failure: %s", op),
		Err:     err,
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Reason:  ReasonInternal,
		Message: message,
	}
}

// NewBadRequestError reports a body that could not be decoded or bound
func NewBadRequestError(message string) *AppError {
	return NewValidationError(ErrInvalidRequest + ": " + message)
}

// IsReason reports whether err is an AppError with the given reason
func IsReason(err error, reason string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Reason == reason
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			noticeError(c, err)
		}
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "reason": appErr.Reason})
		return
	}

	// Default to internal server error
	noticeError(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "reason": ReasonInternal})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// HandleCreated sends a 201 response
func HandleCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func noticeError(c *gin.Context, err error) {
	if txn := nrgin.Transaction(c); txn != nil {
		txn.NoticeError(err)
	}
}
