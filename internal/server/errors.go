package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/estatehub/internal/authorization"
	obslogger "github.com/smallbiznis/estatehub/internal/observability/logger"
	"github.com/smallbiznis/estatehub/internal/scope"
	"github.com/smallbiznis/estatehub/pkg/money"
	"github.com/smallbiznis/estatehub/pkg/repository"
	"go.uber.org/zap"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not_found")
)

// ErrorHandlingMiddleware renders the last handler error. Server-side failures
// are logged; client errors are left to the request log.
func ErrorHandlingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if status >= http.StatusInternalServerError && log != nil {
			obslogger.WithContext(c.Request.Context(), log).Error("request failed",
				zap.String("route", c.FullPath()),
				zap.Error(lastErr.Err),
			)
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func invalidIDError(field string) error {
	return newValidationError(field, "invalid_"+field, "invalid "+field)
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// notFoundPayload is shared by absent records and records of another estate so
// the two responses are byte-identical.
var notFoundPayload = errorPayload{
	Type:    "not_found",
	Message: "not found",
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var repoErr *repository.ValidationError
	if errors.As(err, &repoErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   repoErr.Field,
					Code:    repoErr.Code,
					Message: repoErr.Error(),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, scope.ErrMissingAffiliation):
		return http.StatusForbidden, errorPayload{
			Type:    "missing_affiliation",
			Message: "estate manager is not bound to an estate",
		}
	case errors.Is(err, authorization.ErrInsufficientScope),
		errors.Is(err, scope.ErrUnknownRole):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, authorization.ErrCrossTenantAccess):
		return http.StatusNotFound, notFoundPayload
	case errors.Is(err, money.ErrOverflow):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "amount_overflow",
			Message: "report totals exceed the supported amount range",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// classifyErrorForLog returns the type and code logged for a failed request.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	switch {
	case status >= http.StatusInternalServerError:
		return "server", code
	default:
		return "client", code
	}
}
