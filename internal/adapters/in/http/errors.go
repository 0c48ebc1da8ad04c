package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rejectedID struct {
	ID json.RawMessage `json:"id"`
}

type validationErrorResponse struct {
	ValidationError map[string][]rejectedID `json:"validation_error"`
}

// writeError renders a use case error. Internal failures are logged and
// answered with a generic message.
func (s *Server) writeError(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
		)
		return c.JSON(status, errorResponse{
			Code:    status,
			Message: http.StatusText(status),
		})
	}

	return c.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// writeRejectedBatch echoes the ids of the rejected entries exactly as the
// client sent them.
func (s *Server) writeRejectedBatch(c echo.Context, rejected *errs.RejectedBatchError, rawIDs []json.RawMessage) error {
	ids := make([]rejectedID, 0, len(rejected.Positions))
	for _, position := range rejected.Positions {
		var raw json.RawMessage
		if position >= 0 && position < len(rawIDs) {
			raw = rawIDs[position]
		}
		if raw == nil {
			raw = json.RawMessage("null")
		}
		ids = append(ids, rejectedID{ID: raw})
	}

	return c.JSON(http.StatusBadRequest, validationErrorResponse{
		ValidationError: map[string][]rejectedID{rejected.Entity: ids},
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// httpErrorHandler renders framework errors (unknown route, rate limit,
// recovered panic) in the same shape as use case errors.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errorResponse{Code: status, Message: message})
}
