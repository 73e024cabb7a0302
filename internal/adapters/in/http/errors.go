package http

import (
	"net/http"

	"courierbot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, ErrorResponse{
		Code:    code,
		Kind:    kind,
		Message: message,
	})
}

// writeError maps a core error to a status by its kind.
func writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	return errorResponse(c, statusOf(kind), kind.String(), err.Error())
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindUnauthorized:
		return http.StatusForbidden
	case errs.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case errs.KindPreconditionFailed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c echo.Context, err error) error {
	return errorResponse(c, http.StatusBadRequest, "bad_request", err.Error())
}
