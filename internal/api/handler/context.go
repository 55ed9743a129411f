package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// ctxCaller extracts the authenticated caller injected by the Auth
// middleware. Presence of both claims proves the middleware ran; without them
// the request never carried a usable session.
func ctxCaller(c echo.Context) (authz.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return authz.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return authz.Caller{ID: userID, Role: domain.Role(role)}, nil
}

// respondError renders a service error as the standard envelope with its
// taxonomy status: 400 for credential, conflict and validation failures, 403
// for denials, 404 for missing records, 500 otherwise.
func respondError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrRestrictedTaskFields):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
