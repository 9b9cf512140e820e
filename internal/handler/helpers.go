package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"financeqa/internal/auth"
	"financeqa/internal/errors"
)

// ClaimsContextKey is where the JWT middleware stores the parsed claims.
const ClaimsContextKey = "user"

// claimsFrom returns the verified access token claims, or nil.
func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims
}

// identityFrom returns the caller identity; it is empty when the request
// carried no verified token, which the services reject.
func identityFrom(c echo.Context) auth.Identity {
	if claims := claimsFrom(c); claims != nil {
		return claims.Identity()
	}
	return auth.Identity{}
}

// pathID parses an id path parameter. A malformed id yields uuid.Nil, which
// resolves to nothing and ends up as a not-found error in the services.
func pathID(c echo.Context, name string) uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// respondError maps a service error to an echo HTTP error.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		log.Printf("request %s: %v", c.Response().Header().Get(echo.HeaderXRequestID), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
