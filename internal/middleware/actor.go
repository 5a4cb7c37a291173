package middleware

import (
	"net/http"

	"github.com/eventlify/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

// Identity headers set by the upstream gateway after authentication. The
// engine trusts them as already-verified input.
const (
	HeaderUserID      = "X-User-ID"
	HeaderUserRole    = "X-User-Role"
	HeaderOrganizerID = "X-Organizer-ID"

	actorContextKey = "actor"
)

// RequireActor rejects requests without a resolvable identity and stashes
// the actor on the echo context for handlers.
func RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(HeaderUserID)
		role := c.Request().Header.Get(HeaderUserRole)
		if id == "" || role == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing identity headers")
		}

		c.Set(actorContextKey, service.Actor{
			ID:          id,
			Role:        service.Role(role),
			OrganizerID: c.Request().Header.Get(HeaderOrganizerID),
		})
		return next(c)
	}
}

func ActorFrom(c echo.Context) service.Actor {
	actor, _ := c.Get(actorContextKey).(service.Actor)
	return actor
}
