// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/handler"
	"github.com/brunopesce23/EFI-IngSoft/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated operations
// live under /v1/auth; the protected session endpoints are mounted under
// /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout) // refresh token in body, no JWT required

	auth := e.Group("/v1/auth",
		middleware.JWTAuth(jwtSecret),
	)
	auth.POST("/logout-all", a.LogoutAll)

	me := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
	)
	me.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: the flight
// catalog and per-flight seat availability, readable by guests before they
// create an account.
func RegisterPublic(e *echo.Echo, f *handler.FlightHandler) {
	e.GET("/v1/flights", f.List)
	e.GET("/v1/flights/:id", f.Get)
	e.GET("/v1/flights/:id/seats", f.SeatMap)
	e.GET("/v1/flights/:id/availability", f.Availability)
}
