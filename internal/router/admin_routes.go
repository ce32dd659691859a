package router

import (
	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/handler"
	"github.com/brunopesce23/EFI-IngSoft/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1: fleet and
// flight management, the passenger directory, reservation lifecycle
// overrides and reporting.
func RegisterAdmin(e *echo.Echo, ah *handler.AircraftHandler, fh *handler.FlightHandler, ph *handler.PassengerHandler, rh *handler.ReservationHandler, rep *handler.ReportHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Fleet ----
	g.POST("/aircraft", ah.Create)
	g.GET("/aircraft", ah.List)
	g.GET("/aircraft/:id", ah.Get)
	g.PUT("/aircraft/:id", ah.Update)
	g.PATCH("/aircraft/:id", ah.Update)

	// ---- Flights ----
	g.POST("/flights", fh.Create)
	g.PATCH("/flights/:id/status", fh.UpdateStatus)

	// ---- Passengers ----
	g.GET("/passengers", ph.List)
	g.GET("/passengers/:id", ph.Get)

	// ---- Reservations ----
	g.PATCH("/reservations/:id/status", rh.UpdateStatus)

	// ---- Reports ----
	g.GET("/reports/summary", rep.Summary)
	g.GET("/reports/flights/:id", rep.Flight)
}
