package router

import (
	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/handler"
	"github.com/brunopesce23/EFI-IngSoft/internal/middleware"
)

// RegisterBooking registers the booking endpoints shared by clients and
// admins: passenger registration, reservations, cancellation and ticket
// issuance. Ownership checks for client accounts happen in the handlers.
func RegisterBooking(e *echo.Echo, ph *handler.PassengerHandler, rh *handler.ReservationHandler, th *handler.TicketHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CLIENT"),
	)

	g.POST("/passengers", ph.Create)

	g.POST("/reservations", rh.Create)
	g.GET("/reservations/:id", rh.Get)
	g.DELETE("/reservations/:id", rh.Cancel)
	g.GET("/my-reservations", rh.ListMine)

	g.POST("/reservations/:id/ticket", th.Issue)
	g.GET("/tickets/:id", th.Get)
}
