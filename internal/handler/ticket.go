package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
)

// TicketHandler issues boarding tickets for active reservations.
type TicketHandler struct {
	Tickets      *repository.TicketRepo
	Reservations *repository.ReservationRepo
}

func NewTicketHandler(tickets *repository.TicketRepo, reservations *repository.ReservationRepo) *TicketHandler {
	if tickets == nil || reservations == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Reservations: reservations}
}

// Issue handles POST /v1/reservations/:id/ticket. Issuance is idempotent:
// asking again returns the existing ticket with 200 instead of minting a
// second barcode. Only active reservations can be ticketed.
func (h *TicketHandler) Issue(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !res.Status.Active() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
	}

	if existing, err := h.Tickets.GetByReservation(ctx, id); err == nil {
		return c.JSON(http.StatusOK, existing)
	} else if err != repository.ErrTicketNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load ticket failed"})
	}

	t := &model.Ticket{
		ReservationID: id,
		Barcode:       model.NewBarcode(id, time.Now().UTC()),
		Status:        model.TicketIssued,
	}
	if err := h.Tickets.Create(ctx, t); err != nil {
		if err == repository.ErrDuplicate {
			// Lost the race to a concurrent issue; return the winner.
			existing, err := h.Tickets.GetByReservation(ctx, id)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load ticket failed"})
			}
			return c.JSON(http.StatusOK, existing)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue ticket failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// Get handles GET /v1/tickets/:id.
func (h *TicketHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTicketNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, t)
}
