package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
)

// ReportHandler serves the admin reporting endpoints.
type ReportHandler struct {
	Flights      *repository.FlightRepo
	Passengers   *repository.PassengerRepo
	Reservations *repository.ReservationRepo
	Aircraft     *repository.AircraftRepo
}

func NewReportHandler(flights *repository.FlightRepo, passengers *repository.PassengerRepo, reservations *repository.ReservationRepo, aircraft *repository.AircraftRepo) *ReportHandler {
	if flights == nil || passengers == nil || reservations == nil || aircraft == nil {
		panic("nil repository passed to NewReportHandler")
	}
	return &ReportHandler{Flights: flights, Passengers: passengers, Reservations: reservations, Aircraft: aircraft}
}

// Summary handles GET /v1/reports/summary: fleet-wide totals, per-status
// breakdowns, booked revenue and the flights departing in the next week.
func (h *ReportHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now().UTC()

	flightCount, err := h.Flights.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count flights failed"})
	}
	passengerCount, err := h.Passengers.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count passengers failed"})
	}
	reservationCount, err := h.Reservations.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count reservations failed"})
	}
	flightsByStatus, err := h.Flights.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "group flights failed"})
	}
	reservationsByStatus, err := h.Reservations.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "group reservations failed"})
	}
	revenue, err := h.Reservations.ActiveRevenueCents(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sum revenue failed"})
	}
	upcoming, err := h.Flights.ListAll(ctx, repository.FlightFilter{
		From: now,
		To:   now.Add(7 * 24 * time.Hour),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load upcoming flights failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"generated_at":           now,
		"flights_total":          flightCount,
		"passengers_total":       passengerCount,
		"reservations_total":     reservationCount,
		"flights_by_status":      flightsByStatus,
		"reservations_by_status": reservationsByStatus,
		"active_revenue_cents":   revenue,
		"departing_next_7_days":  toViews(upcoming),
	})
}

// Flight handles GET /v1/reports/flights/:id: occupancy, revenue and the
// passenger manifest ordered by seat.
func (h *ReportHandler) Flight(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ctx := c.Request().Context()

	f, err := h.Flights.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	a, err := h.Aircraft.GetByID(ctx, f.AircraftID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load aircraft failed"})
	}
	manifest, err := h.Reservations.ManifestByFlight(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load manifest failed"})
	}

	var revenue int64
	for _, m := range manifest {
		revenue += m.PriceCents
	}
	occupancy := 0.0
	if a.Capacity > 0 {
		occupancy = float64(len(manifest)) / float64(a.Capacity)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"flight":          viewOf(*f),
		"aircraft":        a,
		"capacity":        a.Capacity,
		"seats_taken":     len(manifest),
		"seats_available": int(a.Capacity) - len(manifest),
		"occupancy":       occupancy,
		"revenue_cents":   revenue,
		"manifest":        manifest,
	})
}
