package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/cache"
	"github.com/brunopesce23/EFI-IngSoft/internal/model"
	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
)

// FlightHandler serves the flight catalog: admin scheduling plus the public
// browse endpoints.
type FlightHandler struct {
	Flights      *repository.FlightRepo
	Aircraft     *repository.AircraftRepo
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
	Cache        *cache.FlightCache
}

func NewFlightHandler(flights *repository.FlightRepo, aircraft *repository.AircraftRepo, seats *repository.SeatRepo, reservations *repository.ReservationRepo, fc *cache.FlightCache) *FlightHandler {
	if flights == nil || aircraft == nil || seats == nil || reservations == nil {
		panic("nil repository passed to NewFlightHandler")
	}
	return &FlightHandler{Flights: flights, Aircraft: aircraft, Seats: seats, Reservations: reservations, Cache: fc}
}

type flightReq struct {
	FlightCode     string    `json:"flight_code"`
	AircraftID     uint64    `json:"aircraft_id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Departure      time.Time `json:"departure"`
	Arrival        time.Time `json:"arrival"`
	BasePriceCents int64     `json:"base_price_cents"`
}

// flightView decorates a flight with its derived duration.
type flightView struct {
	model.Flight
	DurationMinutes int64 `json:"duration_minutes"`
}

func viewOf(f model.Flight) flightView {
	return flightView{Flight: f, DurationMinutes: int64(f.Duration() / time.Minute)}
}

// Create handles POST /v1/flights (admin). The schedule must be coherent:
// known aircraft, arrival strictly after departure, non-negative price.
func (h *FlightHandler) Create(c echo.Context) error {
	var req flightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FlightCode = strings.ToUpper(strings.TrimSpace(req.FlightCode))
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	switch {
	case req.FlightCode == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_code is required"})
	case req.Origin == "" || req.Destination == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination are required"})
	case req.Departure.IsZero() || req.Arrival.IsZero():
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure and arrival are required"})
	case !req.Arrival.After(req.Departure):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival must be after departure"})
	case req.BasePriceCents < 0:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_price_cents must not be negative"})
	}

	ctx := c.Request().Context()
	if _, err := h.Aircraft.GetByID(ctx, req.AircraftID); err != nil {
		if err == repository.ErrAircraftNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	f := &model.Flight{
		AircraftID:     req.AircraftID,
		FlightCode:     req.FlightCode,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Departure:      req.Departure.UTC(),
		Arrival:        req.Arrival.UTC(),
		Status:         model.FlightScheduled,
		BasePriceCents: req.BasePriceCents,
	}
	if err := h.Flights.Create(ctx, f); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "flight_code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
	}
	_ = h.Cache.Invalidate(ctx)

	return c.JSON(http.StatusCreated, viewOf(*f))
}

// UpdateStatus handles PATCH /v1/flights/:id/status (admin).
func (h *FlightHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var body struct {
		Status model.FlightStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidFlightStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown flight status"})
	}

	ctx := c.Request().Context()
	if err := h.Flights.UpdateStatus(ctx, id, body.Status); err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	_ = h.Cache.Invalidate(ctx)

	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status})
}

// List handles GET /v1/flights (public). Without filters it serves the
// cached upcoming schedule; with filters it queries directly.
func (h *FlightHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.FlightFilter{
		Status:      model.FlightStatus(strings.TrimSpace(c.QueryParam("status"))),
		Origin:      strings.TrimSpace(c.QueryParam("origin")),
		Destination: strings.TrimSpace(c.QueryParam("destination")),
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from timestamp"})
		}
		filter.From = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to timestamp"})
		}
		filter.To = t
	}
	if filter.Status != "" && !model.ValidFlightStatus(filter.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown flight status"})
	}

	unfiltered := filter.Status == "" && filter.Origin == "" && filter.Destination == "" &&
		filter.From.IsZero() && filter.To.IsZero()

	if unfiltered {
		if cached, err := h.Cache.GetUpcoming(ctx); err == nil && cached != nil {
			return c.JSON(http.StatusOK, echo.Map{"items": toViews(cached), "cached": true})
		}
		flights, err := h.Flights.ListUpcoming(ctx, time.Now().UTC())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load flights failed"})
		}
		_ = h.Cache.SetUpcoming(ctx, flights)
		return c.JSON(http.StatusOK, echo.Map{"items": toViews(flights)})
	}

	flights, err := h.Flights.ListAll(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load flights failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toViews(flights)})
}

func toViews(flights []model.Flight) []flightView {
	views := make([]flightView, 0, len(flights))
	for _, f := range flights {
		views = append(views, viewOf(f))
	}
	return views
}

// Get handles GET /v1/flights/:id, returning the flight together with its
// seat availability summary.
func (h *FlightHandler) Get(c echo.Context) error {
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
	taken, err := h.Reservations.CountActiveByFlight(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"flight":          viewOf(*f),
		"aircraft":        a,
		"capacity":        a.Capacity,
		"seats_taken":     taken,
		"seats_available": int(a.Capacity) - taken,
	})
}

// seatView is a seat with its occupancy resolved for one flight.
type seatView struct {
	model.Seat
	Available bool `json:"available"`
}

// SeatMap handles GET /v1/flights/:id/seats. Seat rows come from the
// aircraft; occupancy is per flight, derived from active reservations.
// A seat is available when it is free on this flight and not blocked on
// the aircraft itself.
func (h *FlightHandler) SeatMap(c echo.Context) error {
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
	seats, err := h.Seats.ListByAircraft(ctx, f.AircraftID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	reserved, err := h.Reservations.ReservedSeatIDs(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}

	views := make([]seatView, 0, len(seats))
	available := 0
	for _, s := range seats {
		free := !reserved[s.ID] && s.Status != model.SeatMaintenance
		if free {
			available++
		}
		views = append(views, seatView{Seat: s, Available: free})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"flight_id": id,
		"seats":     views,
		"available": available,
	})
}

// Availability handles GET /v1/flights/:id/availability, the lightweight
// counter used by booking clients to poll a flight.
func (h *FlightHandler) Availability(c echo.Context) error {
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
	taken, err := h.Reservations.CountActiveByFlight(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count reservations failed"})
	}
	available := int(a.Capacity) - taken
	return c.JSON(http.StatusOK, echo.Map{
		"flight_id": id,
		"capacity":  a.Capacity,
		"taken":     taken,
		"available": available,
		"full":      available <= 0,
		"bookable":  f.Bookable(),
	})
}
