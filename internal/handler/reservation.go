package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
	queue_publisher "github.com/brunopesce23/EFI-IngSoft/internal/service"

	q "github.com/brunopesce23/EFI-IngSoft/internal/queue"
)

// ReservationHandler implements booking, lifecycle transitions and
// cancellation. Every write that touches both the reservation and its seat
// runs inside one transaction; the unique index on active (flight, seat)
// pairs backs up the in-transaction checks under concurrency.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Flights      *repository.FlightRepo
	Seats        *repository.SeatRepo
	Passengers   *repository.PassengerRepo
	Users        *repository.UserRepo
}

func NewReservationHandler(reservations *repository.ReservationRepo, flights *repository.FlightRepo, seats *repository.SeatRepo, passengers *repository.PassengerRepo, users *repository.UserRepo) *ReservationHandler {
	if reservations == nil || flights == nil || seats == nil || passengers == nil || users == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations: reservations,
		Flights:      flights,
		Seats:        seats,
		Passengers:   passengers,
		Users:        users,
	}
}

type reservationReq struct {
	FlightID    uint64 `json:"flight_id"`
	PassengerID uint64 `json:"passenger_id"`
	SeatID      uint64 `json:"seat_id"`
	PriceCents  int64  `json:"price_cents"` // 0 means use the flight base price
}

// Create handles POST /v1/reservations. The booking is accepted only when
// the flight is open, the seat belongs to the flight's aircraft, the seat
// is free on that flight and the passenger holds no other active
// reservation on it. Any losing race on the seat surfaces as 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FlightID == 0 || req.PassengerID == 0 || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id, passenger_id and seat_id are required"})
	}
	if req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must not be negative"})
	}

	ctx := c.Request().Context()
	flight, err := h.Flights.GetByID(ctx, req.FlightID)
	if err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !flight.Bookable() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "flight is not open for booking"})
	}
	passenger, err := h.Passengers.GetByID(ctx, req.PassengerID)
	if err != nil {
		if err == repository.ErrPassengerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "passenger not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seat, err := h.Seats.GetByIDTx(ctx, tx, req.SeatID)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seat failed"})
	}
	if seat.AircraftID != flight.AircraftID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat does not belong to the flight's aircraft"})
	}
	if seat.Status == model.SeatMaintenance {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is blocked for maintenance"})
	}
	taken, err := h.Reservations.HasActiveForSeatTx(ctx, tx, flight.ID, seat.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check seat failed"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already reserved for this flight"})
	}
	booked, err := h.Reservations.HasActiveForPassengerTx(ctx, tx, flight.ID, passenger.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check passenger failed"})
	}
	if booked {
		return c.JSON(http.StatusConflict, echo.Map{"error": "passenger already has a reservation on this flight"})
	}

	price := req.PriceCents
	if price == 0 {
		price = flight.BasePriceCents
	}
	res := &model.Reservation{
		FlightID:        flight.ID,
		PassengerID:     passenger.ID,
		SeatID:          seat.ID,
		Status:          model.ReservationConfirmed,
		PriceCents:      price,
		ReservationCode: model.NewReservationCode(),
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already reserved for this flight"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if st, ok := model.SeatStatusAfter(res.Status); ok {
		if err := h.Seats.SetStatusTx(ctx, tx, seat.ID, st); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Fire and forget; booking is already durable.
	event := q.ReservationConfirmedEvent{
		ReservationID:   res.ID,
		ReservationCode: res.ReservationCode,
		FlightID:        flight.ID,
		FlightCode:      flight.FlightCode,
		Origin:          flight.Origin,
		Destination:     flight.Destination,
		Departure:       flight.Departure.Format(time.RFC3339),
		SeatNumber:      seat.SeatNumber,
		PassengerID:     passenger.ID,
		PassengerName:   passenger.FullName,
		PriceCents:      res.PriceCents,
		ConfirmedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationConfirmed(pubCtx, event)
	}()

	return c.JSON(http.StatusCreated, res)
}

// Get handles GET /v1/reservations/:id. Clients may only read their own
// reservations; admins may read any.
func (h *ReservationHandler) Get(c echo.Context) error {
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
	if !isAdmin(c) {
		owns, err := h.ownsReservation(c, res)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !owns {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
	return c.JSON(http.StatusOK, res)
}

// UpdateStatus handles PATCH /v1/reservations/:id/status (admin). Illegal
// lifecycle moves are rejected with 409; the seat follows the reservation
// in the same transaction.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Status model.ReservationStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidReservationStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown reservation status"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.Status == body.Status {
		committed = true
		_ = tx.Commit()
		return c.JSON(http.StatusOK, res)
	}
	if !model.CanTransition(res.Status, body.Status) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "illegal transition",
			"from":  res.Status,
			"to":    body.Status,
		})
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, id, body.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if st, ok := model.SeatStatusAfter(body.Status); ok {
		if err := h.Seats.SetStatusTx(ctx, tx, res.SeatID, st); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	res.Status = body.Status
	return c.JSON(http.StatusOK, res)
}

// Cancel handles DELETE /v1/reservations/:id. Cancelling an already
// cancelled reservation is a no-op; a completed one cannot be cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !isAdmin(c) {
		owns, err := h.ownsReservation(c, res)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !owns {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}
	if res.Status == model.ReservationCancelled {
		committed = true
		_ = tx.Commit()
		return c.NoContent(http.StatusNoContent)
	}
	if !model.CanTransition(res.Status, model.ReservationCancelled) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation cannot be cancelled"})
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, id, model.ReservationCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if st, ok := model.SeatStatusAfter(model.ReservationCancelled); ok {
		if err := h.Seats.SetStatusTx(ctx, tx, res.SeatID, st); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// ListMine handles GET /v1/my-reservations. The passenger record is linked
// to the account by email; users without one simply see an empty list.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	p, err := h.Passengers.GetByEmail(ctx, u.Email)
	if err != nil {
		if err == repository.ErrPassengerNotFound {
			return c.JSON(http.StatusOK, echo.Map{"items": []repository.ReservationDetail{}})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load passenger failed"})
	}
	items, err := h.Reservations.ListByPassenger(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ownsReservation reports whether the requesting account's passenger record
// is the one on the reservation.
func (h *ReservationHandler) ownsReservation(c echo.Context, res *model.Reservation) (bool, error) {
	userID, err := getUserID(c)
	if err != nil {
		return false, nil
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	p, err := h.Passengers.GetByEmail(ctx, u.Email)
	if err != nil {
		if err == repository.ErrPassengerNotFound {
			return false, nil
		}
		return false, err
	}
	return p.ID == res.PassengerID, nil
}
