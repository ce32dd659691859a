package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
// confirmed and paid are the "active" states: they occupy a seat and count
// toward flight occupancy.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationPaid      ReservationStatus = "paid"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Active reports whether the status occupies a seat.
func (s ReservationStatus) Active() bool {
	return s == ReservationConfirmed || s == ReservationPaid
}

// ValidReservationStatus reports whether s is a known lifecycle state.
func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationPaid,
		ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// reservationTransitions is the allowed lifecycle graph.  Cancelled and
// completed are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationPaid, ReservationCancelled},
	ReservationConfirmed: {ReservationPaid, ReservationCancelled, ReservationCompleted},
	ReservationPaid:      {ReservationCompleted, ReservationCancelled},
	ReservationCancelled: {},
	ReservationCompleted: {},
}

// CanTransition reports whether a reservation may move from one status to
// another.  A no-op transition (from == to) is always allowed so that
// repeated cancellations stay idempotent.
func CanTransition(from, to ReservationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SeatStatusAfter maps a reservation status to the seat status it implies.
// Active reservations mark the seat reserved; a cancellation frees it.  For
// every other status the second return value is false and the seat is left
// untouched.  Only the booking, status update and cancellation paths call
// it; seat status is never mutated as a side effect of a generic save.
func SeatStatusAfter(s ReservationStatus) (SeatStatus, bool) {
	switch {
	case s.Active():
		return SeatReserved, true
	case s == ReservationCancelled:
		return SeatAvailable, true
	}
	return "", false
}

// Reservation binds one flight, one seat and one passenger with a lifecycle
// status.  At most one active reservation may exist per (flight, seat); the
// database enforces this with a unique index over an active-only generated
// column, so a check-then-insert race loses cleanly at commit time.
type Reservation struct {
	ID              uint64            `json:"id"`
	FlightID        uint64            `json:"flight_id"`
	PassengerID     uint64            `json:"passenger_id"`
	SeatID          uint64            `json:"seat_id"`
	Status          ReservationStatus `json:"status"`
	PriceCents      int64             `json:"price_cents"`
	ReservationCode string            `json:"reservation_code"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewReservationCode returns a short random uppercase booking code, the
// first eight hex characters of a UUID.
func NewReservationCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
