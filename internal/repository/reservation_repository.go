package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for reservations.  Writes that
// affect seat occupancy always run inside a caller-owned transaction so the
// reservation row and the seat status move together.
type ReservationRepo struct {
	db *sql.DB
}

// reservationActiveSeatKey is the unique index over (flight_id,
// active_seat_id) that admits at most one active reservation per seat.
const reservationActiveSeatKey = "uq_reservations_active_seat"

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning reservations and seats.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a reservation within an existing transaction and reads
// the row back to populate ID and CreatedAt.  The active-seat unique index
// is the authoritative guard: when another active reservation already holds
// the (flight, seat) pair, even one committed by a concurrent caller after
// our availability check, the insert fails and ErrConflict is
// returned.  The caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (flight_id, passenger_id, seat_id, status, price_cents, reservation_code)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.FlightID, res.PassengerID, res.SeatID,
		res.Status, res.PriceCents, res.ReservationCode)
	if err != nil {
		if isDuplicateKey(err, reservationActiveSeatKey) {
			return ErrConflict
		}
		if isDuplicateKey(err, "uq_reservations_code") {
			return ErrDuplicate
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// HasActiveForSeatTx reports whether an active reservation exists for the
// (flight, seat) pair.  It runs inside the booking transaction so the
// pre-check and the insert see the same snapshot; the unique index still
// backs it up under races.
func (r *ReservationRepo) HasActiveForSeatTx(ctx context.Context, tx *sql.Tx, flightID, seatID uint64) (bool, error) {
	const q = `SELECT EXISTS(
	               SELECT 1 FROM reservations
	               WHERE flight_id = ? AND seat_id = ? AND status IN ('confirmed','paid'))`
	var exists bool
	err := tx.QueryRowContext(ctx, q, flightID, seatID).Scan(&exists)
	return exists, err
}

// HasActiveForPassengerTx reports whether the passenger already holds an
// active reservation on the flight.  This stays an application-level check
// inside the booking transaction rather than a storage constraint.
func (r *ReservationRepo) HasActiveForPassengerTx(ctx context.Context, tx *sql.Tx, flightID, passengerID uint64) (bool, error) {
	const q = `SELECT EXISTS(
	               SELECT 1 FROM reservations
	               WHERE flight_id = ? AND passenger_id = ? AND status IN ('confirmed','paid'))`
	var exists bool
	err := tx.QueryRowContext(ctx, q, flightID, passengerID).Scan(&exists)
	return exists, err
}

const reservationColumns = `id, flight_id, passenger_id, seat_id, status, price_cents, reservation_code, created_at`

func scanReservation(row interface{ Scan(...interface{}) error }, res *model.Reservation) error {
	return row.Scan(&res.ID, &res.FlightID, &res.PassengerID, &res.SeatID,
		&res.Status, &res.PriceCents, &res.ReservationCode, &res.CreatedAt)
}

// GetByID retrieves a reservation, returning ErrReservationNotFound when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	var res model.Reservation
	err := scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id), &res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// GetByIDTx retrieves a reservation inside a transaction with a row lock,
// used by cancellation so a concurrent transition serializes.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	var res model.Reservation
	err := scanReservation(tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id), &res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateStatusTx sets the reservation status within a transaction.  Callers
// validate the transition with model.CanTransition first; the active-seat
// unique index still backstops any transition that would activate a seat
// another reservation already holds, surfacing as ErrConflict.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.ReservationStatus) error {
	_, err := tx.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if isDuplicateKey(err, reservationActiveSeatKey) {
		return ErrConflict
	}
	return err
}

// CountActiveByFlight counts confirmed/paid reservations for a flight; the
// availability number is aircraft capacity minus this count.
func (r *ReservationRepo) CountActiveByFlight(ctx context.Context, flightID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations WHERE flight_id = ? AND status IN ('confirmed','paid')`
	var n int
	err := r.db.QueryRowContext(ctx, q, flightID).Scan(&n)
	return n, err
}

// ReservedSeatIDs returns the ids of seats with an active reservation on
// the flight, used to flag occupancy in the seat map view.
func (r *ReservationRepo) ReservedSeatIDs(ctx context.Context, flightID uint64) (map[uint64]bool, error) {
	const q = `SELECT seat_id FROM reservations WHERE flight_id = ? AND status IN ('confirmed','paid')`
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reserved := make(map[uint64]bool)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		reserved[id] = true
	}
	return reserved, rows.Err()
}

// ReservationDetail joins a reservation with its flight, seat and passenger
// for listing and manifest views.
type ReservationDetail struct {
	ID              uint64                  `json:"id"`
	ReservationCode string                  `json:"reservation_code"`
	Status          model.ReservationStatus `json:"status"`
	PriceCents      int64                   `json:"price_cents"`
	CreatedAt       time.Time               `json:"created_at"`
	FlightID        uint64                  `json:"flight_id"`
	FlightCode      string                  `json:"flight_code"`
	Origin          string                  `json:"origin"`
	Destination     string                  `json:"destination"`
	Departure       time.Time               `json:"departure"`
	SeatID          uint64                  `json:"seat_id"`
	SeatNumber      string                  `json:"seat_number"`
	PassengerID     uint64                  `json:"passenger_id"`
	PassengerName   string                  `json:"passenger_name"`
	DocumentNumber  string                  `json:"document_number"`
}

const detailQuery = `SELECT r.id, r.reservation_code, r.status, r.price_cents, r.created_at,
	       f.id, f.flight_code, f.origin, f.destination, f.departure,
	       s.id, s.seat_number,
	       p.id, p.full_name, p.document_number
	FROM reservations r
	JOIN flights f ON f.id = r.flight_id
	JOIN seats s ON s.id = r.seat_id
	JOIN passengers p ON p.id = r.passenger_id`

func (r *ReservationRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.ReservationCode, &d.Status, &d.PriceCents, &d.CreatedAt,
			&d.FlightID, &d.FlightCode, &d.Origin, &d.Destination, &d.Departure,
			&d.SeatID, &d.SeatNumber,
			&d.PassengerID, &d.PassengerName, &d.DocumentNumber); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByPassenger returns all reservations of a passenger, newest first.
func (r *ReservationRepo) ListByPassenger(ctx context.Context, passengerID uint64) ([]ReservationDetail, error) {
	return r.queryDetails(ctx, detailQuery+` WHERE r.passenger_id = ? ORDER BY r.created_at DESC`, passengerID)
}

// ManifestByFlight returns the active reservations of a flight ordered by
// seat position, the passenger manifest.
func (r *ReservationRepo) ManifestByFlight(ctx context.Context, flightID uint64) ([]ReservationDetail, error) {
	return r.queryDetails(ctx, detailQuery+
		` WHERE r.flight_id = ? AND r.status IN ('confirmed','paid')
		  ORDER BY s.seat_row, s.column_letter`, flightID)
}

// ActiveRevenueCents sums the price of all active reservations, the booked
// revenue figure shown on the summary report.
func (r *ReservationRepo) ActiveRevenueCents(ctx context.Context) (int64, error) {
	const q = `SELECT COALESCE(SUM(price_cents), 0) FROM reservations WHERE status IN ('confirmed','paid')`
	var total int64
	err := r.db.QueryRowContext(ctx, q).Scan(&total)
	return total, err
}

// CountByStatus groups reservations by status for the summary report.
func (r *ReservationRepo) CountByStatus(ctx context.Context) (map[model.ReservationStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM reservations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ReservationStatus]int)
	for rows.Next() {
		var s model.ReservationStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		counts[s] = n
	}
	return counts, rows.Err()
}

// Count returns the total number of reservations.
func (r *ReservationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&n)
	return n, err
}
