package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// ErrFlightNotFound is returned when a flight lookup fails.
var ErrFlightNotFound = errors.New("flight not found")

// FlightFilter narrows ListAll.  Zero values mean "no filter".
type FlightFilter struct {
	Status      model.FlightStatus
	Origin      string
	Destination string
	From        time.Time
	To          time.Time
}

// FlightRepo provides data access for flights.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

const flightColumns = `id, aircraft_id, flight_code, origin, destination, departure, arrival, status, base_price_cents`

func scanFlight(row interface{ Scan(...interface{}) error }, f *model.Flight) error {
	return row.Scan(&f.ID, &f.AircraftID, &f.FlightCode, &f.Origin, &f.Destination,
		&f.Departure, &f.Arrival, &f.Status, &f.BasePriceCents)
}

// Create inserts a flight.  A duplicate flight code maps to ErrDuplicate.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	const q = `INSERT INTO flights (aircraft_id, flight_code, origin, destination, departure, arrival, status, base_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.AircraftID, f.FlightCode, f.Origin, f.Destination,
		f.Departure.UTC(), f.Arrival.UTC(), f.Status, f.BasePriceCents)
	if err != nil {
		if isDuplicateKey(err, "uq_flights_code") {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID retrieves a flight, returning ErrFlightNotFound when absent.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	var f model.Flight
	err := scanFlight(r.db.QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = ?`, id), &f)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// ListUpcoming returns scheduled flights departing at or after now, the
// public listing.  Ordered by departure time.
func (r *FlightRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.Flight, error) {
	const q = `SELECT ` + flightColumns + ` FROM flights
	           WHERE status = ? AND departure >= ?
	           ORDER BY departure`
	return r.queryFlights(ctx, q, model.FlightScheduled, now.UTC())
}

// ListAll returns flights matching the filter, ordered by departure.  Used
// by admin listings and reports.
func (r *FlightRepo) ListAll(ctx context.Context, filter FlightFilter) ([]model.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	var args []interface{}
	if filter.Status != "" {
		q += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Origin != "" {
		q += ` AND origin LIKE ?`
		args = append(args, "%"+filter.Origin+"%")
	}
	if filter.Destination != "" {
		q += ` AND destination LIKE ?`
		args = append(args, "%"+filter.Destination+"%")
	}
	if !filter.From.IsZero() {
		q += ` AND departure >= ?`
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		q += ` AND departure <= ?`
		args = append(args, filter.To.UTC())
	}
	q += ` ORDER BY departure`
	return r.queryFlights(ctx, q, args...)
}

func (r *FlightRepo) queryFlights(ctx context.Context, q string, args ...interface{}) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]model.Flight, 0)
	for rows.Next() {
		var f model.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// UpdateStatus sets the flight status.  The caller validates the value
// against the enum first.
func (r *FlightRepo) UpdateStatus(ctx context.Context, id uint64, status model.FlightStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE flights SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CountByStatus groups flights by status for the summary report.
func (r *FlightRepo) CountByStatus(ctx context.Context) (map[model.FlightStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM flights GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.FlightStatus]int)
	for rows.Next() {
		var s model.FlightStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		counts[s] = n
	}
	return counts, rows.Err()
}

// Count returns the total number of flights.
func (r *FlightRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flights`).Scan(&n)
	return n, err
}
