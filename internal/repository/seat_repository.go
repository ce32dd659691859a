package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts multiple seats in a single statement.  Callers build
// the slice with model.GenerateSeatMap, which already skips existing seat
// numbers; the unique (aircraft, seat_number) key backs that up.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (aircraft_id, seat_number, seat_row, column_letter, class, status) VALUES `
	args := make([]interface{}, 0, len(seats)*6)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, s.AircraftID, s.SeatNumber, s.Row, s.ColumnLetter, s.Class, s.Status)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	if isDuplicateKey(err, "uq_seats_aircraft_number") {
		return ErrDuplicate
	}
	return err
}

// ExistingNumbers returns the set of seat numbers already generated for the
// aircraft, used to keep seat map generation idempotent.
func (r *SeatRepo) ExistingNumbers(ctx context.Context, aircraftID uint64) (map[string]bool, error) {
	const q = `SELECT seat_number FROM seats WHERE aircraft_id = ?`
	rows, err := r.db.QueryContext(ctx, q, aircraftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		existing[n] = true
	}
	return existing, rows.Err()
}

// ListByAircraft retrieves all seats of an aircraft ordered by row then
// column letter.
func (r *SeatRepo) ListByAircraft(ctx context.Context, aircraftID uint64) ([]model.Seat, error) {
	const q = `SELECT id, aircraft_id, seat_number, seat_row, column_letter, class, status, created_at
	           FROM seats
	           WHERE aircraft_id = ?
	           ORDER BY seat_row, column_letter`
	rows, err := r.db.QueryContext(ctx, q, aircraftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.AircraftID, &s.SeatNumber, &s.Row, &s.ColumnLetter,
			&s.Class, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, aircraft_id, seat_number, seat_row, column_letter, class, status, created_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.AircraftID, &s.SeatNumber, &s.Row, &s.ColumnLetter, &s.Class, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDTx is GetByID inside an existing transaction, locking the row so a
// concurrent booking of the same seat serializes on it.
func (r *SeatRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Seat, error) {
	const q = `SELECT id, aircraft_id, seat_number, seat_row, column_letter, class, status, created_at
	           FROM seats WHERE id = ? FOR UPDATE`
	var s model.Seat
	err := tx.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.AircraftID, &s.SeatNumber, &s.Row, &s.ColumnLetter, &s.Class, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SetStatusTx updates a seat's status within a transaction.  The WHERE
// clause skips the write when the seat already carries the target status.
func (r *SeatRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.SeatStatus) error {
	const q = `UPDATE seats SET status = ? WHERE id = ? AND status <> ?`
	_, err := tx.ExecContext(ctx, q, status, id, status)
	return err
}
