package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// ErrAircraftNotFound is returned when an aircraft lookup fails.
var ErrAircraftNotFound = errors.New("aircraft not found")

// AircraftRepo provides methods to create and retrieve aircraft.  Capacity
// is computed by the caller (model.Capacity) before persisting; the
// repository never derives it.
type AircraftRepo struct {
	db *sql.DB
}

// NewAircraftRepo constructs an AircraftRepo with the given DB handle.
func NewAircraftRepo(db *sql.DB) *AircraftRepo {
	return &AircraftRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span several repositories.
func (r *AircraftRepo) DB() *sql.DB { return r.db }

// Create inserts a new aircraft and reads the row back so timestamps are
// populated.
func (r *AircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
	const qInsert = `INSERT INTO aircraft (model, seat_rows, seat_columns, capacity)
	                 VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, a.Model, a.Rows, a.Columns, a.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	const qSelect = `SELECT id, model, seat_rows, seat_columns, capacity, registered_at
	                 FROM aircraft WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, a.ID).
		Scan(&a.ID, &a.Model, &a.Rows, &a.Columns, &a.Capacity, &a.RegisteredAt)
}

// GetByID retrieves an aircraft by its ID.  It returns ErrAircraftNotFound
// when no row exists.
func (r *AircraftRepo) GetByID(ctx context.Context, id uint64) (*model.Aircraft, error) {
	const q = `SELECT id, model, seat_rows, seat_columns, capacity, registered_at
	           FROM aircraft WHERE id = ?`
	var a model.Aircraft
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&a.ID, &a.Model, &a.Rows, &a.Columns, &a.Capacity, &a.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAircraftNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns the whole fleet ordered by id.
func (r *AircraftRepo) List(ctx context.Context) ([]model.Aircraft, error) {
	const q = `SELECT id, model, seat_rows, seat_columns, capacity, registered_at
	           FROM aircraft ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fleet []model.Aircraft
	for rows.Next() {
		var a model.Aircraft
		if err := rows.Scan(&a.ID, &a.Model, &a.Rows, &a.Columns, &a.Capacity, &a.RegisteredAt); err != nil {
			return nil, err
		}
		fleet = append(fleet, a)
	}
	return fleet, rows.Err()
}

// Update persists model name and geometry.  Capacity must already reflect
// the new geometry.  Returns ErrAircraftNotFound when the id is absent.
func (r *AircraftRepo) Update(ctx context.Context, a *model.Aircraft) error {
	const q = `UPDATE aircraft SET model = ?, seat_rows = ?, seat_columns = ?, capacity = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Model, a.Rows, a.Columns, a.Capacity, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 for a no-change update; confirm existence.
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}
