package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// ErrPassengerNotFound is returned when a passenger lookup fails.
var ErrPassengerNotFound = errors.New("passenger not found")

// PassengerRepo provides data access for passenger identity records.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo constructs a PassengerRepo with the given DB handle.
func NewPassengerRepo(db *sql.DB) *PassengerRepo {
	return &PassengerRepo{db: db}
}

const passengerColumns = `id, full_name, document_number, document_type, email, phone, birth_date, registered_at`

func scanPassenger(row interface{ Scan(...interface{}) error }, p *model.Passenger) error {
	return row.Scan(&p.ID, &p.FullName, &p.DocumentNumber, &p.DocumentType,
		&p.Email, &p.Phone, &p.BirthDate, &p.RegisteredAt)
}

// Create inserts a passenger.  A duplicate document number maps to
// ErrDuplicate.
func (r *PassengerRepo) Create(ctx context.Context, p *model.Passenger) error {
	const q = `INSERT INTO passengers (full_name, document_number, document_type, email, phone, birth_date)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.FullName, p.DocumentNumber, p.DocumentType, p.Email, p.Phone, p.BirthDate)
	if err != nil {
		if isDuplicateKey(err, "uq_passengers_document") {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID retrieves a passenger by id.
func (r *PassengerRepo) GetByID(ctx context.Context, id uint64) (*model.Passenger, error) {
	var p model.Passenger
	err := scanPassenger(r.db.QueryRowContext(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id = ?`, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByEmail retrieves the passenger record matching an email address.  Used
// to connect an authenticated user with their travel history.
func (r *PassengerRepo) GetByEmail(ctx context.Context, email string) (*model.Passenger, error) {
	var p model.Passenger
	err := scanPassenger(r.db.QueryRowContext(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE email = ?`, email), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Search lists passengers ordered by name, optionally filtered by a
// substring of name, document number or email.
func (r *PassengerRepo) Search(ctx context.Context, q string) ([]model.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers`
	var args []interface{}
	if q != "" {
		query += ` WHERE full_name LIKE ? OR document_number LIKE ? OR email LIKE ?`
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Passenger, 0)
	for rows.Next() {
		var p model.Passenger
		if err := scanPassenger(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the total number of passengers.
func (r *PassengerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passengers`).Scan(&n)
	return n, err
}
