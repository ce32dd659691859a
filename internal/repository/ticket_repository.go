package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// ErrTicketNotFound is returned when a ticket lookup fails.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepo provides CRUD operations for issued tickets.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `id, reservation_id, barcode, status, issued_at`

func scanTicket(row interface{ Scan(...interface{}) error }, t *model.Ticket) error {
	return row.Scan(&t.ID, &t.ReservationID, &t.Barcode, &t.Status, &t.IssuedAt)
}

// Create inserts a ticket and reads it back to populate ID and IssuedAt.
// The reservation_id unique constraint makes issuance one-per-reservation;
// a duplicate insert surfaces as ErrDuplicate so the handler can fall back
// to the existing ticket.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (reservation_id, barcode, status) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, t.ReservationID, t.Barcode, t.Status)
	if err != nil {
		if isDuplicateKey(err, "uq_tickets_reservation") {
			return ErrDuplicate
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const sel = `SELECT issued_at FROM tickets WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.IssuedAt)
}

// GetByID retrieves a ticket, returning ErrTicketNotFound when absent.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id), &t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByReservation retrieves the ticket issued for a reservation, if any.
func (r *TicketRepo) GetByReservation(ctx context.Context, reservationID uint64) (*model.Ticket, error) {
	var t model.Ticket
	err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE reservation_id = ?`, reservationID), &t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}
