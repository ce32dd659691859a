package model

import (
	"fmt"
	"time"
)

// TicketStatus enumerates the states of an issued e-ticket.
type TicketStatus string

const (
	TicketIssued    TicketStatus = "issued"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket is the e-ticket derived one-to-one from a reservation.  Tickets are
// only issued for reservations in an active status, and issuing twice for
// the same reservation returns the existing ticket.
type Ticket struct {
	ID            uint64       `json:"id"`
	ReservationID uint64       `json:"reservation_id"`
	Barcode       string       `json:"barcode"`
	Status        TicketStatus `json:"status"`
	IssuedAt      time.Time    `json:"issued_at"`
}

// NewBarcode builds the unique barcode for a ticket from the issue time and
// the reservation it belongs to.
func NewBarcode(reservationID uint64, at time.Time) string {
	return fmt.Sprintf("TKT%d%d", at.Unix(), reservationID)
}
