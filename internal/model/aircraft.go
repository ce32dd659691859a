package model

import (
	"fmt"
	"time"
)

// MaxColumns bounds the seat columns of an aircraft.  Column letters are
// assigned A..Z, so a layout wider than 26 seats per row cannot be labelled.
const MaxColumns = 26

// MaxRows bounds the seating rows.  No passenger aircraft comes close, and
// the cap keeps Rows*Columns far away from uint32 overflow and seat map
// generation to a bounded batch.
const MaxRows = 200

// Aircraft represents one airplane of the fleet.  Rows and Columns describe
// the cabin geometry; Capacity is always derived from them via Capacity(),
// never written independently.  Each aircraft owns a set of generated Seats.
//
// Fields:
//  ID           – primary key identifier.
//  Model        – manufacturer model name (e.g. "Airbus A320").
//  Rows         – number of seating rows, 1..MaxRows.
//  Columns      – seats per row, 1..MaxColumns.
//  Capacity     – Rows*Columns, recomputed whenever geometry changes.
//  RegisteredAt – timestamp when the aircraft was added to the fleet.
type Aircraft struct {
	ID           uint64    `json:"id"`
	Model        string    `json:"model"`
	Rows         uint32    `json:"rows"`
	Columns      uint32    `json:"columns"`
	Capacity     uint32    `json:"capacity"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Capacity derives the total seat count from the cabin geometry.  It is the
// single place where capacity is computed; callers set Aircraft.Capacity from
// it before persisting.
func Capacity(rows, columns uint32) uint32 {
	return rows * columns
}

// ColumnLetter maps a zero-based column index to its letter (0 -> "A").
// Indices at or beyond MaxColumns are out of range and return "".
func ColumnLetter(i int) string {
	if i < 0 || i >= MaxColumns {
		return ""
	}
	return string(rune('A' + i))
}

// SeatNumberFor builds the display number of a seat, row followed by the
// column letter ("1A", "12C").
func SeatNumberFor(row uint32, columnIndex int) string {
	return fmt.Sprintf("%d%s", row, ColumnLetter(columnIndex))
}

// GenerateSeatMap expands an aircraft's geometry into seat records, one per
// (row, column letter) pair.  Seat numbers already present in existing are
// skipped, which makes repeated generation for the same aircraft idempotent.
// All generated seats start as available economy seats; premium cabins are
// assigned later by fleet operators, not at registration.
func GenerateSeatMap(aircraftID uint64, rows, columns uint32, existing map[string]bool) []Seat {
	seats := make([]Seat, 0, rows*columns)
	for r := uint32(1); r <= rows; r++ {
		for c := 0; c < int(columns); c++ {
			number := SeatNumberFor(r, c)
			if existing[number] {
				continue
			}
			seats = append(seats, Seat{
				AircraftID:   aircraftID,
				SeatNumber:   number,
				Row:          r,
				ColumnLetter: ColumnLetter(c),
				Class:        SeatClassEconomy,
				Status:       SeatAvailable,
			})
		}
	}
	return seats
}
