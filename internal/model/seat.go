package model

import "time"

// SeatClass enumerates the cabin classes a seat can belong to.
type SeatClass string

const (
	SeatClassEconomy  SeatClass = "economy"
	SeatClassBusiness SeatClass = "business"
	SeatClassFirst    SeatClass = "first"
)

// SeatStatus enumerates the physical state of a seat.  available/reserved
// are toggled exclusively by reservation transitions (see SeatStatusAfter);
// occupied and maintenance are set by operations staff.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatReserved    SeatStatus = "reserved"
	SeatOccupied    SeatStatus = "occupied"
	SeatMaintenance SeatStatus = "maintenance"
)

// Seat describes a physical seat in an aircraft cabin.  Seats are uniquely
// identified by (aircraft, seat number); the number is the row followed by
// the column letter, e.g. "12C".
type Seat struct {
	ID           uint64     `json:"id"`
	AircraftID   uint64     `json:"aircraft_id"`
	SeatNumber   string     `json:"seat_number"`
	Row          uint32     `json:"row"`
	ColumnLetter string     `json:"column_letter"`
	Class        SeatClass  `json:"class"`
	Status       SeatStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}
