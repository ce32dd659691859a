package model

import "time"

// FlightStatus enumerates the operational states of a flight.  Only
// scheduled flights accept new reservations.
type FlightStatus string

const (
	FlightScheduled FlightStatus = "scheduled"
	FlightBoarding  FlightStatus = "boarding"
	FlightInFlight  FlightStatus = "in_flight"
	FlightLanded    FlightStatus = "landed"
	FlightCancelled FlightStatus = "cancelled"
	FlightDelayed   FlightStatus = "delayed"
)

// ValidFlightStatus reports whether s is one of the known flight statuses.
// Status writes are validated against the enum but otherwise unrestricted so
// that operations staff can correct a flight's state out of order.
func ValidFlightStatus(s FlightStatus) bool {
	switch s {
	case FlightScheduled, FlightBoarding, FlightInFlight, FlightLanded, FlightCancelled, FlightDelayed:
		return true
	}
	return false
}

// Flight represents a scheduled flight operated by one aircraft.
//
// Fields:
//  ID             – primary key identifier.
//  AircraftID     – aircraft operating the flight.
//  FlightCode     – unique code, e.g. "AR001".
//  Origin         – departure city.
//  Destination    – arrival city.
//  Departure      – scheduled departure time (UTC).
//  Arrival        – scheduled arrival time (UTC).
//  Status         – operational state.
//  BasePriceCents – default seat price in cents.
type Flight struct {
	ID             uint64       `json:"id"`
	AircraftID     uint64       `json:"aircraft_id"`
	FlightCode     string       `json:"flight_code"`
	Origin         string       `json:"origin"`
	Destination    string       `json:"destination"`
	Departure      time.Time    `json:"departure"`
	Arrival        time.Time    `json:"arrival"`
	Status         FlightStatus `json:"status"`
	BasePriceCents int64        `json:"base_price_cents"`
}

// Duration derives the flight time from the schedule.  Zero times yield a
// zero duration; arrival before departure yields a negative one, which the
// handlers reject at creation.
func (f Flight) Duration() time.Duration {
	if f.Departure.IsZero() || f.Arrival.IsZero() {
		return 0
	}
	return f.Arrival.Sub(f.Departure)
}

// Bookable reports whether the flight accepts new reservations.
func (f Flight) Bookable() bool {
	return f.Status == FlightScheduled
}
