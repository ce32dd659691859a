// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a seat is successfully booked.
// It carries enough context for downstream consumers to log or notify
// without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	ReservationCode string `json:"reservation_code"`
	FlightID        uint64 `json:"flight_id"`
	FlightCode      string `json:"flight_code"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	Departure       string `json:"departure"`
	SeatNumber      string `json:"seat_number"`
	PassengerID     uint64 `json:"passenger_id"`
	PassengerName   string `json:"passenger_name"`
	PriceCents      int64  `json:"price_cents"`
	ConfirmedAt     string `json:"confirmed_at"`
}
