package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlightDuration(t *testing.T) {
	dep := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	f := Flight{Departure: dep, Arrival: dep.Add(90 * time.Minute)}
	assert.Equal(t, 90*time.Minute, f.Duration())

	assert.Zero(t, Flight{}.Duration())
	assert.Zero(t, Flight{Departure: dep}.Duration())
}

func TestFlightBookable(t *testing.T) {
	assert.True(t, Flight{Status: FlightScheduled}.Bookable())
	for _, s := range []FlightStatus{FlightBoarding, FlightInFlight, FlightLanded, FlightCancelled, FlightDelayed} {
		assert.False(t, Flight{Status: s}.Bookable(), string(s))
	}
}

func TestValidFlightStatus(t *testing.T) {
	assert.True(t, ValidFlightStatus(FlightDelayed))
	assert.False(t, ValidFlightStatus("grounded"))
}

func TestPassengerAge(t *testing.T) {
	p := Passenger{BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 35, p.Age(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 36, p.Age(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestNewBarcode(t *testing.T) {
	at := time.Unix(1700000000, 0)
	assert.Equal(t, "TKT170000000042", NewBarcode(42, at))
	assert.NotEqual(t, NewBarcode(1, at), NewBarcode(2, at))
}
