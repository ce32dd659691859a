package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveStatuses(t *testing.T) {
	assert.True(t, ReservationConfirmed.Active())
	assert.True(t, ReservationPaid.Active())
	assert.False(t, ReservationPending.Active())
	assert.False(t, ReservationCancelled.Active())
	assert.False(t, ReservationCompleted.Active())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ReservationStatus
		ok       bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationPaid, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationPending, ReservationCompleted, false},
		{ReservationConfirmed, ReservationPaid, true},
		{ReservationConfirmed, ReservationCompleted, true},
		{ReservationPaid, ReservationCancelled, true},
		{ReservationCancelled, ReservationConfirmed, false},
		{ReservationCompleted, ReservationCancelled, false},
		// repeating the current status is a permitted no-op
		{ReservationCancelled, ReservationCancelled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSeatStatusAfter(t *testing.T) {
	st, ok := SeatStatusAfter(ReservationConfirmed)
	assert.True(t, ok)
	assert.Equal(t, SeatReserved, st)

	st, ok = SeatStatusAfter(ReservationPaid)
	assert.True(t, ok)
	assert.Equal(t, SeatReserved, st)

	st, ok = SeatStatusAfter(ReservationCancelled)
	assert.True(t, ok)
	assert.Equal(t, SeatAvailable, st)

	_, ok = SeatStatusAfter(ReservationPending)
	assert.False(t, ok)
	_, ok = SeatStatusAfter(ReservationCompleted)
	assert.False(t, ok)
}

func TestNewReservationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewReservationCode()
		assert.Len(t, code, 8)
		assert.Equal(t, strings.ToUpper(code), code)
		assert.False(t, seen[code], "code %s repeated", code)
		seen[code] = true
	}
}
