package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity(t *testing.T) {
	assert.Equal(t, uint32(4), Capacity(2, 2))
	assert.Equal(t, uint32(180), Capacity(30, 6))
	assert.Equal(t, uint32(0), Capacity(0, 6))
	// the geometry caps keep the product far below uint32 range
	assert.Equal(t, uint32(MaxRows*MaxColumns), Capacity(MaxRows, MaxColumns))
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", ColumnLetter(0))
	assert.Equal(t, "F", ColumnLetter(5))
	assert.Equal(t, "Z", ColumnLetter(25))
	assert.Equal(t, "", ColumnLetter(26))
	assert.Equal(t, "", ColumnLetter(-1))
}

func TestSeatNumberFor(t *testing.T) {
	assert.Equal(t, "1A", SeatNumberFor(1, 0))
	assert.Equal(t, "12C", SeatNumberFor(12, 2))
}

func TestGenerateSeatMap(t *testing.T) {
	seats := GenerateSeatMap(7, 2, 2, nil)
	require.Len(t, seats, 4)

	numbers := make(map[string]bool, len(seats))
	for _, s := range seats {
		assert.Equal(t, uint64(7), s.AircraftID)
		assert.Equal(t, SeatClassEconomy, s.Class)
		assert.Equal(t, SeatAvailable, s.Status)
		assert.False(t, numbers[s.SeatNumber], "duplicate seat %s", s.SeatNumber)
		numbers[s.SeatNumber] = true
	}
	for _, want := range []string{"1A", "1B", "2A", "2B"} {
		assert.True(t, numbers[want], "missing seat %s", want)
	}
}

func TestGenerateSeatMapSkipsExisting(t *testing.T) {
	existing := map[string]bool{"1A": true, "2B": true}
	seats := GenerateSeatMap(7, 2, 2, existing)
	require.Len(t, seats, 2)
	for _, s := range seats {
		assert.False(t, existing[s.SeatNumber])
	}

	// a full second pass produces nothing
	all := map[string]bool{"1A": true, "1B": true, "2A": true, "2B": true}
	assert.Empty(t, GenerateSeatMap(7, 2, 2, all))
}

func TestGenerateSeatMapRowMajorOrder(t *testing.T) {
	seats := GenerateSeatMap(1, 2, 3, nil)
	require.Len(t, seats, 6)
	assert.Equal(t, "1A", seats[0].SeatNumber)
	assert.Equal(t, "1C", seats[2].SeatNumber)
	assert.Equal(t, "2A", seats[3].SeatNumber)
}
