package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// Without a Redis client every operation must be a safe no-op so the
// service runs cache-less.
func TestFlightCacheDisabledWithoutClient(t *testing.T) {
	c := NewFlightCache(nil, 30*time.Second)
	ctx := context.Background()

	got, err := c.GetUpcoming(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, c.SetUpcoming(ctx, []model.Flight{{ID: 1, FlightCode: "AR1500"}}))
	assert.NoError(t, c.Invalidate(ctx))
}

func TestFlightCacheNilReceiver(t *testing.T) {
	var c *FlightCache
	ctx := context.Background()

	got, err := c.GetUpcoming(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.SetUpcoming(ctx, nil))
	assert.NoError(t, c.Invalidate(ctx))
}
