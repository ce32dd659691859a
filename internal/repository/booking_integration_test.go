package repository

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunopesce23/EFI-IngSoft/internal/database"
	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

// openTestDB connects with the same environment the server uses and skips
// the test when no database is configured. The schema from migrations/ must
// already be applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("DB_HOST not set; skipping database integration test")
	}
	db, err := database.Open(os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		host, os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type bookingFixture struct {
	flight     *model.Flight
	seats      []model.Seat
	passengers []*model.Passenger
}

// newBookingFixture registers a 2x2 aircraft with its seat map, one
// scheduled flight and a few passengers. Deleting the aircraft and the
// passengers on cleanup cascades to seats, flights and reservations.
func newBookingFixture(t *testing.T, db *sql.DB, passengerCount int) *bookingFixture {
	t.Helper()
	ctx := context.Background()
	tag := uuid.NewString()[:8]

	a := &model.Aircraft{Model: "A320 " + tag, Rows: 2, Columns: 2, Capacity: model.Capacity(2, 2)}
	require.NoError(t, NewAircraftRepo(db).Create(ctx, a))
	t.Cleanup(func() { db.Exec(`DELETE FROM aircraft WHERE id = ?`, a.ID) })

	seatRepo := NewSeatRepo(db)
	require.NoError(t, seatRepo.CreateBulk(ctx, model.GenerateSeatMap(a.ID, a.Rows, a.Columns, nil)))
	seats, err := seatRepo.ListByAircraft(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, seats, 4)

	dep := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	f := &model.Flight{
		AircraftID:     a.ID,
		FlightCode:     "IT" + tag[:6],
		Origin:         "EZE",
		Destination:    "COR",
		Departure:      dep,
		Arrival:        dep.Add(90 * time.Minute),
		Status:         model.FlightScheduled,
		BasePriceCents: 150000,
	}
	require.NoError(t, NewFlightRepo(db).Create(ctx, f))

	pRepo := NewPassengerRepo(db)
	fx := &bookingFixture{flight: f, seats: seats}
	for i := 0; i < passengerCount; i++ {
		p := &model.Passenger{
			FullName:       "Traveler " + tag,
			DocumentNumber: tag + string(rune('A'+i)),
			DocumentType:   model.DocumentPassport,
			Email:          tag + string(rune('a'+i)) + "@example.com",
			Phone:          "+5493510000000",
			BirthDate:      time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, pRepo.Create(ctx, p))
		t.Cleanup(func() { db.Exec(`DELETE FROM passengers WHERE id = ?`, p.ID) })
		fx.passengers = append(fx.passengers, p)
	}
	return fx
}

func bookSeat(ctx context.Context, db *sql.DB, repo *ReservationRepo, fx *bookingFixture, passenger *model.Passenger, seatID uint64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	res := &model.Reservation{
		FlightID:        fx.flight.ID,
		PassengerID:     passenger.ID,
		SeatID:          seatID,
		Status:          model.ReservationConfirmed,
		PriceCents:      fx.flight.BasePriceCents,
		ReservationCode: model.NewReservationCode(),
	}
	if err := repo.CreateTx(ctx, tx, res); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Two callers race for the same seat. Whatever the interleaving, the unique
// index over the generated active-seat column admits exactly one of them.
func TestConcurrentBookingSameSeat(t *testing.T) {
	db := openTestDB(t)
	fx := newBookingFixture(t, db, 2)
	repo := NewReservationRepo(db)
	ctx := context.Background()
	seatID := fx.seats[0].ID

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = bookSeat(ctx, db, repo, fx, fx.passengers[i], seatID)
		}(i)
	}
	wg.Wait()

	var conflicts, wins int
	for _, err := range errs {
		switch err {
		case nil:
			wins++
		case ErrConflict:
			conflicts++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
}

// A status transition that would activate a seat held by another active
// reservation hits the same index and maps to ErrConflict.
func TestStatusUpdateConflictOnHeldSeat(t *testing.T) {
	db := openTestDB(t)
	fx := newBookingFixture(t, db, 2)
	repo := NewReservationRepo(db)
	ctx := context.Background()
	seatID := fx.seats[1].ID

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	pending := &model.Reservation{
		FlightID:        fx.flight.ID,
		PassengerID:     fx.passengers[0].ID,
		SeatID:          seatID,
		Status:          model.ReservationPending,
		PriceCents:      fx.flight.BasePriceCents,
		ReservationCode: model.NewReservationCode(),
	}
	require.NoError(t, repo.CreateTx(ctx, tx, pending))
	require.NoError(t, tx.Commit())

	require.NoError(t, bookSeat(ctx, db, repo, fx, fx.passengers[1], seatID))

	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()
	err = repo.UpdateStatusTx(ctx, tx, pending.ID, model.ReservationConfirmed)
	assert.ErrorIs(t, err, ErrConflict)
}

// End to end against the storage layer: fill a 2x2 cabin, free a seat by
// cancelling, and rebook it.
func TestBookCancelRebookCycle(t *testing.T) {
	db := openTestDB(t)
	fx := newBookingFixture(t, db, 4)
	repo := NewReservationRepo(db)
	ctx := context.Background()

	for i, p := range fx.passengers {
		require.NoError(t, bookSeat(ctx, db, repo, fx, p, fx.seats[i].ID))
	}
	taken, err := repo.CountActiveByFlight(ctx, fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, taken)

	// one more attempt on an occupied seat fails
	err = bookSeat(ctx, db, repo, fx, fx.passengers[0], fx.seats[3].ID)
	assert.ErrorIs(t, err, ErrConflict)

	// cancel the reservation holding seat 0, then rebook that seat
	reserved, err := repo.ReservedSeatIDs(ctx, fx.flight.ID)
	require.NoError(t, err)
	require.True(t, reserved[fx.seats[0].ID])

	manifest, err := repo.ManifestByFlight(ctx, fx.flight.ID)
	require.NoError(t, err)
	require.Len(t, manifest, 4)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	first, err := repo.GetByIDTx(ctx, tx, manifest[0].ID)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatusTx(ctx, tx, first.ID, model.ReservationCancelled))
	require.NoError(t, tx.Commit())

	require.NoError(t, bookSeat(ctx, db, repo, fx, fx.passengers[0], first.SeatID))
	taken, err = repo.CountActiveByFlight(ctx, fx.flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, taken)
}
