package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/cache"
	"github.com/brunopesce23/EFI-IngSoft/internal/config"
	"github.com/brunopesce23/EFI-IngSoft/internal/database"
	"github.com/brunopesce23/EFI-IngSoft/internal/handler"
	"github.com/brunopesce23/EFI-IngSoft/internal/model"
	"github.com/brunopesce23/EFI-IngSoft/internal/queue"
	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
	"github.com/brunopesce23/EFI-IngSoft/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; flight list cache disabled")
	}
	flightCache := cache.NewFlightCache(rdb, cfg.FlightCacheTTL)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	ensureAdmin(cfg, users)
	aircraft := repository.NewAircraftRepo(db)
	seats := repository.NewSeatRepo(db)
	flights := repository.NewFlightRepo(db)
	passengers := repository.NewPassengerRepo(db)
	reservations := repository.NewReservationRepo(db)
	tickets := repository.NewTicketRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	aircraftH := handler.NewAircraftHandler(aircraft, seats)
	flightH := handler.NewFlightHandler(flights, aircraft, seats, reservations, flightCache)
	passengerH := handler.NewPassengerHandler(passengers, reservations)
	reservationH := handler.NewReservationHandler(reservations, flights, seats, passengers, users)
	ticketH := handler.NewTicketHandler(tickets, reservations)
	reportH := handler.NewReportHandler(flights, passengers, reservations, aircraft)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, flightH)
	router.RegisterAdmin(e, aircraftH, flightH, passengerH, reservationH, reportH, cfg.JWTSecret)
	router.RegisterBooking(e, passengerH, reservationH, ticketH, cfg.JWTSecret)

	// Background consumer appends confirmed bookings to logs/reservations.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// ensureAdmin provisions the admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Registration only ever creates CLIENT users, so this is the sole path that
// mints an ADMIN. Idempotent across restarts.
func ensureAdmin(cfg config.Config, users *repository.UserRepo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := users.Create(ctx, cfg.AdminEmail, cfg.AdminPassword, model.RoleAdmin, cfg.BcryptCost)
	switch {
	case err == nil:
		log.Printf("admin account %s created", cfg.AdminEmail)
	case err == repository.ErrEmailExists:
		// already provisioned
	default:
		log.Fatalf("admin bootstrap: %v", err)
	}
}
