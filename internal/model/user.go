package model

import "time"

// Roles carried in the JWT "role" claim.  Admins manage the fleet, flights
// and reports; clients book seats.
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

// User is an application account.  Passengers are separate records: a user
// authenticates, a passenger travels.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email, unique
	PasswordHash string    // bcrypt hash
	Role         string    // RoleAdmin or RoleClient
	CreatedAt    time.Time // users.created_at
}

// RefreshToken models a row in refresh_tokens.  Only the SHA-256 hash of the
// raw token is stored.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
