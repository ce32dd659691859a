package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry '3-12' for key 'uq_reservations_active_seat'",
	}
	assert.True(t, isDuplicateKey(dup, "uq_reservations_active_seat"))
	assert.False(t, isDuplicateKey(dup, "uq_flights_code"))
}

func TestIsDuplicateKeyWrapped(t *testing.T) {
	dup := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'AB123' for key 'uq_flights_code'",
	}
	wrapped := fmt.Errorf("insert flight: %w", dup)
	assert.True(t, isDuplicateKey(wrapped, "uq_flights_code"))
}

func TestIsDuplicateKeyOtherErrors(t *testing.T) {
	assert.False(t, isDuplicateKey(nil, "uq_users_email"))
	assert.False(t, isDuplicateKey(errors.New("connection refused"), "uq_users_email"))

	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	assert.False(t, isDuplicateKey(deadlock, "uq_users_email"))
}
