// Package repository defines error types shared across repositories.  These
// sentinels let handlers distinguish failure classes without inspecting
// driver errors: ErrDuplicate maps to a violated uniqueness constraint
// (document number, flight code, barcode), ErrConflict to a seat or
// passenger that already holds an active reservation on the flight.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
// Handlers should translate it into an HTTP 409 response.
var ErrDuplicate = errors.New("duplicate record")

// ErrConflict is returned when a reservation cannot be created because the
// (flight, seat) pair already has an active reservation.  The database's
// active-seat unique index raises it even when two writers race.
var ErrConflict = errors.New("conflict")

const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate-entry error, and
// if keyName is non-empty, whether it was raised by that specific index.
func isDuplicateKey(err error, keyName string) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlDuplicateEntry {
		return false
	}
	return keyName == "" || strings.Contains(me.Message, keyName)
}
