package model

import "time"

// DocumentType enumerates the accepted identity documents.
type DocumentType string

const (
	DocumentNationalID DocumentType = "national_id"
	DocumentPassport   DocumentType = "passport"
	DocumentOtherID    DocumentType = "other_id"
)

// ValidDocumentType reports whether t is a known document type.
func ValidDocumentType(t DocumentType) bool {
	return t == DocumentNationalID || t == DocumentPassport || t == DocumentOtherID
}

// Passenger is a traveler identity record, keyed by a unique document number.
type Passenger struct {
	ID             uint64       `json:"id"`
	FullName       string       `json:"full_name"`
	DocumentNumber string       `json:"document_number"`
	DocumentType   DocumentType `json:"document_type"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	BirthDate      time.Time    `json:"birth_date"`
	RegisteredAt   time.Time    `json:"registered_at"`
}

// Age returns the passenger's age in whole years at the given date.
func (p Passenger) Age(at time.Time) int {
	years := at.Year() - p.BirthDate.Year()
	if at.Month() < p.BirthDate.Month() ||
		(at.Month() == p.BirthDate.Month() && at.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}
