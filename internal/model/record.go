package model

import (
	"fmt"
	"strings"
	"time"
)

// PatientRecord is the single entity the gateway persists. The identifier
// is assigned by the store and never supplied by clients.
type PatientRecord struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"dateOfBirth"`
}

// RecordInput is one element of the bulk-insert request body. DateOfBirth
// stays a string on the way in; the store column accepts any DATETIME
// literal the client sends.
type RecordInput struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (r RecordInput) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(r.DateOfBirth) == "" {
		return fmt.Errorf("dateOfBirth is required")
	}
	return nil
}
