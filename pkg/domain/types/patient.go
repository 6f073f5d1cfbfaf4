package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// PatientID identifies a patient. The authentication collaborator issues
// UUIDs in production, but any non-empty opaque string is accepted.
type PatientID string

// Validate checks if the PatientID is valid
func (p PatientID) Validate() error {
	if p == "" {
		return goerr.New("patient ID cannot be empty")
	}
	return nil
}

// String returns the string representation of PatientID
func (p PatientID) String() string {
	return string(p)
}
