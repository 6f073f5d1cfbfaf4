package model

import (
	"fmt"

	"github.com/freundlier/intake/pkg/domain/types"
)

// Profile holds the demographic fields of a patient used by triage
// synthesis. Profiles are managed by the authentication collaborator and
// read-only here.
type Profile struct {
	PatientID types.PatientID
	Email     string
	Name      string
	Age       int
	Gender    string
}

// UnknownDemographics is the demographics line used when no profile is
// resolvable for a patient.
const UnknownDemographics = "Patient Demographics: Unknown"

// DemographicsLine renders the profile as the one-line header of the
// triage prompt.
func (p *Profile) DemographicsLine() string {
	if p == nil || p.Name == "" {
		return UnknownDemographics
	}
	return fmt.Sprintf("Patient Name: %s, Age: %d, Gender: %s", p.Name, p.Age, p.Gender)
}
