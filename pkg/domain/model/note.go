package model

import (
	"time"

	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MaxNoteLength is the maximum accepted length of a clinician note
const MaxNoteLength = 5000

// Note is the clinician's free-text note for a patient. One row per
// patient, upserted.
type Note struct {
	PatientID types.PatientID
	Note      string `masq:"secret"`
	UpdatedAt time.Time
}

// Validate checks the note against input constraints
func (n *Note) Validate() error {
	if err := n.PatientID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid note")
	}
	if len(n.Note) > MaxNoteLength {
		return goerr.New("note exceeds maximum allowed length",
			goerr.V("length", len(n.Note)),
			goerr.V("max", MaxNoteLength),
		)
	}
	return nil
}
