package interfaces

import (
	"context"
	"time"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

// MessageRepository defines the interface for conversation log persistence.
// The log is append-only: messages are never updated or deleted.
type MessageRepository interface {
	// Append stores a new message and returns it with ID and CreatedAt set
	Append(ctx context.Context, msg *model.Message) (*model.Message, error)

	// CountUserSince counts user-role messages for a patient with
	// CreatedAt >= since. Used for session turn-cap enforcement.
	CountUserSince(ctx context.Context, patientID types.PatientID, since time.Time) (int, error)

	// ListSince retrieves messages for a patient with CreatedAt >= since,
	// ordered by CreatedAt ascending
	ListSince(ctx context.Context, patientID types.PatientID, since time.Time) ([]*model.Message, error)

	// ListRecent retrieves the most recent limit messages for a patient,
	// returned in CreatedAt ascending order
	ListRecent(ctx context.Context, patientID types.PatientID, limit int) ([]*model.Message, error)
}
