package memory

import (
	"context"
	"sync"
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type noteRepository struct {
	mu    sync.RWMutex
	notes map[types.PatientID]*model.Note
}

var _ interfaces.NoteRepository = &noteRepository{}

func newNoteRepository() *noteRepository {
	return &noteRepository{
		notes: make(map[types.PatientID]*model.Note),
	}
}

func (r *noteRepository) Upsert(_ context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *note
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = time.Now().UTC()
	}
	r.notes[copied.PatientID] = &copied
	return nil
}

func (r *noteRepository) Get(_ context.Context, patientID types.PatientID) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[patientID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "note not found", goerr.V("patientID", patientID))
	}

	copied := *note
	return &copied, nil
}
