package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages map[types.PatientID][]*model.Message
}

var _ interfaces.MessageRepository = &messageRepository{}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[types.PatientID][]*model.Message),
	}
}

func (r *messageRepository) Append(_ context.Context, msg *model.Message) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *msg
	if copied.ID == "" {
		copied.ID = model.NewMessageID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}

	r.messages[copied.PatientID] = append(r.messages[copied.PatientID], &copied)

	result := copied
	return &result, nil
}

func (r *messageRepository) CountUserSince(_ context.Context, patientID types.PatientID, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.messages[patientID] {
		if m.Role == types.RoleUser && !m.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *messageRepository) ListSince(_ context.Context, patientID types.PatientID, since time.Time) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Message, 0)
	for _, m := range r.messages[patientID] {
		if !m.CreatedAt.Before(since) {
			copied := *m
			result = append(result, &copied)
		}
	}
	sortMessages(result)
	return result, nil
}

func (r *messageRepository) ListRecent(_ context.Context, patientID types.PatientID, limit int) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Message, 0, len(r.messages[patientID]))
	for _, m := range r.messages[patientID] {
		copied := *m
		all = append(all, &copied)
	}
	sortMessages(all)

	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func sortMessages(msgs []*model.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
