package memory

import (
	"github.com/freundlier/intake/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	message   *messageRepository
	alert     *alertRepository
	report    *reportRepository
	knowledge *knowledgeRepository
	note      *noteRepository
	profile   *profileRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		message:   newMessageRepository(),
		alert:     newAlertRepository(),
		report:    newReportRepository(),
		knowledge: newKnowledgeRepository(),
		note:      newNoteRepository(),
		profile:   newProfileRepository(),
	}
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.message
}

func (m *Memory) Alert() interfaces.AlertRepository {
	return m.alert
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Knowledge() interfaces.KnowledgeRepository {
	return m.knowledge
}

func (m *Memory) Note() interfaces.NoteRepository {
	return m.note
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Close() error {
	return nil
}
