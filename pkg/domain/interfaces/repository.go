package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Message() MessageRepository
	Alert() AlertRepository
	Report() ReportRepository
	Knowledge() KnowledgeRepository
	Note() NoteRepository
	Profile() ProfileRepository

	Close() error
}
