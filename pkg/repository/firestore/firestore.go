package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

const (
	collectionMessages  = "messages"
	collectionAlerts    = "alerts"
	collectionReports   = "reports"
	collectionKnowledge = "knowledge"
	collectionNotes     = "notes"
	collectionProfiles  = "profiles"
)

type Firestore struct {
	client    *firestore.Client
	message   *messageRepository
	alert     *alertRepository
	report    *reportRepository
	knowledge *knowledgeRepository
	note      *noteRepository
	profile   *profileRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	return &Firestore{
		client:    client,
		message:   newMessageRepository(client),
		alert:     newAlertRepository(client),
		report:    newReportRepository(client),
		knowledge: newKnowledgeRepository(client),
		note:      newNoteRepository(client),
		profile:   newProfileRepository(client),
	}, nil
}

func (f *Firestore) Message() interfaces.MessageRepository {
	return f.message
}

func (f *Firestore) Alert() interfaces.AlertRepository {
	return f.alert
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) Knowledge() interfaces.KnowledgeRepository {
	return f.knowledge
}

func (f *Firestore) Note() interfaces.NoteRepository {
	return f.note
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
