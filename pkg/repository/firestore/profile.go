package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileDoc struct {
	PatientID types.PatientID `firestore:"patient_id"`
	Email     string          `firestore:"email"`
	Name      string          `firestore:"name"`
	Age       int             `firestore:"age"`
	Gender    string          `firestore:"gender"`
}

type profileRepository struct {
	client *firestore.Client
}

var _ interfaces.ProfileRepository = &profileRepository{}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionProfiles)
}

func (r *profileRepository) Get(ctx context.Context, patientID types.PatientID) (*model.Profile, error) {
	doc, err := r.collection().Doc(string(patientID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("patientID", patientID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("patientID", patientID))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile")
	}

	return &model.Profile{
		PatientID: d.PatientID,
		Email:     d.Email,
		Name:      d.Name,
		Age:       d.Age,
		Gender:    d.Gender,
	}, nil
}

func (r *profileRepository) Put(ctx context.Context, profile *model.Profile) error {
	doc := &profileDoc{
		PatientID: profile.PatientID,
		Email:     profile.Email,
		Name:      profile.Name,
		Age:       profile.Age,
		Gender:    profile.Gender,
	}
	if _, err := r.collection().Doc(string(profile.PatientID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("patientID", profile.PatientID))
	}
	return nil
}
