package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/freundlier/intake/pkg/domain/interfaces"
	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/freundlier/intake/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func runAlertRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create sets ID and CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		patientID := newPatientID()

		alert, err := repo.Alert().Create(ctx, &model.Alert{
			PatientID:      patientID,
			Severity:       types.SeverityHigh,
			TriggerMessage: "mujhe marne ka khayal aata hai",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, alert.ID == "").Equal(false)
		gt.Value(t, alert.CreatedAt.IsZero()).Equal(false)
		gt.Value(t, alert.Severity).Equal(types.SeverityHigh)
	})

	t.Run("ListByPatientID returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		patientID := newPatientID()

		first, err := repo.Alert().Create(ctx, &model.Alert{
			PatientID: patientID,
			Severity:  types.SeverityHigh,
		})
		gt.NoError(t, err).Required()
		time.Sleep(time.Millisecond)
		second, err := repo.Alert().Create(ctx, &model.Alert{
			PatientID: patientID,
			Severity:  types.SeverityHigh,
		})
		gt.NoError(t, err).Required()

		alerts, err := repo.Alert().ListByPatientID(ctx, patientID)
		gt.NoError(t, err).Required()
		gt.Array(t, alerts).Length(2)
		gt.Value(t, alerts[0].ID).Equal(second.ID)
		gt.Value(t, alerts[1].ID).Equal(first.ID)
	})

	t.Run("ListByPatientID returns empty for unknown patient", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		alerts, err := repo.Alert().ListByPatientID(ctx, newPatientID())
		gt.NoError(t, err).Required()
		gt.Array(t, alerts).Length(0)
	})
}

func TestMemoryAlertRepository(t *testing.T) {
	runAlertRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreAlertRepository(t *testing.T) {
	runAlertRepositoryTest(t, newFirestoreRepository)
}
