package model

import (
	"time"

	"github.com/freundlier/intake/pkg/domain/types"
	"github.com/google/uuid"
)

// AlertID is a UUID-based identifier for Alert
type AlertID string

// NewAlertID generates a new UUID v4 AlertID
func NewAlertID() AlertID {
	return AlertID(uuid.New().String())
}

// Alert records a confirmed psychiatric emergency detection. Exactly one
// alert is created per confirmed detection; alerts are never updated or
// deleted.
type Alert struct {
	ID             AlertID
	PatientID      types.PatientID
	Severity       types.Severity
	TriggerMessage string `masq:"secret"`
	CreatedAt      time.Time
}
