package notify

import (
	"context"

	"github.com/freundlier/intake/pkg/domain/model"
)

// Service delivers crisis alerts to the on-call clinical team
type Service interface {
	// NotifyCrisis posts a crisis alert for immediate clinician attention
	NotifyCrisis(ctx context.Context, alert *model.Alert) error
}

// Discard is a Service that drops all notifications. Used in development
// mode when no Slack token is configured.
type Discard struct{}

func (Discard) NotifyCrisis(ctx context.Context, alert *model.Alert) error {
	return nil
}
