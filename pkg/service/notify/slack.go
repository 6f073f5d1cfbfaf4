package notify

import (
	"context"
	"fmt"

	"github.com/freundlier/intake/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// slackClient posts crisis alerts to a fixed clinic channel
type slackClient struct {
	api       *slack.Client
	channelID string
}

var _ Service = &slackClient{}

// NewSlack creates a Slack-backed notification service
func NewSlack(token, channelID string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	return &slackClient{
		api:       slack.New(token),
		channelID: channelID,
	}, nil
}

func (c *slackClient) NotifyCrisis(ctx context.Context, alert *model.Alert) error {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "🚨 Crisis alert", false, false),
	)
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Patient ID:*\n%s", alert.PatientID), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Severity:*\n%s", alert.Severity), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Detected at:*\n%s", alert.CreatedAt.Format("2006-01-02 15:04:05 MST")), false, false),
	}
	section := slack.NewSectionBlock(nil, fields, nil)
	message := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Triggering message:*\n>%s", alert.TriggerMessage), false, false),
		nil, nil,
	)

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(header, section, message),
		slack.MsgOptionText(fmt.Sprintf("Crisis alert for patient %s", alert.PatientID), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post crisis alert to Slack",
			goerr.V("channelID", c.channelID),
			goerr.V("patientID", alert.PatientID),
		)
	}

	return nil
}
