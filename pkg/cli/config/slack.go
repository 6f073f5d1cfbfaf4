package config

import (
	"github.com/freundlier/intake/pkg/service/notify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for crisis alert notification
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for crisis alerts",
			Sources:     cli.EnvVars("FREUNDLIER_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID for the on-call clinical team",
			Sources:     cli.EnvVars("FREUNDLIER_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// Configure creates the Slack notification service. Returns nil if Slack
// is not configured; callers fall back to a discard notifier.
func (s *Slack) Configure() (notify.Service, error) {
	if s.botToken == "" && s.channelID == "" {
		return nil, nil
	}
	if s.botToken == "" || s.channelID == "" {
		return nil, goerr.New("both slack-bot-token and slack-channel-id are required")
	}

	return notify.NewSlack(s.botToken, s.channelID)
}
