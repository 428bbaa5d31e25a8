package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-lab/rostersync/pkg/domain/interfaces"
	"github.com/campus-lab/rostersync/pkg/service/slack"
)

// Slack holds CLI flags for the completion notification
type Slack struct {
	notify   bool
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack configuration
func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "notify",
			Usage:       "Send a completion notification after each run",
			Category:    "Slack",
			Sources:     cli.EnvVars("ROSTERSYNC_NOTIFY"),
			Destination: &x.notify,
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for the completion notification",
			Category:    "Slack",
			Sources:     cli.EnvVars("ROSTERSYNC_SLACK_BOT_TOKEN"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel receiving the completion notification",
			Category:    "Slack",
			Sources:     cli.EnvVars("ROSTERSYNC_SLACK_CHANNEL"),
			Destination: &x.channel,
		},
	}
}

// LogValue returns the Slack configuration for structured logging without
// exposing the token
func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("notify", x.notify),
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
	)
}

// Configure builds the notifier. Unless notification is enabled runs complete
// silently and nil is returned.
func (x *Slack) Configure() (interfaces.Notifier, error) {
	if !x.notify {
		return nil, nil
	}
	if x.botToken == "" {
		return nil, goerr.New("slack-bot-token is required when notify is enabled")
	}
	if x.channel == "" {
		return nil, goerr.New("slack-channel is required when notify is enabled")
	}
	return slack.New(x.botToken, x.channel)
}
