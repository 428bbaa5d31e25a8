// Package slack delivers the end-of-run notification to a Slack channel.
package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/campus-lab/rostersync/pkg/domain/interfaces"
	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// client implements interfaces.Notifier
type client struct {
	api     *slack.Client
	channel string
}

var _ interfaces.Notifier = &client{}

// New creates a new Slack notifier posting to the given channel with the
// provided bot token
func New(token, channel string) (interfaces.Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return &client{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

// NotifyRunCompleted posts the run summary to the configured channel
func (c *client) NotifyRunCompleted(ctx context.Context, report *model.Report, auditLogPath string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionText(report.Summary(auditLogPath), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post run notification", goerr.V("channel", c.channel))
	}
	return nil
}
