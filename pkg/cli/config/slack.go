package config

import (
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	slackinfra "github.com/m-mizutani/prbuild/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds build notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for finished build notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("PRBUILD_SLACK_WEBHOOK_URL"),
		},
	}
}

func (c *Slack) overlay(f *File) []override {
	return []override{
		{flag: "slack-webhook-url", dst: &c.WebhookURL, value: f.Slack.WebhookURL},
	}
}

// NewNotifier returns a Slack notifier, or nil when no webhook URL is configured
func (c *Slack) NewNotifier() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slackinfra.NewNotifier(c.WebhookURL)
}
