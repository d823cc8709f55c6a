package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
}

// NewNotifier creates a Notifier that posts to a Slack incoming webhook
func NewNotifier(webhookURL string) interfaces.Notifier {
	return &notifier{webhookURL: webhookURL}
}

var stateColors = map[model.CommitState]string{
	model.CommitStateSuccess: "good",
	model.CommitStateFailure: "danger",
	model.CommitStateError:   "warning",
}

// NotifyBuild posts a summary of a finished build
func (n *notifier) NotifyBuild(ctx context.Context, pr *model.PRBuild, state model.CommitState) error {
	owner := pr.PullRequest.GetBase().GetRepo().GetOwner().GetLogin()
	repo := pr.PullRequest.GetBase().GetRepo().GetName()
	number := pr.PullRequest.GetNumber()

	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("Build %s for %s/%s#%d", pr.Build.BuildStatus, owner, repo, number),
		Attachments: []slack.Attachment{
			{
				Color:     stateColors[state],
				Title:     pr.PullRequest.GetTitle(),
				TitleLink: pr.PullRequest.GetHTMLURL(),
				Fields: []slack.AttachmentField{
					{Title: "State", Value: string(state), Short: true},
					{Title: "Commit", Value: pr.PullRequest.GetHead().GetSHA(), Short: true},
					{Title: "Build", Value: pr.Build.ID},
				},
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("repo", owner+"/"+repo),
			goerr.V("number", number),
		)
	}
	return nil
}
