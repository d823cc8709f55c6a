package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

var _ interfaces.StatusPublisher = (*StatusClient)(nil)

// StatusClient publishes commit statuses with the credentials of a Session
type StatusClient struct {
	session *Session
}

// NewStatusClient creates a StatusClient. session must be ensured before
// CreateStatus is called.
func NewStatusClient(session *Session) *StatusClient {
	return &StatusClient{session: session}
}

// CreateStatus creates a commit status on status.SHA
func (c *StatusClient) CreateStatus(ctx context.Context, status *model.CommitStatus) error {
	client := c.session.githubClient()
	if client == nil {
		return goerr.New("GitHub credentials are not established",
			goerr.T(model.ErrTagCredentialSetup),
		)
	}

	repoStatus := &github.RepoStatus{
		State:       github.Ptr(string(status.State)),
		Context:     github.Ptr(status.Context),
		Description: github.Ptr(status.Description),
	}
	if status.TargetURL != "" {
		repoStatus.TargetURL = github.Ptr(status.TargetURL)
	}

	if _, _, err := client.Repositories.CreateStatus(ctx, status.Owner, status.Repo, status.SHA, repoStatus); err != nil {
		return goerr.Wrap(err, "failed to create commit status",
			goerr.V("owner", status.Owner),
			goerr.V("repo", status.Repo),
			goerr.V("sha", status.SHA),
			goerr.V("state", status.State),
			goerr.T(model.ErrTagStatusPublish),
		)
	}

	return nil
}
