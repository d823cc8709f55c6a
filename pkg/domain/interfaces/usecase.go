package interfaces

import (
	"context"

	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// Authenticator verifies webhook deliveries
type Authenticator interface {
	// Authenticate checks signature against the exact bytes of body
	Authenticate(ctx context.Context, body []byte, signature string) error
}

// BuildUseCase drives a pull request through its build lifecycle
type BuildUseCase interface {
	// StartBuild authenticates a webhook event and starts a build for its pull request
	StartBuild(ctx context.Context, event *model.WebhookEvent) (*model.PRBuild, error)

	// CheckStatus returns the current record of a build
	CheckStatus(ctx context.Context, buildID string) (*model.BuildRecord, error)

	// Reconcile publishes the commit status matching the build's status
	Reconcile(ctx context.Context, prBuild *model.PRBuild) error
}
