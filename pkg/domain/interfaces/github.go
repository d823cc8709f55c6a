package interfaces

import (
	"context"

	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// StatusPublisher records commit statuses on the VCS
type StatusPublisher interface {
	// CreateStatus publishes status for status.SHA under status.Context
	CreateStatus(ctx context.Context, status *model.CommitStatus) error
}

// CredentialSession establishes VCS credentials once per process
type CredentialSession interface {
	// Ensure sets up credentials if they are not set yet. It is a no-op once set.
	Ensure(ctx context.Context) error
	State() model.CredentialState
}
