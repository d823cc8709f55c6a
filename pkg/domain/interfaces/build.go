package interfaces

import (
	"context"

	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// BuildEngine is the job runner that executes builds
type BuildEngine interface {
	// StartBuild starts a build and returns the engine's record of it
	StartBuild(ctx context.Context, req *model.BuildRequest) (*model.BuildRecord, error)

	// QueryBuilds returns records for the given build IDs
	QueryBuilds(ctx context.Context, ids []string) ([]*model.BuildRecord, error)
}

// Notifier announces finished builds to humans
type Notifier interface {
	NotifyBuild(ctx context.Context, pr *model.PRBuild, state model.CommitState) error
}
