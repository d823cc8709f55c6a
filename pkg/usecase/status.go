package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
	"github.com/m-mizutani/prbuild/pkg/utils/async"
	"github.com/m-mizutani/prbuild/pkg/utils/errs"
)

// CheckStatus queries the build engine for a single build
func (uc *buildUseCase) CheckStatus(ctx context.Context, buildID string) (*model.BuildRecord, error) {
	if buildID == "" {
		return nil, goerr.New("build ID is empty", goerr.T(model.ErrTagBuildLookup))
	}

	records, err := uc.engine.QueryBuilds(ctx, []string{buildID})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query build",
			goerr.V("build_id", buildID),
			goerr.T(model.ErrTagBuildLookup),
		)
	}
	if len(records) == 0 {
		return nil, goerr.New("build not found",
			goerr.V("build_id", buildID),
			goerr.T(model.ErrTagBuildLookup),
		)
	}

	ctxlog.From(ctx).Debug("Build status checked", "build_id", buildID, "status", records[0].BuildStatus)
	return records[0], nil
}

// Reconcile publishes the commit status that corresponds to the build status.
// A failed publish is not retried; the next poll cycle publishes again.
func (uc *buildUseCase) Reconcile(ctx context.Context, prBuild *model.PRBuild) error {
	if prBuild == nil || prBuild.PullRequest == nil || prBuild.Build == nil {
		return goerr.New("pull_request and build are required", goerr.T(model.ErrTagInvalidRequest))
	}

	pr := prBuild.PullRequest
	build := prBuild.Build
	state := model.CommitStateOf(build.BuildStatus)

	status := &model.CommitStatus{
		Owner:       pr.GetBase().GetRepo().GetOwner().GetLogin(),
		Repo:        pr.GetBase().GetRepo().GetName(),
		SHA:         pr.GetHead().GetSHA(),
		State:       state,
		Context:     model.StatusContext,
		Description: fmt.Sprintf("Build %s...", build.BuildStatus),
	}
	if build.ID != "" {
		status.TargetURL = consoleURL(uc.region, build.ID)
	}

	logger := ctxlog.From(ctx).With(
		"owner", status.Owner,
		"repo", status.Repo,
		"sha", status.SHA,
		"build_id", build.ID,
		"build_status", build.BuildStatus,
		"state", state,
	)

	if err := uc.session.Ensure(ctx); err != nil {
		return err
	}

	if err := uc.publisher.CreateStatus(ctx, status); err != nil {
		logger.Warn("Failed to publish build status", "error", err)
		return goerr.Wrap(err, "failed to publish build status", goerr.T(model.ErrTagStatusPublish))
	}
	logger.Info("Build status published")

	if uc.notifier != nil && build.BuildStatus.IsTerminal() {
		ctx = ctxlog.With(ctx, logger)
		if uc.syncNotify {
			if err := uc.notifier.NotifyBuild(ctx, prBuild, state); err != nil {
				errs.Handle(ctx, "failed to notify build result", err)
			}
		} else {
			async.Dispatch(ctx, func(ctx context.Context) error {
				return uc.notifier.NotifyBuild(ctx, prBuild, state)
			})
		}
	}

	return nil
}
