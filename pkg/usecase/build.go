package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
	"github.com/m-mizutani/prbuild/pkg/utils/errs"
)

const (
	descSettingUp = "Setting up the build..."
	descRunning   = "Build is running..."
)

type buildUseCase struct {
	auth      interfaces.Authenticator
	session   interfaces.CredentialSession
	publisher interfaces.StatusPublisher
	engine    interfaces.BuildEngine
	notifier  interfaces.Notifier

	// notify before Reconcile returns instead of in the background
	syncNotify bool

	projectName string
	region      string
}

// BuildOption configures the build use case
type BuildOption func(*buildUseCase)

// WithNotifier sets a Notifier that is told about finished builds
func WithNotifier(n interfaces.Notifier) BuildOption {
	return func(uc *buildUseCase) {
		uc.notifier = n
	}
}

// WithSyncNotification makes Reconcile deliver notifications before it
// returns. One-shot processes need this; a detached notification would be
// lost on exit.
func WithSyncNotification() BuildOption {
	return func(uc *buildUseCase) {
		uc.syncNotify = true
	}
}

// NewBuild creates a BuildUseCase that builds projectName. region is only
// used to link commit statuses to the build console.
func NewBuild(
	auth interfaces.Authenticator,
	session interfaces.CredentialSession,
	publisher interfaces.StatusPublisher,
	engine interfaces.BuildEngine,
	projectName, region string,
	opts ...BuildOption,
) interfaces.BuildUseCase {
	uc := &buildUseCase{
		auth:        auth,
		session:     session,
		publisher:   publisher,
		engine:      engine,
		projectName: projectName,
		region:      region,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// StartBuild authenticates event, records a pending status and starts a build.
// The build is never started unless the pending status has been published.
func (uc *buildUseCase) StartBuild(ctx context.Context, event *model.WebhookEvent) (*model.PRBuild, error) {
	logger := ctxlog.From(ctx)

	if err := uc.auth.Authenticate(ctx, event.RawPayload, event.Signature); err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate webhook", goerr.V("delivery_id", event.ID))
	}

	pr, err := parsePullRequest(event.RawPayload)
	if err != nil {
		return nil, goerr.Wrap(err, "event is not buildable",
			goerr.V("delivery_id", event.ID),
			goerr.V("event_type", event.Type),
		)
	}

	req := &model.BuildRequest{
		ProjectName:   uc.projectName,
		SourceVersion: model.PullRequestSourceVersion(pr.GetNumber()),
	}
	status := &model.CommitStatus{
		Owner:       pr.GetBase().GetRepo().GetOwner().GetLogin(),
		Repo:        pr.GetBase().GetRepo().GetName(),
		SHA:         pr.GetHead().GetSHA(),
		State:       model.CommitStatePending,
		Context:     model.StatusContext,
		Description: descSettingUp,
	}

	logger = logger.With(
		"owner", status.Owner,
		"repo", status.Repo,
		"number", pr.GetNumber(),
		"sha", status.SHA,
	)
	ctx = ctxlog.With(ctx, logger)
	logger.Info("Starting build for pull request", "project", req.ProjectName, "source_version", req.SourceVersion)

	if err := uc.session.Ensure(ctx); err != nil {
		return nil, err
	}

	if err := uc.publisher.CreateStatus(ctx, status); err != nil {
		return nil, goerr.Wrap(err, "failed to publish pending status, build not started",
			goerr.T(model.ErrTagStatusPublish),
		)
	}

	build, err := uc.engine.StartBuild(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start build",
			goerr.V("project", req.ProjectName),
			goerr.V("source_version", req.SourceVersion),
			goerr.T(model.ErrTagBuildStart),
		)
	}
	logger.Info("Build started", "build_id", build.ID)

	running := *status
	running.Description = descRunning
	running.TargetURL = consoleURL(uc.region, build.ID)
	if err := uc.publisher.CreateStatus(ctx, &running); err != nil {
		// The build is already running; the next reconcile overwrites the status.
		errs.Handle(ctx, "failed to publish running status", err)
	}

	return &model.PRBuild{
		PullRequest: pr,
		Build:       build,
	}, nil
}

func parsePullRequest(payload []byte) (*github.PullRequest, error) {
	var event github.PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, goerr.Wrap(err, "payload is not valid JSON", goerr.T(model.ErrTagNotBuildable))
	}

	pr := event.GetPullRequest()
	if pr == nil {
		return nil, goerr.New("payload has no pull_request", goerr.T(model.ErrTagNotBuildable))
	}

	if pr.Number == nil ||
		pr.GetHead().GetSHA() == "" ||
		pr.GetBase().GetRepo().GetOwner().GetLogin() == "" ||
		pr.GetBase().GetRepo().GetName() == "" {
		return nil, goerr.New("pull_request lacks number, head sha or base repository",
			goerr.T(model.ErrTagNotBuildable),
		)
	}

	return pr, nil
}

func consoleURL(region, buildID string) string {
	return fmt.Sprintf("https://%s.console.aws.amazon.com/codebuild/home?region=%s#/builds/%s/view/new",
		region, url.QueryEscape(region), buildID)
}
