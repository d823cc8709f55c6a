package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/cli/config"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/infra/codebuild"
	githubinfra "github.com/m-mizutani/prbuild/pkg/infra/github"
	"github.com/m-mizutani/prbuild/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// buildConfig is the configuration shared by every command that drives builds
type buildConfig struct {
	build  config.Build
	secret config.Secret
	github config.GitHub
	sentry config.Sentry
	slack  config.Slack
}

func (x *buildConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.build.Flags()...)
	flags = append(flags, x.secret.Flags()...)
	flags = append(flags, x.github.Flags()...)
	flags = append(flags, x.sentry.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

func (x *buildConfig) applyFile(c *cli.Command, f *config.File) {
	f.Apply(c, &x.build, &x.secret, &x.github, &x.sentry, &x.slack)
}

// newBuildUseCase wires the secret store, credential session, status client
// and build engine into a BuildUseCase. The returned Authenticator verifies
// bodies signed with the webhook secret.
func (x *buildConfig) newBuildUseCase(ctx context.Context, extra ...usecase.BuildOption) (interfaces.BuildUseCase, interfaces.Authenticator, error) {
	if err := x.build.Validate(); err != nil {
		return nil, nil, err
	}

	if _, err := x.sentry.Configure(); err != nil {
		return nil, nil, err
	}

	awsCfg, err := x.build.AWSConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	secrets, err := x.secret.NewFetcher(awsCfg)
	if err != nil {
		return nil, nil, err
	}

	session, err := x.github.NewSession(secrets, x.secret.UsernameKey, x.secret.TokenKey)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create GitHub session")
	}

	var opts []usecase.BuildOption
	if notifier := x.slack.NewNotifier(); notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}
	opts = append(opts, extra...)

	auth := usecase.NewAuthenticator(secrets, x.secret.WebhookSecretKey)
	return usecase.NewBuild(
		auth,
		session,
		githubinfra.NewStatusClient(session),
		codebuild.NewClient(awsCfg),
		x.build.Project,
		x.build.Region,
		opts...,
	), auth, nil
}
