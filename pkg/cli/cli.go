package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/prbuild/pkg/cli/config"
	"github.com/m-mizutani/prbuild/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		fileCfg   config.ConfigFile
		logger    *slog.Logger
	)

	flags := append(loggerCfg.Flags(), fileCfg.Flags()...)

	app := &cli.Command{
		Name:    types.ServiceName,
		Usage:   "Build GitHub pull requests on AWS CodeBuild",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(&fileCfg),
			cmdCheck(&fileCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
