package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/cli/config"
	controller "github.com/m-mizutani/prbuild/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

func cmdServe(fileCfg *config.ConfigFile) *cli.Command {
	var (
		serverCfg config.Server
		buildCfg  buildConfig
	)

	flags := append(serverCfg.Flags(), buildCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			f, err := fileCfg.Load()
			if err != nil {
				return err
			}
			f.Apply(c, &serverCfg)
			buildCfg.applyFile(c, f)

			buildUC, auth, err := buildCfg.newBuildUseCase(ctx)
			if err != nil {
				return err
			}

			logger.Info("Starting prbuild server",
				slog.String("addr", serverCfg.Addr),
				slog.String("project", buildCfg.build.Project),
				slog.String("region", buildCfg.build.Region),
				slog.String("secret_backend", buildCfg.secret.Backend),
			)

			server, err := controller.NewServer(
				ctx,
				buildUC,
				auth,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
