package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/cli/config"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
	"github.com/m-mizutani/prbuild/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// checkBuildOptions apply to the one-shot check run; the process exits right
// after Reconcile so notifications must not be left in the background
var checkBuildOptions = []usecase.BuildOption{
	usecase.WithSyncNotification(),
}

func cmdCheck(fileCfg *config.ConfigFile) *cli.Command {
	var (
		input    string
		buildCfg buildConfig
	)

	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "PRBuild JSON document to check, '-' for stdin",
			Value:       "-",
			Destination: &input,
			Sources:     cli.EnvVars("PRBUILD_CHECK_INPUT"),
		},
	}, buildCfg.Flags()...)

	return &cli.Command{
		Name:  "check",
		Usage: "Poll a started build and publish its status to GitHub",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = ctxlog.With(ctx, ctxlog.From(ctx).With(slog.String("run_id", uuid.NewString())))

			f, err := fileCfg.Load()
			if err != nil {
				return err
			}
			buildCfg.applyFile(c, f)

			in, closer, err := openInput(input, c.Reader)
			if err != nil {
				return err
			}
			defer closer()

			buildUC, _, err := buildCfg.newBuildUseCase(ctx, checkBuildOptions...)
			if err != nil {
				return err
			}

			return runCheck(ctx, buildUC, in, writerOr(c.Writer, os.Stdout), writerOr(c.ErrWriter, os.Stderr))
		},
	}
}

// runCheck reads a PRBuild document, refreshes its build record, publishes
// the commit status and writes the updated document to out
func runCheck(ctx context.Context, buildUC interfaces.BuildUseCase, in io.Reader, out, errOut io.Writer) error {
	var prBuild model.PRBuild
	if err := json.NewDecoder(in).Decode(&prBuild); err != nil {
		return goerr.Wrap(err, "failed to decode PRBuild document")
	}
	if prBuild.Build == nil || prBuild.Build.ID == "" {
		return goerr.New("build.id is required")
	}

	record, err := buildUC.CheckStatus(ctx, prBuild.Build.ID)
	if err != nil {
		return err
	}
	prBuild.Build = record

	if err := buildUC.Reconcile(ctx, &prBuild); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&prBuild); err != nil {
		return goerr.Wrap(err, "failed to write PRBuild document")
	}

	state := model.CommitStateOf(record.BuildStatus)
	stateColor(state).Fprintf(errOut, "%-8s", state)
	fmt.Fprintf(errOut, " %s %s\n", record.ID, record.BuildStatus)
	return nil
}

func stateColor(state model.CommitState) *color.Color {
	switch state {
	case model.CommitStateSuccess:
		return color.New(color.FgGreen, color.Bold)
	case model.CommitStateFailure, model.CommitStateError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow)
	}
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return stdin, func() {}, nil
	}

	fd, err := os.Open(path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open input", goerr.V("path", path))
	}
	return fd, func() { _ = fd.Close() }, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
