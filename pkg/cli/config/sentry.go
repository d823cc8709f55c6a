package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN; errors are reported when set",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("PRBUILD_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "default",
			Destination: &c.Env,
			Sources:     cli.EnvVars("PRBUILD_SENTRY_ENV"),
		},
	}
}

func (c *Sentry) overlay(f *File) []override {
	return []override{
		{flag: "sentry-dsn", dst: &c.DSN, value: f.Sentry.DSN},
		{flag: "sentry-env", dst: &c.Env, value: f.Sentry.Env},
	}
}

// Configure initializes the Sentry client. It reports whether Sentry is enabled.
func (c *Sentry) Configure() (bool, error) {
	if c.DSN == "" {
		return false, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.Version,
	}); err != nil {
		return false, goerr.Wrap(err, "failed to initialize sentry")
	}
	return true, nil
}
