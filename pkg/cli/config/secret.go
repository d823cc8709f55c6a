package config

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/infra/envsecret"
	"github.com/m-mizutani/prbuild/pkg/infra/ssm"
	"github.com/urfave/cli/v3"
)

const (
	SecretBackendSSM = "ssm"
	SecretBackendEnv = "env"
)

// Secret holds secret store configuration and the names of the secrets
type Secret struct {
	Backend          string
	WebhookSecretKey string
	UsernameKey      string
	TokenKey         string
}

// Flags returns CLI flags for secret configuration
func (c *Secret) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "secret-backend",
			Usage:       "Secret store (ssm, env)",
			Value:       SecretBackendSSM,
			Destination: &c.Backend,
			Sources:     cli.EnvVars("PRBUILD_SECRET_BACKEND"),
		},
		&cli.StringFlag{
			Name:        "secret-webhook-key",
			Usage:       "Name of the GitHub webhook secret in the secret store",
			Value:       "/prbuild/github/webhook-secret",
			Destination: &c.WebhookSecretKey,
			Sources:     cli.EnvVars("PRBUILD_SECRET_WEBHOOK_KEY"),
		},
		&cli.StringFlag{
			Name:        "secret-username-key",
			Usage:       "Name of the GitHub username in the secret store",
			Value:       "/prbuild/github/username",
			Destination: &c.UsernameKey,
			Sources:     cli.EnvVars("PRBUILD_SECRET_USERNAME_KEY"),
		},
		&cli.StringFlag{
			Name:        "secret-token-key",
			Usage:       "Name of the GitHub access token in the secret store",
			Value:       "/prbuild/github/token",
			Destination: &c.TokenKey,
			Sources:     cli.EnvVars("PRBUILD_SECRET_TOKEN_KEY"),
		},
	}
}

func (c *Secret) overlay(f *File) []override {
	return []override{
		{flag: "secret-backend", dst: &c.Backend, value: f.Secret.Backend},
		{flag: "secret-webhook-key", dst: &c.WebhookSecretKey, value: f.Secret.WebhookSecretKey},
		{flag: "secret-username-key", dst: &c.UsernameKey, value: f.Secret.UsernameKey},
		{flag: "secret-token-key", dst: &c.TokenKey, value: f.Secret.TokenKey},
	}
}

// NewFetcher creates the configured SecretFetcher
func (c *Secret) NewFetcher(awsCfg aws.Config) (interfaces.SecretFetcher, error) {
	switch c.Backend {
	case SecretBackendSSM:
		return ssm.NewClient(awsCfg), nil
	case SecretBackendEnv:
		return envsecret.New(), nil
	default:
		return nil, goerr.New("unknown secret backend", goerr.V("backend", c.Backend))
	}
}
