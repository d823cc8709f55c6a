package config

import (
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/prbuild/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	APIURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL, e.g. https://ghe.example.com/api/v3/ (default: api.github.com)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("PRBUILD_GITHUB_API_URL"),
		},
	}
}

func (c *GitHub) overlay(f *File) []override {
	return []override{
		{flag: "github-api-url", dst: &c.APIURL, value: f.GitHub.APIURL},
	}
}

// NewSession creates a credential session that reads the username and token
// from secrets
func (c *GitHub) NewSession(secrets interfaces.SecretFetcher, usernameKey, tokenKey string) (*githubinfra.Session, error) {
	var opts []githubinfra.SessionOption
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", c.APIURL))
		}
		opts = append(opts, githubinfra.WithBaseURL(u))
	}

	return githubinfra.NewSession(secrets, usernameKey, tokenKey, opts...), nil
}
