package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File is the optional TOML configuration file. Its values apply only to
// settings that were not given by flag or environment variable.
type File struct {
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`

	Build struct {
		Project string `toml:"project"`
		Region  string `toml:"region"`
	} `toml:"build"`

	Secret struct {
		Backend          string `toml:"backend"`
		WebhookSecretKey string `toml:"webhook_secret_key"`
		UsernameKey      string `toml:"username_key"`
		TokenKey         string `toml:"token_key"`
	} `toml:"secret"`

	GitHub struct {
		APIURL string `toml:"api_url"`
	} `toml:"github"`

	Sentry struct {
		DSN string `toml:"dsn" masq:"secret"`
		Env string `toml:"env"`
	} `toml:"sentry"`

	Slack struct {
		WebhookURL string `toml:"webhook_url" masq:"secret"`
	} `toml:"slack"`
}

type override struct {
	flag  string
	dst   *string
	value string
}

type fileOverlay interface {
	overlay(f *File) []override
}

// ConfigFile holds the path of the configuration file
type ConfigFile struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *ConfigFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("PRBUILD_CONFIG"),
		},
	}
}

// Load reads the configuration file. It returns an empty File when no path is set.
func (c *ConfigFile) Load() (*File, error) {
	if c.Path == "" {
		return &File{}, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}
	return &f, nil
}

// Apply copies file values into targets for every setting whose flag was
// not set on cmd
func (f *File) Apply(cmd *cli.Command, targets ...fileOverlay) {
	for _, target := range targets {
		for _, o := range target.overlay(f) {
			if o.value == "" || cmd.IsSet(o.flag) {
				continue
			}
			*o.dst = o.value
		}
	}
}
