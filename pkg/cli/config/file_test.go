package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/prbuild/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

const sampleConfig = `
[server]
addr = "0.0.0.0:9000"

[build]
project = "from-file"
region = "ap-northeast-1"

[secret]
backend = "env"
token_key = "FILE_TOKEN"

[github]
api_url = "https://ghe.example.com/api/v3/"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prbuild.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestConfigFile_Apply(t *testing.T) {
	var (
		fileCfg   config.ConfigFile
		serverCfg config.Server
		buildCfg  config.Build
		secretCfg config.Secret
		githubCfg config.GitHub
	)

	var flags []cli.Flag
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, buildCfg.Flags()...)
	flags = append(flags, secretCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)

	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := fileCfg.Load()
			if err != nil {
				return err
			}
			f.Apply(c, &serverCfg, &buildCfg, &secretCfg, &githubCfg)
			return nil
		},
	}

	path := writeConfig(t, sampleConfig)
	gt.NoError(t, cmd.Run(context.Background(), []string{
		"test",
		"--config", path,
		"--build-project", "from-flag",
	}))

	// flag wins over file
	gt.Equal(t, buildCfg.Project, "from-flag")

	gt.Equal(t, serverCfg.Addr, "0.0.0.0:9000")
	gt.Equal(t, buildCfg.Region, "ap-northeast-1")
	gt.Equal(t, secretCfg.Backend, "env")
	gt.Equal(t, secretCfg.TokenKey, "FILE_TOKEN")
	gt.Equal(t, githubCfg.APIURL, "https://ghe.example.com/api/v3/")

	// keys absent from the file keep their defaults
	gt.Equal(t, secretCfg.UsernameKey, "/prbuild/github/username")
}

func TestConfigFile_Load(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		f, err := (&config.ConfigFile{}).Load()
		gt.NoError(t, err)
		gt.NotNil(t, f)
		gt.Equal(t, f.Build.Project, "")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&config.ConfigFile{Path: filepath.Join(t.TempDir(), "nope.toml")}).Load()
		gt.Error(t, err)
	})

	t.Run("broken toml", func(t *testing.T) {
		path := writeConfig(t, "[build\nproject =")
		_, err := (&config.ConfigFile{Path: path}).Load()
		gt.Error(t, err)
	})
}
