package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Build holds build engine configuration
type Build struct {
	Project string
	Region  string
}

// Flags returns CLI flags for build configuration
func (c *Build) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "build-project",
			Usage:       "CodeBuild project to build pull requests with",
			Destination: &c.Project,
			Sources:     cli.EnvVars("PRBUILD_BUILD_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "aws-region",
			Usage:       "AWS region of the CodeBuild project, also used for console links",
			Destination: &c.Region,
			Sources:     cli.EnvVars("PRBUILD_AWS_REGION", "AWS_REGION"),
		},
	}
}

func (c *Build) overlay(f *File) []override {
	return []override{
		{flag: "build-project", dst: &c.Project, value: f.Build.Project},
		{flag: "aws-region", dst: &c.Region, value: f.Build.Region},
	}
}

// Validate checks that required values are present
func (c *Build) Validate() error {
	if c.Project == "" {
		return goerr.New("build project is required (--build-project or PRBUILD_BUILD_PROJECT)")
	}
	if c.Region == "" {
		return goerr.New("AWS region is required (--aws-region or PRBUILD_AWS_REGION)")
	}
	return nil
}

// AWSConfig loads the default AWS configuration for the configured region
func (c *Build) AWSConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Region))
	if err != nil {
		return aws.Config{}, goerr.Wrap(err, "failed to load AWS config", goerr.V("region", c.Region))
	}
	return cfg, nil
}
