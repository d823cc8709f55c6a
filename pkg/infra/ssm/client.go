package ssm

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// API is the subset of the SSM client used for fetching secrets
type API interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type client struct {
	api API
}

// NewClient creates a SecretFetcher backed by SSM Parameter Store.
// SecureString parameters are decrypted.
func NewClient(cfg aws.Config) interfaces.SecretFetcher {
	return NewClientWithAPI(ssm.NewFromConfig(cfg))
}

// NewClientWithAPI creates a SecretFetcher with a custom SSM API implementation
func NewClientWithAPI(api API) interfaces.SecretFetcher {
	return &client{api: api}
}

func (c *client) Fetch(ctx context.Context, name string) (string, error) {
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to get parameter",
			goerr.V("name", name),
			goerr.T(model.ErrTagSecretUnavailable),
		)
	}

	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", goerr.New("parameter has no value",
			goerr.V("name", name),
			goerr.T(model.ErrTagSecretUnavailable),
		)
	}

	return aws.ToString(out.Parameter.Value), nil
}
