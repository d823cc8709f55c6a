package envsecret

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

type fetcher struct{}

// New returns a SecretFetcher that reads secrets from environment variables,
// using the secret name as the variable name.
func New() interfaces.SecretFetcher {
	return &fetcher{}
}

func (f *fetcher) Fetch(ctx context.Context, name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", goerr.New("secret not found in environment",
			goerr.V("name", name),
			goerr.T(model.ErrTagSecretUnavailable),
		)
	}
	return value, nil
}
