package interfaces

import "context"

// SecretFetcher retrieves named secrets from a secure store
type SecretFetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}
