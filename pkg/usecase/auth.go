package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- X-Hub-Signature is defined as HMAC-SHA1
	"encoding/hex"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

const signaturePrefix = "sha1="

type authenticator struct {
	secrets   interfaces.SecretFetcher
	secretKey string
}

// NewAuthenticator creates an Authenticator that verifies X-Hub-Signature
// with the webhook secret stored under secretKey
func NewAuthenticator(secrets interfaces.SecretFetcher, secretKey string) interfaces.Authenticator {
	return &authenticator{
		secrets:   secrets,
		secretKey: secretKey,
	}
}

// Authenticate verifies signature over body. body must be the bytes exactly as
// received; a re-encoded payload will not match.
func (a *authenticator) Authenticate(ctx context.Context, body []byte, signature string) error {
	if signature == "" {
		return goerr.New("missing X-Hub-Signature header", goerr.T(model.ErrTagAuthentication))
	}

	secret, err := a.secrets.Fetch(ctx, a.secretKey)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch webhook secret",
			goerr.V("key", a.secretKey),
			goerr.T(model.ErrTagSecretUnavailable),
		)
	}

	expected := SignPayload(secret, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return goerr.New("webhook signature mismatch", goerr.T(model.ErrTagAuthentication))
	}

	return nil
}

// SignPayload returns the X-Hub-Signature value of body, "sha1=<hex digest>"
func SignPayload(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
