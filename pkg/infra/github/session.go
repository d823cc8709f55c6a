package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

var _ interfaces.CredentialSession = (*Session)(nil)

// Session lazily establishes basic-auth credentials for the GitHub API and
// keeps them for the life of the process. Credentials are never refreshed.
type Session struct {
	secrets     interfaces.SecretFetcher
	usernameKey string
	tokenKey    string
	baseURL     *url.URL
	transport   http.RoundTripper

	mu     sync.Mutex
	state  model.CredentialState
	client *github.Client
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithBaseURL sets the REST API base URL, e.g. "https://ghe.example.com/api/v3/"
func WithBaseURL(u *url.URL) SessionOption {
	return func(s *Session) {
		copied := *u
		if !strings.HasSuffix(copied.Path, "/") {
			copied.Path += "/"
		}
		s.baseURL = &copied
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(tp http.RoundTripper) SessionOption {
	return func(s *Session) {
		s.transport = tp
	}
}

// NewSession creates a Session in the unset state. usernameKey and tokenKey
// are the secret names of the GitHub username and access token.
func NewSession(secrets interfaces.SecretFetcher, usernameKey, tokenKey string, opts ...SessionOption) *Session {
	s := &Session{
		secrets:     secrets,
		usernameKey: usernameKey,
		tokenKey:    tokenKey,
		transport:   http.DefaultTransport,
		state:       model.CredentialUnset,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure fetches the username and then the token, and installs them into the
// GitHub client. Concurrent callers block until the first one finishes, so
// the fetch sequence runs once. A failed attempt leaves the session unset.
func (s *Session) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == model.CredentialSet {
		return nil
	}

	username, err := s.secrets.Fetch(ctx, s.usernameKey)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch GitHub username",
			goerr.V("key", s.usernameKey),
			goerr.T(model.ErrTagCredentialSetup),
		)
	}

	token, err := s.secrets.Fetch(ctx, s.tokenKey)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch GitHub access token",
			goerr.V("key", s.tokenKey),
			goerr.T(model.ErrTagCredentialSetup),
		)
	}

	s.client = s.newClient(&model.Credentials{Username: username, Password: token})
	s.state = model.CredentialSet

	ctxlog.From(ctx).Info("GitHub credentials established", "username", username)
	return nil
}

// State returns whether credentials have been established
func (s *Session) State() model.CredentialState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// githubClient returns the authenticated client, or nil while unset
func (s *Session) githubClient() *github.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// newClient builds the transport stack:
//  1. go-github-ratelimit (sleeps on secondary rate limits)
//  2. basic auth with the access token as password
//  3. go-github
func (s *Session) newClient(cred *model.Credentials) *github.Client {
	rateLimited := github_ratelimit.NewClient(s.transport)
	auth := &github.BasicAuthTransport{
		Username:  cred.Username,
		Password:  cred.Password,
		Transport: rateLimited.Transport,
	}

	client := github.NewClient(auth.Client())
	if s.baseURL != nil {
		client.BaseURL = s.baseURL
	}
	return client
}
