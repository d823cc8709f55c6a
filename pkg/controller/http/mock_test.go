package http_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// mockBuildUseCase is a mock implementation of BuildUseCase
type mockBuildUseCase struct {
	startBuildFunc  func(ctx context.Context, event *model.WebhookEvent) (*model.PRBuild, error)
	checkStatusFunc func(ctx context.Context, buildID string) (*model.BuildRecord, error)
	reconcileFunc   func(ctx context.Context, prBuild *model.PRBuild) error

	events     []*model.WebhookEvent
	checkedIDs []string
	reconciled []*model.PRBuild
}

func (m *mockBuildUseCase) StartBuild(ctx context.Context, event *model.WebhookEvent) (*model.PRBuild, error) {
	m.events = append(m.events, event)
	if m.startBuildFunc != nil {
		return m.startBuildFunc(ctx, event)
	}
	return nil, goerr.New("mock not configured")
}

func (m *mockBuildUseCase) CheckStatus(ctx context.Context, buildID string) (*model.BuildRecord, error) {
	m.checkedIDs = append(m.checkedIDs, buildID)
	if m.checkStatusFunc != nil {
		return m.checkStatusFunc(ctx, buildID)
	}
	return nil, goerr.New("mock not configured")
}

func (m *mockBuildUseCase) Reconcile(ctx context.Context, prBuild *model.PRBuild) error {
	m.reconciled = append(m.reconciled, prBuild)
	if m.reconcileFunc != nil {
		return m.reconcileFunc(ctx, prBuild)
	}
	return nil
}

// collaborators for wiring the real use case behind the server

type staticSecrets map[string]string

func (s staticSecrets) Fetch(ctx context.Context, name string) (string, error) {
	v, ok := s[name]
	if !ok {
		return "", goerr.New("no such secret", goerr.T(model.ErrTagSecretUnavailable))
	}
	return v, nil
}

type noopSession struct{}

func (noopSession) Ensure(ctx context.Context) error { return nil }
func (noopSession) State() model.CredentialState    { return model.CredentialSet }

type recordingPublisher struct {
	mu       sync.Mutex
	statuses []model.CommitStatus
}

func (p *recordingPublisher) CreateStatus(ctx context.Context, status *model.CommitStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = append(p.statuses, *status)
	return nil
}

type fakeEngine struct {
	mu      sync.Mutex
	started []*model.BuildRequest
}

func (e *fakeEngine) StartBuild(ctx context.Context, req *model.BuildRequest) (*model.BuildRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = append(e.started, req)
	return &model.BuildRecord{ID: "widgets-ci:b-7", BuildStatus: model.BuildStatusInProgress, SourceVersion: req.SourceVersion}, nil
}

func (e *fakeEngine) QueryBuilds(ctx context.Context, ids []string) ([]*model.BuildRecord, error) {
	return []*model.BuildRecord{{ID: ids[0], BuildStatus: model.BuildStatusFailed, SourceVersion: "pr/42"}}, nil
}
