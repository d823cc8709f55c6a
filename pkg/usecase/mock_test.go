package usecase_test

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// callLog records calls across mocks so that tests can assert ordering
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.calls...)
}

type mockSecrets struct {
	values map[string]string
}

func (m *mockSecrets) Fetch(ctx context.Context, name string) (string, error) {
	v, ok := m.values[name]
	if !ok {
		return "", goerr.New("no such secret", goerr.V("name", name), goerr.T(model.ErrTagSecretUnavailable))
	}
	return v, nil
}

type mockSession struct {
	log       *callLog
	ensureErr error
	state     model.CredentialState
}

func (m *mockSession) Ensure(ctx context.Context) error {
	m.log.add("ensure")
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.state = model.CredentialSet
	return nil
}

func (m *mockSession) State() model.CredentialState {
	return m.state
}

type mockPublisher struct {
	log        *callLog
	createFunc func(ctx context.Context, status *model.CommitStatus) error

	mu       sync.Mutex
	statuses []model.CommitStatus
}

func (m *mockPublisher) CreateStatus(ctx context.Context, status *model.CommitStatus) error {
	m.log.add("publish:" + string(status.State) + ":" + status.Description)
	m.mu.Lock()
	m.statuses = append(m.statuses, *status)
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, status)
	}
	return nil
}

func (m *mockPublisher) published() []model.CommitStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.CommitStatus{}, m.statuses...)
}

type mockEngine struct {
	log        *callLog
	startFunc  func(ctx context.Context, req *model.BuildRequest) (*model.BuildRecord, error)
	queryFunc  func(ctx context.Context, ids []string) ([]*model.BuildRecord, error)
	startCalls []*model.BuildRequest
	queryCalls [][]string
}

func (m *mockEngine) StartBuild(ctx context.Context, req *model.BuildRequest) (*model.BuildRecord, error) {
	m.log.add("start:" + req.SourceVersion)
	m.startCalls = append(m.startCalls, req)
	if m.startFunc != nil {
		return m.startFunc(ctx, req)
	}
	return &model.BuildRecord{ID: "widgets-ci:b-1", BuildStatus: model.BuildStatusInProgress, SourceVersion: req.SourceVersion}, nil
}

func (m *mockEngine) QueryBuilds(ctx context.Context, ids []string) ([]*model.BuildRecord, error) {
	m.log.add("query")
	m.queryCalls = append(m.queryCalls, ids)
	if m.queryFunc != nil {
		return m.queryFunc(ctx, ids)
	}
	return nil, goerr.New("mock not configured")
}

type mockNotifier struct {
	called chan model.CommitState
}

func (m *mockNotifier) NotifyBuild(ctx context.Context, pr *model.PRBuild, state model.CommitState) error {
	m.called <- state
	return nil
}
