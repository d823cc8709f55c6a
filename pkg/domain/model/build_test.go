package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

func TestBuildStatus_IsTerminal(t *testing.T) {
	terminal := []model.BuildStatus{
		model.BuildStatusSucceeded,
		model.BuildStatusFailed,
		model.BuildStatusFault,
		model.BuildStatusStopped,
		model.BuildStatusTimedOut,
	}
	for _, s := range terminal {
		gt.True(t, s.IsTerminal())
	}

	for _, s := range []model.BuildStatus{model.BuildStatusInProgress, "", "QUEUED"} {
		gt.False(t, s.IsTerminal())
	}
}

func TestPullRequestSourceVersion(t *testing.T) {
	gt.Equal(t, model.PullRequestSourceVersion(42), "pr/42")
}
