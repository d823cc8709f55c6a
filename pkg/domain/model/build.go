package model

import (
	"fmt"

	"github.com/google/go-github/v75/github"
)

// BuildStatus is the build engine's status vocabulary
type BuildStatus string

const (
	BuildStatusInProgress BuildStatus = "IN_PROGRESS"
	BuildStatusSucceeded  BuildStatus = "SUCCEEDED"
	BuildStatusFailed     BuildStatus = "FAILED"
	BuildStatusFault      BuildStatus = "FAULT"
	BuildStatusStopped    BuildStatus = "STOPPED"
	BuildStatusTimedOut   BuildStatus = "TIMED_OUT"
)

// IsTerminal reports whether no further state change occurs after s
func (s BuildStatus) IsTerminal() bool {
	switch s {
	case BuildStatusSucceeded, BuildStatusFailed, BuildStatusFault, BuildStatusStopped, BuildStatusTimedOut:
		return true
	default:
		return false
	}
}

// BuildRequest is what the build engine needs to start a build
type BuildRequest struct {
	ProjectName   string
	SourceVersion string
}

// PullRequestSourceVersion returns the source reference the build engine
// resolves to the head of pull request number.
func PullRequestSourceVersion(number int) string {
	return fmt.Sprintf("pr/%d", number)
}

// BuildRecord is a build as reported by the build engine
type BuildRecord struct {
	ID            string      `json:"id"`
	BuildStatus   BuildStatus `json:"buildStatus,omitempty"`
	SourceVersion string      `json:"sourceVersion,omitempty"`
}

// PRBuild ties a pull request to the build started for it. It is the payload
// passed between triggers: the webhook trigger returns it, the status trigger
// refreshes Build, and the completion trigger reconciles it.
type PRBuild struct {
	PullRequest *github.PullRequest `json:"pull_request"`
	Build       *BuildRecord        `json:"build"`
}
