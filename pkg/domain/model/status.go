package model

// CommitState is the commit status vocabulary of the VCS
type CommitState string

const (
	CommitStatePending CommitState = "pending"
	CommitStateSuccess CommitState = "success"
	CommitStateFailure CommitState = "failure"
	CommitStateError   CommitState = "error"
)

// StatusContext is the context name every commit status is published under
const StatusContext = "CodeBuild"

// CommitStatus is a status annotation on a single commit. Later writes for the
// same (SHA, Context) supersede earlier ones on the VCS side.
type CommitStatus struct {
	Owner       string
	Repo        string
	SHA         string
	State       CommitState
	Context     string
	Description string
	TargetURL   string // optional
}

// CommitStateOf maps a build status to a commit state. Error-like terminal
// statuses stay "error"; anything unrecognized is still pending.
func CommitStateOf(status BuildStatus) CommitState {
	switch status {
	case BuildStatusSucceeded:
		return CommitStateSuccess
	case BuildStatusFailed:
		return CommitStateFailure
	case BuildStatusFault, BuildStatusStopped, BuildStatusTimedOut:
		return CommitStateError
	default:
		return CommitStatePending
	}
}
