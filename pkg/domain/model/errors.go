package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagAuthentication marks a missing or mismatched webhook signature
	ErrTagAuthentication = goerr.NewTag("authentication")
	// ErrTagNotBuildable marks an event that is not a pull request event
	ErrTagNotBuildable = goerr.NewTag("not_buildable")
	// ErrTagSecretUnavailable marks a failed secret store fetch
	ErrTagSecretUnavailable = goerr.NewTag("secret_unavailable")
	// ErrTagCredentialSetup marks a failure to establish VCS credentials
	ErrTagCredentialSetup = goerr.NewTag("credential_setup")
	// ErrTagBuildStart marks a build engine failure to start a build
	ErrTagBuildStart = goerr.NewTag("build_start")
	// ErrTagBuildLookup marks a build engine failure to report a build
	ErrTagBuildLookup = goerr.NewTag("build_lookup")
	// ErrTagInvalidRequest marks a request document missing required fields
	ErrTagInvalidRequest = goerr.NewTag("invalid_request")
	// ErrTagStatusPublish marks a VCS failure to record a commit status
	ErrTagStatusPublish = goerr.NewTag("status_publish")
)
