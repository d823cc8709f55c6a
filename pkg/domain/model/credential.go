package model

// CredentialState is the lifecycle of VCS credentials within a process
type CredentialState int

const (
	CredentialUnset CredentialState = iota
	CredentialSet
)

func (s CredentialState) String() string {
	switch s {
	case CredentialSet:
		return "set"
	default:
		return "unset"
	}
}

// Credentials is a basic-auth pair for the VCS API. Password is an access token.
type Credentials struct {
	Username string
	Password string `masq:"secret"`
}
