package types

import "fmt"

// CheckStatus is the outcome of a workspace check. The numeric values are
// the process exit codes of the check command.
type CheckStatus int

const (
	CheckOK               CheckStatus = 0
	CheckVersionMismatch  CheckStatus = 1
	CheckAlreadyPublished CheckStatus = 2
)

func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "ok"
	case CheckVersionMismatch:
		return "version mismatch"
	case CheckAlreadyPublished:
		return "already published"
	default:
		return fmt.Sprintf("CheckStatus(%d)", int(s))
	}
}

// CheckResult reports the check outcome. Package is the offending package
// and is zero when Status is CheckOK.
type CheckResult struct {
	Status  CheckStatus
	Release ReleaseVersion
	Package Package
}

// Message returns the human-readable line printed for the result.
func (r CheckResult) Message() string {
	switch r.Status {
	case CheckVersionMismatch:
		return fmt.Sprintf("%s version should be %s (found %s)", r.Package.Name, r.Release, r.Package.Version)
	case CheckAlreadyPublished:
		return fmt.Sprintf("%s is already published with version %s", r.Package.Name, r.Release)
	default:
		return fmt.Sprintf("all packages are at %s and unpublished", r.Release)
	}
}
