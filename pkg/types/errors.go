package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	ErrExternalTool  = errors.New("external tool failed")
	ErrManifest      = errors.New("invalid manifest")
	ErrRegistryQuery = errors.New("registry query failed")
	ErrNoReleaseTag  = errors.New("no release tag found")
)

// ExternalToolError reports a VCS or registry tool that could not run or
// exited non-zero. ExitCode is -1 when the tool never started and 0 when
// it ran successfully but produced unusable output.
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	var b strings.Builder
	b.WriteString(e.Tool)
	if len(e.Args) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(e.Args, " "))
	}
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Is makes every ExternalToolError match ErrExternalTool.
func (e *ExternalToolError) Is(target error) bool {
	return target == ErrExternalTool
}

// ManifestError reports a package manifest that is missing or lacks a
// required field.
type ManifestError struct {
	Path  string
	Field string
	Err   error
}

func (e *ManifestError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("manifest %s: missing %s", e.Path, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("manifest %s: invalid", e.Path)
	}
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Is makes every ManifestError match ErrManifest.
func (e *ManifestError) Is(target error) bool {
	return target == ErrManifest
}

// PublishError reports the package at which a publish sequence stopped.
// Published lists the packages that had already been published; they are
// not rolled back.
type PublishError struct {
	Package   string
	Published []string
	Err       error
}

func (e *PublishError) Error() string {
	msg := fmt.Sprintf("publishing %s: %v", e.Package, e.Err)
	if len(e.Published) > 0 {
		msg += fmt.Sprintf(" (already published: %s)", strings.Join(e.Published, ", "))
	}
	return msg
}

func (e *PublishError) Unwrap() error { return e.Err }
