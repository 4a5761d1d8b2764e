// Package types defines the data model shared by the cratepub packages:
// release versions, workspace packages, check outcomes, the tool
// configuration, and the error taxonomy for external tools and manifests.
package types
