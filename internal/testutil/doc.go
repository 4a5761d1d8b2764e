// Package testutil provides test helpers shared across cratepub packages:
// a scripted Runner, a recording sleeper, a slog logger bound to t.Log, and
// helpers that lay out Cargo workspaces on disk.
package testutil
