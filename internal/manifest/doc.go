// Package manifest reads Cargo manifests into the typed workspace and
// package configuration, and wraps each workspace member with the registry
// operations used to check and publish it.
package manifest
