//go:build mage

// Package main provides build targets for the cratepub project using Mage.
//
// Usage:
//
//	mage build             Compile the cratepub binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage lint              Run go vet and golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install cratepub to GOPATH/bin
package main

// Binary names.
const (
	binGo   = "go"
	binGit  = "git"
	binLint = "golangci-lint"
)

// Paths.
const (
	modulePath = "github.com/mesh-intelligence/cratepub"
	binaryName = "cratepub"
	binaryDir  = "bin"
	cmdDir     = "./cmd/cratepub"
)
