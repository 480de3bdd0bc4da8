// Package version reports build information for dispatch binaries.
//
// Version, git commit, branch and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/dispatch/version.Version=1.0.0" ./cmd/dispatchctl
//
// Missing values are filled from the module's embedded VCS settings.
package version
