// Package version reports the dilint build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Module is the import path dilint is installed from.
const Module = "github.com/pthm/dilint"

// Set with -ldflags "-X github.com/pthm/dilint/internal/version.Version=..."
// by release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Short returns the version. Binaries built with `go install Module/cmd/...@v`
// carry no ldflags, so the module version recorded by the toolchain is used.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Path == Module {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// Info returns the version line printed by `dilint version`.
func Info() string {
	return fmt.Sprintf("dilint %s (%s) built on %s with %s %s/%s",
		Short(), Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
