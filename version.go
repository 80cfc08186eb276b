/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"fmt"
	"runtime"
)

// Build information, stamped into storectl at link time:
//
//	go build -ldflags "\
//	  -X github.com/suparena/objectstore.Version=$(git describe --tags) \
//	  -X github.com/suparena/objectstore.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/suparena/objectstore.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/storectl
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	// GoVersion falls back to the running toolchain when not stamped.
	GoVersion = ""
)

// VersionInfo is what `storectl version --json` prints.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the stamped build information.
func GetVersionInfo() VersionInfo {
	goVersion := GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: goVersion,
	}
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("objectstore %s (commit: %s, built: %s, %s)", v.Version, v.GitCommit, v.BuildDate, v.GoVersion)
}
