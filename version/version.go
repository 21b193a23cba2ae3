// Package version reports the version of the bridge validators and tools.
package version

import (
	"fmt"
	"strings"
	"sync"
)

// validBuildCharacters lists the characters allowed in appBuild
const validBuildCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 3
	appPatch uint = 0
)

// appBuild may be set at build time with
// '-ldflags "-X github.com/cellbridge/bridged/version.appBuild=foo"'.
// It MUST only contain characters from validBuildCharacters.
var appBuild string

var (
	version     string
	versionOnce sync.Once
)

// Version returns the version as a semantic version string, with the
// build metadata appended when it is well formed.
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appBuild)
	})
	return version
}

func formatVersion(build string) string {
	formatted := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if isValidBuild(build) {
		formatted = fmt.Sprintf("%s-%s", formatted, build)
	}
	return formatted
}

func isValidBuild(build string) bool {
	if build == "" {
		return false
	}
	return strings.Trim(build, validBuildCharacters) == ""
}
