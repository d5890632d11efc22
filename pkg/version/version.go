// Package version reports the catalogctl build version.
package version

// Set at build time with -ldflags "-X github.com/rshade/catalogctl/pkg/version.version=v1.2.3".
var (
	version   = "dev"   //nolint:gochecknoglobals // ldflags target
	gitCommit = "none"  //nolint:gochecknoglobals // ldflags target
	buildDate = "unset" //nolint:gochecknoglobals // ldflags target
)

// GetVersion returns the semantic version of this build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns when the binary was built.
func GetBuildDate() string {
	return buildDate
}

// String returns the long version line shown by --version.
func String() string {
	return version + " (commit " + gitCommit + ", built " + buildDate + ")"
}
