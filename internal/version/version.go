// Package version carries the build version of the mellow binary.
package version

// version is set at build time via
// -ldflags "-X github.com/davine-io/mellow/internal/version.version=x.y.z".
var version = "dev"

// GetVersion returns the current build version.
func GetVersion() string {
	return version
}
