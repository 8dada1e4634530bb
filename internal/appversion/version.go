// Package appversion reports the version of the donut binary.
package appversion

import "runtime/debug"

// version is set at build time via
// -ldflags "-X github.com/mindsgn-studio/donut/internal/appversion.version=v1.2.3"
var version = "" //nolint:gochecknoglobals // ldflags requires package-level var

// String returns the ldflags version, then the module version recorded by
// go install, then "dev".
func String() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}
