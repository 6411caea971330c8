// Package buildinfo identifies the assetsync build.
package buildinfo

import "runtime/debug"

// BinaryVersion is stamped by the release pipeline through -ldflags.
// A plain `go build` leaves it at "dev".
var BinaryVersion = "dev"

// ModuleVersion reports the main module version the toolchain recorded in
// the binary. Local builds without version metadata report an empty string.
func ModuleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Version
}
