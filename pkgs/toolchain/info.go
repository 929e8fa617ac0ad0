package toolchain

import (
	"fmt"
	"strings"
)

// CompilerInfo identifies a probed native compiler. It is built once by the
// probe and never modified afterwards.
type CompilerInfo struct {
	Vendor       string `json:"vendor"`
	ProductName  string `json:"product_name"`
	ShortName    string `json:"short_name"`
	VersionMajor int    `json:"version_major"`
	VersionMinor int    `json:"version_minor"`
	VersionPatch int    `json:"version_patch"`
	TargetArch   string `json:"target_arch"` // raw token, see arch.Resolve
}

// String returns a stable key of the form "gcc|pc|x86_64|9.3.0".
func (c CompilerInfo) String() string {
	return strings.Join([]string{c.ShortName, c.Vendor, c.TargetArch, c.Version()}, "|")
}

// Version returns "major.minor.patch".
func (c CompilerInfo) Version() string {
	return fmt.Sprintf("%d.%d.%d", c.VersionMajor, c.VersionMinor, c.VersionPatch)
}

// Semver returns the version in golang.org/x/mod/semver form ("v19.16.27032").
func (c CompilerInfo) Semver() string {
	return "v" + c.Version()
}

// Dump writes a human readable description, one line per call to sink.
func (c CompilerInfo) Dump(sink func(string)) {
	sink("Name: " + c.ProductName + " (" + c.ShortName + ")")
	sink("Vendor: " + c.Vendor)
	sink("Version: " + c.Version())
	sink("Target architecture: " + c.TargetArch)
}
