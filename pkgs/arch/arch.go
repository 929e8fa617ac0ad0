// Package arch maps architecture tokens reported by native compilers to a
// small set of canonical architectures.
package arch

// Arch is a canonical architecture identifier.
type Arch string

const (
	AMD64   Arch = "amd64"
	AArch64 Arch = "aarch64"
	SPARC64 Arch = "sparc64"

	// Unsupported is returned for architectures that are recognized but
	// cannot be targeted (32-bit x86).
	Unsupported Arch = "unsupported"

	// Unknown is returned for tokens that are not recognized at all.
	Unknown Arch = "unknown"
)

// Resolve maps a vendor-reported architecture token such as "x86_64"
// (gcc, clang) or "x64" (cl.exe) to its canonical architecture.
func Resolve(token string) Arch {
	switch token {
	case "x86_64", "x64", "amd64":
		return AMD64
	case "aarch64", "arm64":
		return AArch64
	case "sparc64", "sparcv9":
		return SPARC64
	case "i386", "i486", "i586", "i686", "x86", "80x86":
		return Unsupported
	}
	return Unknown
}

// FromGOARCH returns the canonical architecture for a Go GOARCH value.
func FromGOARCH(goarch string) Arch {
	switch goarch {
	case "amd64":
		return AMD64
	case "arm64":
		return AArch64
	case "sparc64":
		return SPARC64
	case "386":
		return Unsupported
	}
	return Unknown
}

// Parse accepts either a canonical name or any token understood by Resolve.
func Parse(s string) Arch {
	switch a := Arch(s); a {
	case AMD64, AArch64, SPARC64:
		return a
	}
	return Resolve(s)
}

// Supported reports whether a is a concrete target architecture.
func (a Arch) Supported() bool {
	return a == AMD64 || a == AArch64 || a == SPARC64
}

func (a Arch) String() string {
	return string(a)
}
