package toolchain

import (
	"fmt"
	"runtime"

	"github.com/goplus/ccprobe/pkgs/arch"
	"golang.org/x/mod/semver"
)

// Requirements describe what the build needs from the native toolchain.
// Zero fields take the defaults shown.
type Requirements struct {
	// TargetArch is the architecture the build produces code for (default:
	// the host's). Only the Linux rules use it; Darwin and Windows require
	// amd64.
	TargetArch arch.Arch

	// RuntimeVersion is the language runtime version the build targets.
	// Zero means the newest runtime.
	RuntimeVersion int

	// ModernRuntimeVersion is the first runtime version checked against
	// MinMSVCVersion (default 11).
	ModernRuntimeVersion int

	// LegacyRuntimeVersion is the runtime version that needs exactly the
	// LegacyMSVCVersion compiler (default 8).
	LegacyRuntimeVersion int

	// MinMSVCVersion is the oldest cl.exe accepted for modern runtimes
	// (default "v19.0.0", Visual Studio 2015).
	MinMSVCVersion string

	// LegacyMSVCVersion is the major.minor of cl.exe required for the legacy
	// runtime (default "v16.0", Windows SDK 7.1).
	LegacyMSVCVersion string
}

func (r Requirements) withDefaults() Requirements {
	if r.TargetArch == "" {
		r.TargetArch = arch.FromGOARCH(runtime.GOARCH)
	}
	if r.ModernRuntimeVersion == 0 {
		r.ModernRuntimeVersion = 11
	}
	if r.LegacyRuntimeVersion == 0 {
		r.LegacyRuntimeVersion = 8
	}
	if r.MinMSVCVersion == "" {
		r.MinMSVCVersion = "v19.0.0"
	}
	if r.LegacyMSVCVersion == "" {
		r.LegacyMSVCVersion = "v16.0"
	}
	return r
}

// Validate applies the rules of v to a probed compiler. Every failure is a
// *Error of kind KindVersionIncompatible or KindArchitectureMismatch.
func Validate(info CompilerInfo, v *Variant, req Requirements) error {
	return v.Validate(info, req.withDefaults())
}

func validateWindows(info CompilerInfo, req Requirements) error {
	version := info.Semver()
	switch rt := req.RuntimeVersion; {
	case rt == 0 || rt >= req.ModernRuntimeVersion:
		if !semver.IsValid(req.MinMSVCVersion) {
			return fmt.Errorf("invalid minimum compiler version %q", req.MinMSVCVersion)
		}
		if semver.Compare(version, req.MinMSVCVersion) < 0 {
			return &Error{
				Kind: KindVersionIncompatible,
				OS:   Windows,
				Msg: fmt.Sprintf("building on Windows requires Visual Studio 2015 or later (C/C++ Optimizing Compiler %s or later, found %s)",
					req.MinMSVCVersion, version),
			}
		}
	case rt == req.LegacyRuntimeVersion:
		if semver.MajorMinor(version) != req.LegacyMSVCVersion {
			return &Error{
				Kind: KindVersionIncompatible,
				OS:   Windows,
				Msg: fmt.Sprintf("building for runtime %d on Windows requires Microsoft Windows SDK 7.1 (C/C++ Optimizing Compiler %s, found %s)",
					rt, req.LegacyMSVCVersion, version),
			}
		}
	default:
		return &Error{
			Kind: KindVersionIncompatible,
			OS:   Windows,
			Msg: fmt.Sprintf("building is only supported for runtime %d and runtime %d or later (requested %d)",
				req.LegacyRuntimeVersion, req.ModernRuntimeVersion, rt),
		}
	}
	return requireAMD64(info, Windows)
}

func validateDarwin(info CompilerInfo, _ Requirements) error {
	return requireAMD64(info, Darwin)
}

func validateLinux(info CompilerInfo, req Requirements) error {
	got := arch.Resolve(info.TargetArch)
	if !got.Supported() || !req.TargetArch.Supported() || got != req.TargetArch {
		return &Error{
			Kind: KindArchitectureMismatch,
			OS:   Linux,
			Msg: fmt.Sprintf("native toolchain (%s) and build target architecture (%s) mismatch",
				info.TargetArch, req.TargetArch),
		}
	}
	return nil
}

func requireAMD64(info CompilerInfo, o OS) error {
	if arch.Resolve(info.TargetArch) != arch.AMD64 {
		return &Error{
			Kind: KindArchitectureMismatch,
			OS:   o,
			Msg: fmt.Sprintf("building on %s currently only supports target architecture %s (%s unsupported)",
				o, arch.AMD64, info.TargetArch),
		}
	}
	return nil
}
