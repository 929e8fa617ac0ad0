package toolchain

import (
	"fmt"
	"runtime"
	"strings"
)

// OS is the closed set of host platforms a toolchain can be driven on.
type OS uint8

const (
	Linux OS = iota + 1
	Darwin
	Windows
)

func (o OS) String() string {
	switch o {
	case Linux:
		return "linux"
	case Darwin:
		return "darwin"
	case Windows:
		return "windows"
	}
	return fmt.Sprintf("OS(%d)", uint8(o))
}

// Stream selects the subprocess output stream carrying diagnostics.
type Stream int

const (
	Stderr Stream = iota
	Stdout
)

// Variant is the strategy bundle bound to one OS.
type Variant struct {
	OS              OS
	DefaultCompiler string   // short name searched on PATH
	ExeSuffix       string   // appended to executable names if absent
	VersionFlags    []string // flags that make the compiler print its banner

	// ParseBanner extracts the compiler identity from merged probe output.
	// It returns nil if the output is not recognized.
	ParseBanner func(banner string) *CompilerInfo

	// TargetFlags returns the flags naming the output file.
	TargetFlags func(target string) []string

	// Diagnostics is the stream scanned for error lines while compiling.
	Diagnostics Stream

	// IsErrorLine classifies one diagnostic line.
	IsErrorLine func(line string) bool

	// Validate checks a probed compiler against the build requirements.
	Validate func(info CompilerInfo, req Requirements) error
}

var (
	LinuxVariant = &Variant{
		OS:              Linux,
		DefaultCompiler: "gcc",
		VersionFlags:    []string{"-v"},
		ParseBanner:     ParseGNUBanner,
		TargetFlags:     dashOTarget,
		Diagnostics:     Stderr,
		IsErrorLine:     IsErrorLine,
		Validate:        validateLinux,
	}

	DarwinVariant = &Variant{
		OS:              Darwin,
		DefaultCompiler: "cc",
		VersionFlags:    []string{"-v"},
		ParseBanner:     ParseClangBanner,
		TargetFlags:     dashOTarget,
		Diagnostics:     Stderr,
		IsErrorLine:     IsErrorLine,
		Validate:        validateDarwin,
	}

	WindowsVariant = &Variant{
		OS:              Windows,
		DefaultCompiler: "cl",
		ExeSuffix:       ".exe",
		ParseBanner:     ParseMSVCBanner,
		TargetFlags:     feTarget,
		Diagnostics:     Stdout,
		IsErrorLine:     isMSVCErrorLine,
		Validate:        validateWindows,
	}
)

// VariantFor returns the variant for a GOOS value.
func VariantFor(goos string) (*Variant, error) {
	switch goos {
	case "linux":
		return LinuxVariant, nil
	case "darwin":
		return DarwinVariant, nil
	case "windows":
		return WindowsVariant, nil
	}
	return nil, &Error{
		Kind: KindToolchainNotFound,
		Msg:  "no compiler invoker for operating system " + goos,
	}
}

// HostVariant returns the variant for the running platform.
func HostVariant() (*Variant, error) {
	return VariantFor(runtime.GOOS)
}

// ExecutableName applies the variant's executable suffix to basename.
func (v *Variant) ExecutableName(basename string) string {
	if v.ExeSuffix == "" {
		return basename
	}
	if n := len(v.ExeSuffix); len(basename) >= n && strings.EqualFold(basename[len(basename)-n:], v.ExeSuffix) {
		return basename
	}
	return basename + v.ExeSuffix
}

// IsErrorLine is the default diagnostic classifier shared by gcc, clang and
// cl: "file.c:3:1: error: ..." and "file.c: fatal error: ...".
func IsErrorLine(line string) bool {
	return strings.Contains(line, ": error:") || strings.Contains(line, ": fatal error:")
}

func dashOTarget(target string) []string {
	return []string{"-o", target}
}

func feTarget(target string) []string {
	return []string{"/Fe" + target}
}

// cl.exe reports "file.c(3): error C2143: ..." which the default predicate
// misses.
func isMSVCErrorLine(line string) bool {
	return IsErrorLine(line) || strings.Contains(line, ": error C") || strings.Contains(line, ": fatal error C")
}
